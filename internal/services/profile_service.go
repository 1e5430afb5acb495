package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hersaheli/saheli/internal/models"
)

const (
	maxProfileNameLength = 100
	minProfileAge        = 0
	maxProfileAge        = 120
)

// ProfilePatch follows the same set-flag convention as DailyLogPatch.
type ProfilePatch struct {
	NameSet         bool
	Name            string
	AgeSet          bool
	Age             *int
	AverageCycleSet bool
	AverageCycle    int
	SelectedModeSet bool
	SelectedMode    string
}

type ProfileRepository interface {
	FindProfile(userID uint) (models.UserProfile, error)
	SaveProfile(profile *models.UserProfile) error
}

type ProfileService struct {
	profiles ProfileRepository
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (service *ProfileService) GetProfile(userID uint) (models.UserProfile, error) {
	profile, err := service.profiles.FindProfile(userID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	return profile, nil
}

func (service *ProfileService) UpdateProfile(userID uint, patch ProfilePatch) (models.UserProfile, error) {
	profile, err := service.GetProfile(userID)
	if err != nil {
		return models.UserProfile{}, err
	}
	if err := ApplyProfilePatch(&profile, patch); err != nil {
		return models.UserProfile{}, err
	}
	profile.UserID = userID
	if err := service.profiles.SaveProfile(&profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %v", ErrProfileUpdateFailed, err)
	}
	return profile, nil
}

func ApplyProfilePatch(profile *models.UserProfile, patch ProfilePatch) error {
	if patch.NameSet {
		name := strings.TrimSpace(patch.Name)
		if utf8.RuneCountInString(name) > maxProfileNameLength {
			return newValidationError("name", "Ensure this field has no more than 100 characters.")
		}
		profile.Name = name
	}
	if patch.AgeSet {
		if patch.Age != nil && (*patch.Age < minProfileAge || *patch.Age > maxProfileAge) {
			return newValidationError("age", "Ensure this value is between 0 and 120.")
		}
		profile.Age = patch.Age
	}
	if patch.AverageCycleSet {
		if !plausibleCycleGap(patch.AverageCycle) {
			return newValidationError("average_cycle", "Ensure this value is between 16 and 44.")
		}
		profile.AverageCycle = patch.AverageCycle
	}
	if patch.SelectedModeSet {
		mode := strings.ToUpper(strings.TrimSpace(patch.SelectedMode))
		if !models.IsValidHealthMode(mode) {
			return newValidationError("selected_mode", fmt.Sprintf("%q is not a valid choice.", patch.SelectedMode))
		}
		profile.SelectedMode = mode
	}
	return nil
}
