package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/hersaheli/saheli/internal/models"
)

var ErrPregnancyProfileFailed = errors.New("pregnancy profile failed")

type PregnancyRepository interface {
	GetOrCreate(userID uint) (models.PregnancyProfile, error)
	Save(profile *models.PregnancyProfile) error
}

type PregnancyService struct {
	profiles PregnancyRepository
}

func NewPregnancyService(profiles PregnancyRepository) *PregnancyService {
	return &PregnancyService{profiles: profiles}
}

// GetProfile creates an empty profile on first access.
func (service *PregnancyService) GetProfile(userID uint) (models.PregnancyProfile, error) {
	profile, err := service.profiles.GetOrCreate(userID)
	if err != nil {
		return models.PregnancyProfile{}, fmt.Errorf("%w: %v", ErrPregnancyProfileFailed, err)
	}
	return profile, nil
}

func (service *PregnancyService) SetDueDate(userID uint, dueDate *time.Time) (models.PregnancyProfile, error) {
	profile, err := service.GetProfile(userID)
	if err != nil {
		return models.PregnancyProfile{}, err
	}
	if dueDate != nil {
		profile.EstimatedDueDate = dayPointer(*dueDate)
	} else {
		profile.EstimatedDueDate = nil
	}
	if err := service.profiles.Save(&profile); err != nil {
		return models.PregnancyProfile{}, fmt.Errorf("%w: %v", ErrPregnancyProfileFailed, err)
	}
	return profile, nil
}

// PregnancyWeek returns completed gestational weeks, counting back 280 days from the due date.
func PregnancyWeek(dueDate time.Time, today time.Time) int {
	const fullTermDays = 280
	elapsed := fullTermDays - daysBetween(today, dueDate)
	if elapsed < 0 {
		return 0
	}
	return elapsed / 7
}
