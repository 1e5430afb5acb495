package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hersaheli/saheli/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrUsernameTaken          = fmt.Errorf("%w: username taken", ErrConflict)
	ErrUserNotFound           = fmt.Errorf("%w: user", ErrNotFound)
	ErrRegistrationFailed     = errors.New("registration failed")
	ErrPasswordUpdateFailed   = errors.New("password update failed")
)

const maxUsernameLength = 150

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type RegistrationInput struct {
	Username     string
	Password     string
	Name         string
	Age          *int
	AverageCycle *int
	SelectedMode string
}

type AuthUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByUsername(username string) (models.User, bool, error)
	ExistsByUsername(username string) (bool, error)
	CreateWithProfile(user *models.User, profile *models.UserProfile) error
	UpdatePassword(userID uint, passwordHash string) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func NormalizeUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if username == "" {
		return "", newValidationError("username", "This field is required.")
	}
	if len(username) > maxUsernameLength || !usernamePattern.MatchString(username) {
		return "", newValidationError("username", "Enter a valid username. This value may contain only letters, numbers, and _ characters.")
	}
	return username, nil
}

func (service *AuthService) Register(input RegistrationInput) (models.User, models.UserProfile, error) {
	username, err := NormalizeUsername(input.Username)
	if err != nil {
		return models.User{}, models.UserProfile{}, err
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return models.User{}, models.UserProfile{}, newValidationError("password", "Ensure this field has at least 8 characters.")
	}

	profile := models.UserProfile{
		AverageCycle: models.DefaultCycleLength,
		SelectedMode: models.ModeMenstrual,
	}
	patch := ProfilePatch{
		NameSet:         true,
		Name:            input.Name,
		AgeSet:          input.Age != nil,
		Age:             input.Age,
		SelectedModeSet: strings.TrimSpace(input.SelectedMode) != "",
		SelectedMode:    input.SelectedMode,
	}
	if input.AverageCycle != nil {
		patch.AverageCycleSet = true
		patch.AverageCycle = *input.AverageCycle
	}
	if strings.TrimSpace(input.Name) == "" {
		return models.User{}, models.UserProfile{}, newValidationError("name", "This field is required.")
	}
	if err := ApplyProfilePatch(&profile, patch); err != nil {
		return models.User{}, models.UserProfile{}, err
	}

	exists, err := service.users.ExistsByUsername(username)
	if err != nil {
		return models.User{}, models.UserProfile{}, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}
	if exists {
		return models.User{}, models.UserProfile{}, ErrUsernameTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, models.UserProfile{}, fmt.Errorf("%w: hash password: %v", ErrRegistrationFailed, err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := service.users.CreateWithProfile(&user, &profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, models.UserProfile{}, ErrUsernameTaken
		}
		return models.User{}, models.UserProfile{}, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}
	return user, profile, nil
}

func (service *AuthService) Authenticate(username string, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}

	user, found, err := service.users.FindByUsername(username)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (service *AuthService) ResetPassword(username string, password string) error {
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	user, found, err := service.users.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	if !found {
		return ErrUserNotFound
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	if err := service.users.UpdatePassword(user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	return nil
}

// EnsureUser creates the account unless the username is already registered. created reports
// whether a new account was stored.
func (service *AuthService) EnsureUser(username string, password string) (bool, error) {
	_, err := NormalizeUsername(username)
	if err != nil {
		return false, err
	}
	exists, err := service.users.ExistsByUsername(strings.TrimSpace(username))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}
	if exists {
		return false, nil
	}
	if _, _, err := service.Register(RegistrationInput{Username: username, Password: password, Name: username}); err != nil {
		return false, err
	}
	return true, nil
}
