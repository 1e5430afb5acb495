package db

import (
	"github.com/hersaheli/saheli/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByUsername(username string) (models.User, bool, error) {
	user := models.User{}
	result := repo.database.Where("username = ?", username).Limit(1).Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, false, nil
	}
	return user, true, nil
}

func (repo *UserRepository) ExistsByUsername(username string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("username = ?", username).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// CreateWithProfile stores the account and its profile atomically and fills both IDs.
func (repo *UserRepository) CreateWithProfile(user *models.User, profile *models.UserProfile) error {
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
	return normalizeWriteError(err)
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

// FindProfile returns the stored profile, or a default one when the account predates profiles.
func (repo *UserRepository) FindProfile(userID uint) (models.UserProfile, error) {
	profile := models.UserProfile{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.UserProfile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.UserProfile{
			UserID:       userID,
			AverageCycle: models.DefaultCycleLength,
			SelectedMode: models.ModeMenstrual,
		}, nil
	}
	return profile, nil
}

func (repo *UserRepository) SaveProfile(profile *models.UserProfile) error {
	return repo.database.Save(profile).Error
}
