package db

import (
	"github.com/hersaheli/saheli/internal/models"
	"gorm.io/gorm"
)

type PregnancyRepository struct {
	database *gorm.DB
}

func NewPregnancyRepository(database *gorm.DB) *PregnancyRepository {
	return &PregnancyRepository{database: database}
}

func (repo *PregnancyRepository) GetOrCreate(userID uint) (models.PregnancyProfile, error) {
	profile := models.PregnancyProfile{}
	err := repo.database.
		Where(models.PregnancyProfile{UserID: userID}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return models.PregnancyProfile{}, normalizeWriteError(err)
	}
	return profile, nil
}

func (repo *PregnancyRepository) Save(profile *models.PregnancyProfile) error {
	return repo.database.Save(profile).Error
}
