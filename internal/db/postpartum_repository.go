package db

import (
	"time"

	"github.com/hersaheli/saheli/internal/models"
	"gorm.io/gorm"
)

type PostpartumRepository struct {
	database *gorm.DB
}

func NewPostpartumRepository(database *gorm.DB) *PostpartumRepository {
	return &PostpartumRepository{database: database}
}

func (repo *PostpartumRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.PostpartumMoodLog, bool, error) {
	entry := models.PostpartumMoodLog{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.PostpartumMoodLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.PostpartumMoodLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *PostpartumRepository) ListByUser(userID uint) ([]models.PostpartumMoodLog, error) {
	logs := make([]models.PostpartumMoodLog, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *PostpartumRepository) Save(entry *models.PostpartumMoodLog) error {
	if entry.ID == 0 {
		return normalizeWriteError(repo.database.Create(entry).Error)
	}
	return repo.database.Save(entry).Error
}
