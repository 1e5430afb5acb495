package db

import (
	"time"

	"github.com/hersaheli/saheli/internal/models"
	"gorm.io/gorm"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) ListByUser(userID uint) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.
		Preload("Symptoms").
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListByUserRange returns logs with fromStart <= date < toEnd. Nil bounds are open.
func (repo *DailyLogRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error) {
	query := repo.database.Model(&models.DailyLog{}).Preload("Symptoms").Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	logs := make([]models.DailyLog, 0)
	if err := query.Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	result := repo.database.
		Preload("Symptoms").
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

// SaveWithSymptoms inserts the entry when it has no ID yet and updates every scalar column
// otherwise. The symptom set is only rewritten when replaceSymptoms is true.
func (repo *DailyLogRepository) SaveWithSymptoms(entry *models.DailyLog, replaceSymptoms bool) error {
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if entry.ID == 0 {
			if err := tx.Omit("Symptoms").Create(entry).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Omit("Symptoms").Save(entry).Error; err != nil {
				return err
			}
		}

		if !replaceSymptoms {
			return nil
		}
		association := tx.Model(entry).Association("Symptoms")
		if len(entry.Symptoms) == 0 {
			return association.Clear()
		}
		return association.Replace(entry.Symptoms)
	})
	return normalizeWriteError(err)
}
