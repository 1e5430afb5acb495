package db

import (
	"github.com/hersaheli/saheli/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) ListByUser(userID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) ListRecent(userID uint, limit int) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0, limit)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Limit(limit).
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) ListRecentCompleted(userID uint, limit int) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0, limit)
	if err := repo.database.
		Where("user_id = ? AND end_date IS NOT NULL", userID).
		Order("start_date DESC, id DESC").
		Limit(limit).
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

// MutateUserCycles loads every interval of the user and applies the change set returned by plan
// inside a single transaction. An error from plan rolls the transaction back. The applied change
// set is returned with the IDs of created rows filled in.
func (repo *CycleRepository) MutateUserCycles(userID uint, plan func(current []models.Cycle) (models.CycleChanges, error)) (models.CycleChanges, error) {
	var applied models.CycleChanges
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		current := make([]models.Cycle, 0)
		if err := tx.
			Where("user_id = ?", userID).
			Order("start_date ASC, id ASC").
			Find(&current).Error; err != nil {
			return err
		}

		changes, err := plan(current)
		if err != nil {
			return err
		}
		applied = changes
		if changes.IsEmpty() {
			return nil
		}

		// Deletes and updates go first so a split or merge never briefly holds two open rows.
		if len(changes.Delete) > 0 {
			if err := tx.Where("user_id = ? AND id IN ?", userID, changes.Delete).Delete(&models.Cycle{}).Error; err != nil {
				return err
			}
		}
		for index := range changes.Update {
			cycle := changes.Update[index]
			if err := tx.Model(&models.Cycle{}).
				Where("id = ? AND user_id = ?", cycle.ID, userID).
				Updates(map[string]any{
					"start_date": cycle.StartDate,
					"end_date":   cycle.EndDate,
				}).Error; err != nil {
				return err
			}
		}
		for index := range changes.Create {
			cycle := changes.Create[index]
			cycle.ID = 0
			cycle.UserID = userID
			if err := tx.Create(&cycle).Error; err != nil {
				return err
			}
			applied.Create[index] = cycle
		}
		return nil
	})
	if err != nil {
		return models.CycleChanges{}, normalizeWriteError(err)
	}
	return applied, nil
}
