package db

import (
	"errors"
	"strings"

	"github.com/hersaheli/saheli/internal/models"
	"gorm.io/gorm"
)

type SymptomRepository struct {
	database *gorm.DB
}

func NewSymptomRepository(database *gorm.DB) *SymptomRepository {
	return &SymptomRepository{database: database}
}

func (repo *SymptomRepository) List() ([]models.Symptom, error) {
	symptoms := make([]models.Symptom, 0)
	if err := repo.database.Order("lower(name) ASC, id ASC").Find(&symptoms).Error; err != nil {
		return nil, err
	}
	return symptoms, nil
}

func (repo *SymptomRepository) FindByName(name string) (models.Symptom, bool, error) {
	symptom := models.Symptom{}
	result := repo.database.Where("lower(name) = lower(?)", strings.TrimSpace(name)).Limit(1).Find(&symptom)
	if result.Error != nil {
		return models.Symptom{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Symptom{}, false, nil
	}
	return symptom, true, nil
}

// ResolveNames returns one catalogue row per distinct name, creating unknown names.
// Names that differ only by case resolve to the same row.
func (repo *SymptomRepository) ResolveNames(names []string) ([]models.Symptom, error) {
	resolved := make([]models.Symptom, 0, len(names))
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		seen := make(map[uint]struct{}, len(names))
		for _, name := range names {
			symptom, err := findOrCreateSymptom(tx, name)
			if err != nil {
				return err
			}
			if _, duplicate := seen[symptom.ID]; duplicate {
				continue
			}
			seen[symptom.ID] = struct{}{}
			resolved = append(resolved, symptom)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

func (repo *SymptomRepository) EnsureNames(names []string) (int, error) {
	created := 0
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			var count int64
			if err := tx.Model(&models.Symptom{}).Where("lower(name) = lower(?)", name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&models.Symptom{Name: name}).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	return created, err
}

func findOrCreateSymptom(tx *gorm.DB, name string) (models.Symptom, error) {
	symptom := models.Symptom{}
	err := tx.Where("lower(name) = lower(?)", name).First(&symptom).Error
	if err == nil {
		return symptom, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Symptom{}, err
	}

	symptom = models.Symptom{Name: name}
	if err := tx.Create(&symptom).Error; err != nil {
		if !isUniqueViolation(err) {
			return models.Symptom{}, err
		}
		if err := tx.Where("lower(name) = lower(?)", name).First(&symptom).Error; err != nil {
			return models.Symptom{}, err
		}
	}
	return symptom, nil
}
