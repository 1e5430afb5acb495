package db

import (
	"github.com/hersaheli/saheli/internal/models"
	"gorm.io/gorm"
)

type ContentFilter struct {
	Mode string
	Type string
	Week *int
}

type ContentRepository struct {
	database *gorm.DB
}

func NewContentRepository(database *gorm.DB) *ContentRepository {
	return &ContentRepository{database: database}
}

// List matches mode and type case-insensitively. Empty filter fields are ignored.
func (repo *ContentRepository) List(filter ContentFilter) ([]models.StaticContent, error) {
	query := repo.database.Model(&models.StaticContent{})
	if filter.Mode != "" {
		query = query.Where("upper(relevant_mode) = upper(?)", filter.Mode)
	}
	if filter.Type != "" {
		query = query.Where("upper(content_type) = upper(?)", filter.Type)
	}
	if filter.Week != nil {
		query = query.Where("week_of_pregnancy = ?", *filter.Week)
	}

	items := make([]models.StaticContent, 0)
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *ContentRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.StaticContent{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *ContentRepository) CreateBatch(items []models.StaticContent) error {
	if len(items) == 0 {
		return nil
	}
	return repo.database.Create(&items).Error
}
