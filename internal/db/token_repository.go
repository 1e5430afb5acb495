package db

import (
	"time"

	"github.com/hersaheli/saheli/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenRepository struct {
	database *gorm.DB
}

func NewTokenRepository(database *gorm.DB) *TokenRepository {
	return &TokenRepository{database: database}
}

// Revoke is idempotent per token id.
func (repo *TokenRepository) Revoke(tokenID string, userID uint, expiresAt time.Time) error {
	entry := models.RevokedToken{
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
	}
	return repo.database.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

func (repo *TokenRepository) IsRevoked(tokenID string) (bool, error) {
	var count int64
	if err := repo.database.Model(&models.RevokedToken{}).
		Where("token_id = ?", tokenID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *TokenRepository) PurgeExpired(now time.Time) (int64, error) {
	result := repo.database.Where("expires_at < ?", now.UTC()).Delete(&models.RevokedToken{})
	return result.RowsAffected, result.Error
}
