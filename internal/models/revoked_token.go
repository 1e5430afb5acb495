package models

import "time"

type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	TokenID   string    `gorm:"not null;uniqueIndex"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
