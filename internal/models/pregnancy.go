package models

import "time"

type PregnancyProfile struct {
	ID               uint       `gorm:"primaryKey" json:"-"`
	UserID           uint       `gorm:"not null;uniqueIndex" json:"-"`
	EstimatedDueDate *time.Time `gorm:"type:date" json:"estimated_due_date"`
	CreatedAt        time.Time  `json:"-"`
	UpdatedAt        time.Time  `json:"-"`
}
