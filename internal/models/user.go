package models

import "time"

const (
	ModeMenstrual  = "MENSTRUAL"
	ModeTTC        = "TTC"
	ModePregnancy  = "PREGNANCY"
	ModePostpartum = "POSTPARTUM"
	ModeMenopause  = "MENOPAUSE"
)

const DefaultCycleLength = 28

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

type UserProfile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"-"`
	Name         string    `gorm:"not null;default:''" json:"name"`
	Age          *int      `json:"age"`
	AverageCycle int       `gorm:"not null;default:28" json:"average_cycle"`
	SelectedMode string    `gorm:"not null;default:MENSTRUAL" json:"selected_mode"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func IsValidHealthMode(mode string) bool {
	switch mode {
	case ModeMenstrual, ModeTTC, ModePregnancy, ModePostpartum, ModeMenopause:
		return true
	default:
		return false
	}
}
