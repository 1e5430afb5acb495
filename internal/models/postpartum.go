package models

import "time"

const (
	PostpartumMoodHappy       = "HAPPY"
	PostpartumMoodAnxious     = "ANXIOUS"
	PostpartumMoodOverwhelmed = "OVERWHELMED"
	PostpartumMoodTired       = "TIRED"
	PostpartumMoodJoyful      = "JOYFUL"
)

type PostpartumMoodLog struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_postpartum_user_date" json:"-"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_postpartum_user_date" json:"date"`
	Mood      string    `gorm:"not null" json:"mood"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func IsValidPostpartumMood(mood string) bool {
	switch mood {
	case PostpartumMoodHappy, PostpartumMoodAnxious, PostpartumMoodOverwhelmed, PostpartumMoodTired, PostpartumMoodJoyful:
		return true
	default:
		return false
	}
}
