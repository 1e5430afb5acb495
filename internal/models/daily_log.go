package models

import "time"

const (
	MoodHappy     = "HAPPY"
	MoodSad       = "SAD"
	MoodAnxious   = "ANXIOUS"
	MoodIrritable = "IRRITABLE"
	MoodEnergetic = "ENERGETIC"
	MoodFatigued  = "FATIGUED"
)

type DailyLog struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	UserID      uint      `gorm:"not null;uniqueIndex:uidx_user_date" json:"-"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:uidx_user_date" json:"date"`
	Mood        *string   `json:"mood"`
	PainLevel   *int      `json:"pain_level"`
	EnergyLevel *int      `json:"energy_level"`
	Notes       *string   `json:"notes"`
	Symptoms    []Symptom `gorm:"many2many:daily_log_symptoms;" json:"symptoms"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (entry DailyLog) HasSymptomID(symptomID uint) bool {
	for _, symptom := range entry.Symptoms {
		if symptom.ID == symptomID {
			return true
		}
	}
	return false
}

func IsValidMood(mood string) bool {
	switch mood {
	case MoodHappy, MoodSad, MoodAnxious, MoodIrritable, MoodEnergetic, MoodFatigued:
		return true
	default:
		return false
	}
}
