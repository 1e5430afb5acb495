package models

type Symptom struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func DefaultSymptomNames() []string {
	return []string{
		"Cramps",
		"Headache",
		"Bloating",
		"Fatigue",
		"Cravings",
		"Acne",
		"Back pain",
		"Breast tenderness",
		"Nausea",
		"Insomnia",
	}
}
