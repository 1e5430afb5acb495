package models

import "time"

// Cycle is one logged menstruation span. A nil EndDate marks the period as ongoing.
type Cycle struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"-"`
	StartDate time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

func (cycle Cycle) IsOpen() bool {
	return cycle.EndDate == nil
}

// CycleChanges is the set of writes that moves a user's intervals from one consistent state to the next.
type CycleChanges struct {
	Create []Cycle
	Update []Cycle
	Delete []uint
}

func (changes CycleChanges) IsEmpty() bool {
	return len(changes.Create) == 0 && len(changes.Update) == 0 && len(changes.Delete) == 0
}
