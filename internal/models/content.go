package models

const (
	ContentTip   = "TIP"
	ContentFAQ   = "FAQ"
	ContentGuide = "GUIDE"
)

type StaticContent struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Title           string `gorm:"not null" json:"title"`
	Body            string `gorm:"not null" json:"body"`
	ContentType     string `gorm:"not null" json:"content_type"`
	RelevantMode    string `gorm:"not null" json:"relevant_mode"`
	WeekOfPregnancy *int   `json:"week_of_pregnancy"`
}

func (StaticContent) TableName() string {
	return "static_contents"
}
