package db

import "gorm.io/gorm"

type Repositories struct {
	Users      *UserRepository
	Cycles     *CycleRepository
	DailyLogs  *DailyLogRepository
	Symptoms   *SymptomRepository
	Pregnancy  *PregnancyRepository
	Postpartum *PostpartumRepository
	Content    *ContentRepository
	Tokens     *TokenRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		Cycles:     NewCycleRepository(database),
		DailyLogs:  NewDailyLogRepository(database),
		Symptoms:   NewSymptomRepository(database),
		Pregnancy:  NewPregnancyRepository(database),
		Postpartum: NewPostpartumRepository(database),
		Content:    NewContentRepository(database),
		Tokens:     NewTokenRepository(database),
	}
}
