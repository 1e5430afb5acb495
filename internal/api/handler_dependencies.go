package api

import (
	"github.com/hersaheli/saheli/internal/db"
	"github.com/hersaheli/saheli/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	repos := db.NewRepositories(database)
	handler.repositories = repos
	handler.authService = services.NewAuthService(repos.Users)
	handler.sessionService = services.NewSessionService(repos.Tokens)
	handler.profileService = services.NewProfileService(repos.Users)
	handler.cycleService = services.NewCycleService(repos.Cycles)
	handler.dailyLogService = services.NewDailyLogService(repos.DailyLogs, repos.Symptoms)
	handler.predictionService = services.NewPredictionService(repos.Cycles, repos.Users)
	handler.insightService = services.NewInsightService(repos.Cycles, repos.DailyLogs, repos.Symptoms)
	handler.symptomService = services.NewSymptomService(repos.Symptoms)
	handler.pregnancyService = services.NewPregnancyService(repos.Pregnancy)
	handler.postpartumService = services.NewPostpartumService(repos.Postpartum)
	handler.contentService = services.NewContentService(repos.Content)
	handler.exportService = services.NewExportService(repos.Cycles, repos.DailyLogs)
	return handler
}
