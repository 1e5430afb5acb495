package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hersaheli/saheli/internal/db"
	"github.com/hersaheli/saheli/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 30 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	loginAttemptLimit   = 10
	loginAttemptWindow  = 15 * time.Minute
	refreshFailureLimit = 20
)

type Handler struct {
	db              *gorm.DB
	secretKey       []byte
	location        *time.Location
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	now             func() time.Time
	loginLimiter    *attemptLimiter
	refreshLimiter  *attemptLimiter

	repositories      *db.Repositories
	authService       *services.AuthService
	sessionService    *services.SessionService
	profileService    *services.ProfileService
	cycleService      *services.CycleService
	dailyLogService   *services.DailyLogService
	predictionService *services.PredictionService
	insightService    *services.InsightService
	symptomService    *services.SymptomService
	pregnancyService  *services.PregnancyService
	postpartumService *services.PostpartumService
	contentService    *services.ContentService
	exportService     *services.ExportService
}

type TokenSettings struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type authClaims struct {
	UserID    uint   `json:"uid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}
