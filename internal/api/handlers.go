package api

import (
	"errors"
	"strings"
	"time"

	"github.com/hersaheli/saheli/internal/services"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secret string, location *time.Location, tokens TokenSettings) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("secret key is required")
	}
	if location == nil {
		location = time.UTC
	}
	if tokens.AccessTTL <= 0 {
		tokens.AccessTTL = defaultAccessTokenTTL
	}
	if tokens.RefreshTTL <= 0 {
		tokens.RefreshTTL = defaultRefreshTokenTTL
	}

	handler := &Handler{
		db:              database,
		secretKey:       []byte(secret),
		location:        location,
		accessTokenTTL:  tokens.AccessTTL,
		refreshTokenTTL: tokens.RefreshTTL,
		now:             time.Now,
		loginLimiter:    newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		refreshLimiter:  newAttemptLimiter(refreshFailureLimit, loginAttemptWindow),
	}
	return handler.withDependencies(database), nil
}

// today is the current calendar day in the configured time zone.
func (handler *Handler) today() time.Time {
	return services.Today(handler.now(), handler.location)
}
