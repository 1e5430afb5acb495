package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrTokenRevoked      = errors.New("token revoked")
	ErrTokenRevokeFailed = errors.New("revoke token failed")
)

type RevokedTokenRepository interface {
	Revoke(tokenID string, userID uint, expiresAt time.Time) error
	IsRevoked(tokenID string) (bool, error)
	PurgeExpired(now time.Time) (int64, error)
}

// SessionService tracks refresh tokens that can no longer be exchanged.
type SessionService struct {
	tokens RevokedTokenRepository
}

func NewSessionService(tokens RevokedTokenRepository) *SessionService {
	return &SessionService{tokens: tokens}
}

// EnsureActive returns ErrTokenRevoked for blacklisted token ids.
func (service *SessionService) EnsureActive(tokenID string) error {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return ErrTokenRevoked
	}
	revoked, err := service.tokens.IsRevoked(tokenID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTokenRevokeFailed, err)
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

func (service *SessionService) Revoke(tokenID string, userID uint, expiresAt time.Time) error {
	if err := service.tokens.Revoke(tokenID, userID, expiresAt); err != nil {
		return fmt.Errorf("%w: %v", ErrTokenRevokeFailed, err)
	}
	return nil
}

// Rotate revokes the presented token. A token that was already revoked is rejected.
func (service *SessionService) Rotate(tokenID string, userID uint, expiresAt time.Time) error {
	if err := service.EnsureActive(tokenID); err != nil {
		return err
	}
	return service.Revoke(tokenID, userID, expiresAt)
}

func (service *SessionService) PurgeExpired(now time.Time) (int64, error) {
	return service.tokens.PurgeExpired(now)
}
