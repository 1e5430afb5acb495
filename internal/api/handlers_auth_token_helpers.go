package api

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hersaheli/saheli/internal/models"
)

type issuedToken struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

type tokenPair struct {
	Access  issuedToken
	Refresh issuedToken
}

func (handler *Handler) issueTokenPair(user *models.User) (tokenPair, error) {
	access, err := handler.buildToken(user, tokenTypeAccess, handler.accessTokenTTL)
	if err != nil {
		return tokenPair{}, err
	}
	refresh, err := handler.buildToken(user, tokenTypeRefresh, handler.refreshTokenTTL)
	if err != nil {
		return tokenPair{}, err
	}
	return tokenPair{Access: access, Refresh: refresh}, nil
}

func (handler *Handler) buildToken(user *models.User, tokenType string, ttl time.Duration) (issuedToken, error) {
	now := handler.now()
	tokenID := uuid.NewString()
	expiresAt := now.Add(ttl)

	claims := authClaims{
		UserID:    user.ID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(handler.secretKey)
	if err != nil {
		return issuedToken{}, err
	}
	return issuedToken{Value: signed, ID: tokenID, ExpiresAt: expiresAt}, nil
}

func (handler *Handler) parseToken(raw string, expectedType string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithTimeFunc(handler.now))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.ExpiresAt == nil {
		return nil, errors.New("token expired")
	}
	if claims.TokenType != expectedType {
		return nil, errors.New("unexpected token type")
	}
	return claims, nil
}
