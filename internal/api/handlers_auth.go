package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/models"
	"github.com/hersaheli/saheli/internal/services"
)

type registrationInput struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Age          *int   `json:"age"`
	AverageCycle *int   `json:"average_cycle"`
	Mode         string `json:"mode"`
}

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshInput struct {
	Refresh string `json:"refresh"`
}

type profileResponse struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Age          *int   `json:"age"`
	AverageCycle int    `json:"average_cycle"`
	SelectedMode string `json:"selected_mode"`
}

func newProfileResponse(user *models.User, profile models.UserProfile) profileResponse {
	return profileResponse{
		ID:           profile.ID,
		Username:     user.Username,
		Name:         profile.Name,
		Age:          profile.Age,
		AverageCycle: profile.AverageCycle,
		SelectedMode: profile.SelectedMode,
	}
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registrationInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, _, err := handler.authService.Register(services.RegistrationInput{
		Username:     input.Username,
		Password:     input.Password,
		Name:         input.Name,
		Age:          input.Age,
		AverageCycle: input.AverageCycle,
		SelectedMode: input.Mode,
	})
	if errors.Is(err, services.ErrUsernameTaken) {
		return validationError(c, &services.ValidationError{Field: "username", Message: "A user with that username already exists."})
	}
	if err != nil {
		return respondServiceError(c, "registration", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	limiterKey := loginLimiterKey(c, input.Username)
	now := handler.now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	user, err := handler.authService.Authenticate(input.Username, input.Password)
	if errors.Is(err, services.ErrAuthCredentialsInvalid) {
		handler.loginLimiter.recordFailure(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "No active account found with the given credentials")
	}
	if err != nil {
		return respondServiceError(c, "login", err)
	}
	handler.loginLimiter.reset(limiterKey)

	profile, err := handler.profileService.GetProfile(user.ID)
	if err != nil {
		return respondServiceError(c, "login", err)
	}
	tokens, err := handler.issueTokenPair(&user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(fiber.Map{
		"access_token":  tokens.Access.Value,
		"refresh_token": tokens.Refresh.Value,
		"user":          newProfileResponse(&user, profile),
	})
}

// RefreshToken exchanges a refresh token for a new pair. The presented token is revoked.
func (handler *Handler) RefreshToken(c *fiber.Ctx) error {
	input := refreshInput{}
	if err := c.BodyParser(&input); err != nil || input.Refresh == "" {
		return validationError(c, &services.ValidationError{Field: "refresh", Message: "This field is required."})
	}

	limiterKey := clientAddressKey(c)
	now := handler.now()
	if handler.refreshLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many refresh attempts")
	}

	claims, err := handler.parseToken(input.Refresh, tokenTypeRefresh)
	if err != nil {
		handler.refreshLimiter.recordFailure(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "Token is invalid or expired")
	}
	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		handler.refreshLimiter.recordFailure(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "Token is invalid or expired")
	}

	if err := handler.sessionService.Rotate(claims.ID, claims.UserID, claims.ExpiresAt.Time); err != nil {
		if errors.Is(err, services.ErrTokenRevoked) {
			handler.refreshLimiter.recordFailure(limiterKey, now)
			return apiError(c, fiber.StatusUnauthorized, "Token is blacklisted")
		}
		return respondServiceError(c, "token refresh", err)
	}

	tokens, err := handler.issueTokenPair(&user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{
		"access":  tokens.Access.Value,
		"refresh": tokens.Refresh.Value,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := refreshInput{}
	if err := c.BodyParser(&input); err != nil || input.Refresh == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	claims, err := handler.parseToken(input.Refresh, tokenTypeRefresh)
	if err != nil || claims.UserID != user.ID {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	if err := handler.sessionService.Revoke(claims.ID, claims.UserID, claims.ExpiresAt.Time); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	return c.SendStatus(fiber.StatusResetContent)
}
