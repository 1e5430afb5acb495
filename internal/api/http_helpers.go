package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/services"
)

const invalidDateMessage = "Invalid date format. Use YYYY-MM-DD."

var errInvalidJSONBody = errors.New("invalid JSON body")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, err *services.ValidationError) error {
	payload := fiber.Map{"error": err.Message}
	if err.Field != "" {
		payload["field"] = err.Field
	}
	return c.Status(fiber.StatusBadRequest).JSON(payload)
}

// respondServiceError maps service failures to responses. Unclassified errors are logged and
// reported as "<operation> failed".
func respondServiceError(c *fiber.Ctx, operation string, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationError(c, validationErr)
	case errors.Is(err, services.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apiError(c, fiber.StatusServiceUnavailable, "request cancelled")
	default:
		log.Printf("%s failed: %v", operation, err)
		return apiError(c, fiber.StatusInternalServerError, operation+" failed")
	}
}

func parseDateParam(raw string) (time.Time, error) {
	return services.ParseCalendarDay(raw)
}

// decodeJSONFields keeps the raw value of every top-level key so that handlers can tell an
// omitted field from an explicit null.
func decodeJSONFields(c *fiber.Ctx) (map[string]json.RawMessage, error) {
	fields := make(map[string]json.RawMessage)
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errInvalidJSONBody
	}
	return fields, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func decodeOptionalString(raw json.RawMessage) (*string, error) {
	if isJSONNull(raw) {
		return nil, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return &value, nil
}

func decodeOptionalInt(raw json.RawMessage) (*int, error) {
	if isJSONNull(raw) {
		return nil, nil
	}
	var value int
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return &value, nil
}

func fieldTypeError(c *fiber.Ctx, field string, message string) error {
	return validationError(c, &services.ValidationError{Field: field, Message: message})
}
