package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/models"
	"github.com/hersaheli/saheli/internal/services"
)

type pregnancyResponse struct {
	EstimatedDueDate *string `json:"estimated_due_date"`
	CurrentWeek      *int    `json:"current_week"`
}

func (handler *Handler) newPregnancyResponse(profile models.PregnancyProfile) pregnancyResponse {
	response := pregnancyResponse{}
	if profile.EstimatedDueDate != nil {
		dueDate := services.FormatCalendarDay(*profile.EstimatedDueDate)
		week := services.PregnancyWeek(*profile.EstimatedDueDate, handler.today())
		response.EstimatedDueDate = &dueDate
		response.CurrentWeek = &week
	}
	return response
}

func (handler *Handler) GetPregnancyProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := handler.pregnancyService.GetProfile(user.ID)
	if err != nil {
		return respondServiceError(c, "pregnancy profile load", err)
	}
	return c.JSON(handler.newPregnancyResponse(profile))
}

func (handler *Handler) UpdatePregnancyProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fields, err := decodeJSONFields(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	raw, ok := fields["estimated_due_date"]
	if !ok {
		return handler.GetPregnancyProfile(c)
	}

	rawDate, err := decodeOptionalString(raw)
	if err != nil {
		return fieldTypeError(c, "estimated_due_date", invalidDateMessage)
	}
	var parsed *time.Time
	if rawDate != nil && *rawDate != "" {
		day, err := parseDateParam(*rawDate)
		if err != nil {
			return fieldTypeError(c, "estimated_due_date", invalidDateMessage)
		}
		parsed = &day
	}

	profile, err := handler.pregnancyService.SetDueDate(user.ID, parsed)
	if err != nil {
		return respondServiceError(c, "pregnancy profile update", err)
	}
	return c.JSON(handler.newPregnancyResponse(profile))
}
