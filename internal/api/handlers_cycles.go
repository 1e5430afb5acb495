package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/models"
	"github.com/hersaheli/saheli/internal/services"
)

type periodInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type cycleResponse struct {
	ID        uint    `json:"id"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func newCycleResponse(cycle models.Cycle) cycleResponse {
	response := cycleResponse{
		ID:        cycle.ID,
		StartDate: services.FormatCalendarDay(cycle.StartDate),
	}
	if cycle.EndDate != nil {
		end := services.FormatCalendarDay(*cycle.EndDate)
		response.EndDate = &end
	}
	return response
}

func formatDays(days []time.Time) []string {
	formatted := make([]string, 0, len(days))
	for _, day := range days {
		formatted = append(formatted, services.FormatCalendarDay(day))
	}
	return formatted
}

func (handler *Handler) ListPeriodDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days, err := handler.cycleService.ListPeriodDays(user.ID, handler.today())
	if err != nil {
		return respondServiceError(c, "cycle listing", err)
	}
	return c.JSON(formatDays(days))
}

// StartOrEndPeriod ends the open period when end_date is given, otherwise starts a new one.
func (handler *Handler) StartOrEndPeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := periodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	switch {
	case input.EndDate != "":
		end, err := parseDateParam(input.EndDate)
		if err != nil {
			return fieldTypeError(c, "end_date", invalidDateMessage)
		}
		cycle, err := handler.cycleService.EndPeriod(c.UserContext(), user.ID, end)
		if errors.Is(err, services.ErrNoOpenPeriod) {
			return apiError(c, fiber.StatusBadRequest, "No active period found to end.")
		}
		if err != nil {
			return respondServiceError(c, "period end", err)
		}
		return c.JSON(newCycleResponse(cycle))
	case input.StartDate != "":
		start, err := parseDateParam(input.StartDate)
		if err != nil {
			return fieldTypeError(c, "start_date", invalidDateMessage)
		}
		cycle, err := handler.cycleService.StartPeriod(c.UserContext(), user.ID, start)
		if errors.Is(err, services.ErrPeriodAlreadyOpen) {
			return apiError(c, fiber.StatusBadRequest, "An active period already exists. End it before starting a new one.")
		}
		if err != nil {
			return respondServiceError(c, "period start", err)
		}
		return c.Status(fiber.StatusCreated).JSON(newCycleResponse(cycle))
	default:
		return apiError(c, fiber.StatusBadRequest, "Provide 'start_date' to begin a period or 'end_date' to end the current one.")
	}
}

func (handler *Handler) AddPeriodDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidDateMessage)
	}

	created, err := handler.cycleService.ToggleDayAdd(c.UserContext(), user.ID, day, handler.today())
	if err != nil {
		return respondServiceError(c, "period day update", err)
	}
	if created {
		return c.SendStatus(fiber.StatusCreated)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (handler *Handler) RemovePeriodDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidDateMessage)
	}

	if err := handler.cycleService.ToggleDayRemove(c.UserContext(), user.ID, day, handler.today()); err != nil {
		return respondServiceError(c, "period day update", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) GetSymptoms(c *fiber.Ctx) error {
	symptoms, err := handler.symptomService.ListSymptoms()
	if err != nil {
		return respondServiceError(c, "symptom listing", err)
	}
	return c.JSON(symptoms)
}
