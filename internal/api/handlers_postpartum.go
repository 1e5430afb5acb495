package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/models"
	"github.com/hersaheli/saheli/internal/services"
)

type postpartumMoodInput struct {
	Mood string `json:"mood"`
}

type postpartumLogResponse struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
}

func newPostpartumLogResponse(entry models.PostpartumMoodLog) postpartumLogResponse {
	return postpartumLogResponse{
		Date: services.FormatCalendarDay(entry.Date),
		Mood: entry.Mood,
	}
}

func (handler *Handler) ListPostpartumLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.postpartumService.ListMoodLogs(user.ID)
	if err != nil {
		return respondServiceError(c, "postpartum log listing", err)
	}
	response := make([]postpartumLogResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, newPostpartumLogResponse(entry))
	}
	return c.JSON(response)
}

func (handler *Handler) GetPostpartumLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidDateMessage)
	}

	entry, err := handler.postpartumService.GetMoodLog(user.ID, day)
	if errors.Is(err, services.ErrPostpartumNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "No log found for this date."})
	}
	if err != nil {
		return respondServiceError(c, "postpartum log load", err)
	}
	return c.JSON(newPostpartumLogResponse(entry))
}

func (handler *Handler) SavePostpartumLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidDateMessage)
	}
	input := postpartumMoodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, created, err := handler.postpartumService.SetMood(c.UserContext(), user.ID, day, input.Mood)
	if err != nil {
		return respondServiceError(c, "postpartum log save", err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(newPostpartumLogResponse(entry))
}
