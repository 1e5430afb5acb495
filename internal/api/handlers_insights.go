package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/services"
)

type predictionResponse struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

type cycleLengthResponse struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type symptomAnalysisResponse struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	Trend     string `json:"trend"`
}

type patternResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type insightsResponse struct {
	CycleLength []cycleLengthResponse     `json:"cycleLength"`
	Symptoms    []symptomAnalysisResponse `json:"symptoms"`
	Patterns    []patternResponse         `json:"patterns"`
}

func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	events, err := handler.predictionService.PredictForUser(user.ID)
	if errors.Is(err, services.ErrNotEnoughCycleData) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not enough cycle data to make a prediction."})
	}
	if err != nil {
		return respondServiceError(c, "prediction", err)
	}

	response := make([]predictionResponse, 0, len(events))
	for _, event := range events {
		response = append(response, predictionResponse{
			Date: services.FormatCalendarDay(event.Date),
			Type: event.Type,
		})
	}
	return c.JSON(response)
}

func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	insights, err := handler.insightService.InsightsForUser(user.ID, handler.today())
	if err != nil {
		return respondServiceError(c, "insights", err)
	}
	return c.JSON(newInsightsResponse(insights))
}

func newInsightsResponse(insights services.Insights) insightsResponse {
	response := insightsResponse{
		CycleLength: make([]cycleLengthResponse, 0, len(insights.CycleLength)),
		Symptoms:    make([]symptomAnalysisResponse, 0, len(insights.Symptoms)),
		Patterns:    make([]patternResponse, 0, len(insights.Patterns)),
	}
	for _, point := range insights.CycleLength {
		response.CycleLength = append(response.CycleLength, cycleLengthResponse{Label: point.Label, Value: point.Value})
	}
	for _, symptom := range insights.Symptoms {
		response.Symptoms = append(response.Symptoms, symptomAnalysisResponse{
			Name:      symptom.Name,
			Frequency: strconv.Itoa(symptom.Frequency) + "%",
			Trend:     symptom.Trend,
		})
	}
	for _, pattern := range insights.Patterns {
		response.Patterns = append(response.Patterns, patternResponse{
			Title:       pattern.Title,
			Description: pattern.Description,
			Icon:        pattern.Icon,
		})
	}
	return response
}
