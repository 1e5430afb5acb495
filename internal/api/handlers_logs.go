package api

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/models"
	"github.com/hersaheli/saheli/internal/services"
)

type dailyLogResponse struct {
	Date        string   `json:"date"`
	Mood        *string  `json:"mood"`
	PainLevel   *int     `json:"pain_level"`
	EnergyLevel *int     `json:"energy_level"`
	Notes       *string  `json:"notes"`
	Symptoms    []string `json:"symptoms"`
}

func newDailyLogResponse(entry models.DailyLog) dailyLogResponse {
	names := make([]string, 0, len(entry.Symptoms))
	for _, symptom := range entry.Symptoms {
		names = append(names, symptom.Name)
	}
	sort.Strings(names)

	return dailyLogResponse{
		Date:        services.FormatCalendarDay(entry.Date),
		Mood:        entry.Mood,
		PainLevel:   entry.PainLevel,
		EnergyLevel: entry.EnergyLevel,
		Notes:       entry.Notes,
		Symptoms:    names,
	}
}

func (handler *Handler) GetDailyLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidDateMessage)
	}

	entry, err := handler.dailyLogService.GetDailyLog(user.ID, day)
	if errors.Is(err, services.ErrDailyLogNotFound) {
		return apiError(c, fiber.StatusNotFound, "No log found for this date.")
	}
	if err != nil {
		return respondServiceError(c, "daily log load", err)
	}
	return c.JSON(newDailyLogResponse(entry))
}

// SaveDailyLog merges the fields present in the body into the day's log. Omitted fields are kept
// and explicit nulls clear them.
func (handler *Handler) SaveDailyLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidDateMessage)
	}

	fields, err := decodeJSONFields(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	patch, invalid := dailyLogPatchFromFields(fields)
	if invalid != nil {
		return validationError(c, invalid)
	}

	entry, created, err := handler.dailyLogService.PatchDailyLog(c.UserContext(), user.ID, day, patch)
	if err != nil {
		return respondServiceError(c, "daily log save", err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(newDailyLogResponse(entry))
}

func dailyLogPatchFromFields(fields map[string]json.RawMessage) (services.DailyLogPatch, *services.ValidationError) {
	patch := services.DailyLogPatch{}

	if raw, ok := fields["mood"]; ok {
		mood, err := decodeOptionalString(raw)
		if err != nil {
			return patch, &services.ValidationError{Field: "mood", Message: "Not a valid string."}
		}
		patch.MoodSet = true
		patch.Mood = mood
	}
	if raw, ok := fields["pain_level"]; ok {
		level, err := decodeOptionalInt(raw)
		if err != nil {
			return patch, &services.ValidationError{Field: "pain_level", Message: "A valid integer is required."}
		}
		patch.PainLevelSet = true
		patch.PainLevel = level
	}
	if raw, ok := fields["energy_level"]; ok {
		level, err := decodeOptionalInt(raw)
		if err != nil {
			return patch, &services.ValidationError{Field: "energy_level", Message: "A valid integer is required."}
		}
		patch.EnergyLevelSet = true
		patch.EnergyLevel = level
	}
	if raw, ok := fields["notes"]; ok {
		notes, err := decodeOptionalString(raw)
		if err != nil {
			return patch, &services.ValidationError{Field: "notes", Message: "Not a valid string."}
		}
		patch.NotesSet = true
		patch.Notes = notes
	}
	if raw, ok := fields["symptoms"]; ok {
		names := make([]string, 0)
		if !isJSONNull(raw) {
			if err := json.Unmarshal(raw, &names); err != nil {
				return patch, &services.ValidationError{Field: "symptoms", Message: "Expected a list of symptom names."}
			}
		}
		patch.SymptomsSet = true
		patch.Symptoms = names
	}
	return patch, nil
}
