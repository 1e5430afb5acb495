package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := handler.profileService.GetProfile(user.ID)
	if err != nil {
		return respondServiceError(c, "profile load", err)
	}
	return c.JSON(newProfileResponse(user, profile))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fields, err := decodeJSONFields(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	patch := services.ProfilePatch{}
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &patch.Name); err != nil {
			return fieldTypeError(c, "name", "Not a valid string.")
		}
		patch.NameSet = true
	}
	if raw, ok := fields["age"]; ok {
		age, err := decodeOptionalInt(raw)
		if err != nil {
			return fieldTypeError(c, "age", "A valid integer is required.")
		}
		patch.AgeSet = true
		patch.Age = age
	}
	if raw, ok := fields["average_cycle"]; ok {
		if err := json.Unmarshal(raw, &patch.AverageCycle); err != nil {
			return fieldTypeError(c, "average_cycle", "A valid integer is required.")
		}
		patch.AverageCycleSet = true
	}
	if raw, ok := fields["selected_mode"]; ok {
		if err := json.Unmarshal(raw, &patch.SelectedMode); err != nil {
			return fieldTypeError(c, "selected_mode", "Not a valid string.")
		}
		patch.SelectedModeSet = true
	}

	profile, err := handler.profileService.UpdateProfile(user.ID, patch)
	if err != nil {
		return respondServiceError(c, "profile update", err)
	}
	return c.JSON(newProfileResponse(user, profile))
}
