package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/services"
)

type chatbotInput struct {
	Query string `json:"query"`
}

func (handler *Handler) ListContent(c *fiber.Ctx) error {
	items, err := handler.contentService.ListContent(services.ContentQuery{
		Mode:       c.Query("mode"),
		Type:       c.Query("type"),
		Week:       c.Query("week"),
		RenderHTML: strings.EqualFold(strings.TrimSpace(c.Query("format")), "html"),
	})
	if err != nil {
		return respondServiceError(c, "content listing", err)
	}
	return c.JSON(items)
}

func (handler *Handler) ChatbotQuery(c *fiber.Ctx) error {
	input := chatbotInput{}
	_ = c.BodyParser(&input)
	return c.JSON(fiber.Map{"response": services.ChatbotReply(input.Query)})
}
