package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/token", handler.Login)
	auth.Post("/token/refresh", handler.RefreshToken)

	users := api.Group("/users")
	users.Post("/register", handler.Register)
	users.Post("/logout", handler.AuthRequired, handler.Logout)
	users.Get("/profile", handler.AuthRequired, handler.GetProfile)
	users.Put("/profile", handler.AuthRequired, handler.UpdateProfile)
	users.Patch("/profile", handler.AuthRequired, handler.UpdateProfile)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.ListPeriodDays)
	cycles.Post("", handler.StartOrEndPeriod)
	cycles.Get("/predictions", handler.GetPredictions)
	cycles.Get("/insights", handler.GetInsights)
	cycles.Get("/symptoms", handler.GetSymptoms)
	cycles.Post("/days/:date", handler.AddPeriodDay)
	cycles.Delete("/days/:date", handler.RemovePeriodDay)
	cycles.Get("/logs/:date", handler.GetDailyLog)
	cycles.Post("/logs/:date", handler.SaveDailyLog)

	pregnancy := api.Group("/pregnancy", handler.AuthRequired)
	pregnancy.Get("/profile", handler.GetPregnancyProfile)
	pregnancy.Put("/profile", handler.UpdatePregnancyProfile)

	postpartum := api.Group("/postpartum", handler.AuthRequired)
	postpartum.Get("/logs", handler.ListPostpartumLogs)
	postpartum.Get("/logs/:date", handler.GetPostpartumLog)
	postpartum.Post("/logs/:date", handler.SavePostpartumLog)

	api.Get("/content", handler.AuthRequired, handler.ListContent)
	api.Post("/chatbot/query", handler.AuthRequired, handler.ChatbotQuery)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/xlsx", handler.ExportXLSX)
}
