package api

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	data, status, message := handler.buildExportData(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	var output bytes.Buffer
	if err := services.WriteExportCSV(&output, data); err != nil {
		return respondServiceError(c, "export", err)
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(handler.now().In(handler.location), "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportXLSX(c *fiber.Ctx) error {
	data, status, message := handler.buildExportData(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	var output bytes.Buffer
	if err := services.WriteExportXLSX(&output, data); err != nil {
		return respondServiceError(c, "export", err)
	}

	setExportAttachmentHeaders(c, xlsxContentType, buildExportFilename(handler.now().In(handler.location), "xlsx"))
	return c.Send(output.Bytes())
}

func (handler *Handler) buildExportData(c *fiber.Ctx) (services.ExportData, int, string) {
	user, ok := currentUser(c)
	if !ok {
		return services.ExportData{}, fiber.StatusUnauthorized, "unauthorized"
	}

	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	switch err {
	case nil:
	case services.ErrExportFromDateInvalid:
		return services.ExportData{}, fiber.StatusBadRequest, "invalid from date"
	case services.ErrExportToDateInvalid:
		return services.ExportData{}, fiber.StatusBadRequest, "invalid to date"
	default:
		return services.ExportData{}, fiber.StatusBadRequest, "invalid range"
	}

	data, err := handler.exportService.BuildExport(user.ID, from, to, handler.today())
	if err != nil {
		log.Printf("export failed: %v", err)
		return services.ExportData{}, fiber.StatusInternalServerError, "failed to build export"
	}
	return data, 0, ""
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("saheli-export-%s.%s", now.Format("2006-01-02"), extension)
}
