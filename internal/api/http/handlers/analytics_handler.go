package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/loan-platform/internal/service"
)

// AnalyticsHandler exposes the super-admin traffic report.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService}
}

// Traffic GET /api/super-admin/traffic.
func (h *AnalyticsHandler) Traffic(c *fiber.Ctx) error {
	report, err := h.service.Traffic(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(report)
}
