package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"fruteria/internal/models"
	"fruteria/internal/services"
)

// ReportHandler serves the dashboard and expiry views.
type ReportHandler struct {
	service *services.ReportService
	now     func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
		now:     time.Now,
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Get("/dashboard", h.HandleDashboard)
	reportRoutes.Get("/expiry", h.HandleExpiry)
}

// reference returns the day reports are computed for: ?date=YYYY-MM-DD or today.
func (h *ReportHandler) reference(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return h.now(), nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return d.Time, nil
}

// HandleDashboard returns totals and the latest movements. Sources that fail
// are listed under "errors" while the rest of the dashboard is still returned.
func (h *ReportHandler) HandleDashboard(c *fiber.Ctx) error {
	ref, err := h.reference(c)
	if err != nil {
		return badRequest(c, "Invalid date", err)
	}
	dashboard, err := h.service.Dashboard(c.UserContext(), ref)
	if err != nil {
		return respondError(c, "Could not build dashboard", err)
	}
	return c.JSON(dashboard)
}

// HandleExpiry returns products grouped by expiry status.
func (h *ReportHandler) HandleExpiry(c *fiber.Ctx) error {
	ref, err := h.reference(c)
	if err != nil {
		return badRequest(c, "Invalid date", err)
	}
	report, err := h.service.Expiry(c.UserContext(), ref)
	if err != nil {
		return respondError(c, "Could not build expiry report", err)
	}
	return c.JSON(report)
}
