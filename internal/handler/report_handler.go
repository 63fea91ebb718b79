package handler

import (
	"time"

	"go-pos-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: s}
}

// dateRangeFromQuery reads date_from/date_to (YYYY-MM-DD), defaulting to
// the last 30 days. The end date is inclusive.
func dateRangeFromQuery(c *fiber.Ctx) (time.Time, time.Time) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := c.Query("date_from"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = t
		}
	}
	if s := c.Query("date_to"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			to = t.AddDate(0, 0, 1).Add(-time.Second)
		}
	}
	return from, to
}

// GetSalesReport returns the full sales report for a date range
// GET /api/v1/reports/sales
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	from, to := dateRangeFromQuery(c)

	report, err := h.reportService.GetSalesReport(from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build sales report"})
	}
	return c.JSON(report)
}

// GetDashboardStats returns the back-office overview numbers
// GET /api/v1/dashboard/stats
func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.reportService.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

// GetSalesChart returns daily revenue for charts
// Query params: days (default 7)
// GET /api/v1/dashboard/sales-chart
func (h *ReportHandler) GetSalesChart(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days <= 0 {
		days = 7
	}

	data, err := h.reportService.GetSalesChart(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sales chart"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}
