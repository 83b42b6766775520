package report

import (
	"log/slog"
	"net/http"

	"librarycirc/service/reports"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reports.Service
	Log *slog.Logger
}

// GET /v1/reports/summary
func (h *Controller) Summary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.Summary(c.Request().Context()))
}

// GET /v1/reports/overdue
func (h *Controller) Overdue(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": h.Svc.Overdue(c.Request().Context())})
}

// GET /v1/reports/borrowers
func (h *Controller) Borrowers(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": h.Svc.BorrowerActivity(c.Request().Context())})
}
