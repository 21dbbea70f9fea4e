package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/student-portal/internal/core/ports"
)

// DashboardHandler serves the admin reporting views.
type DashboardHandler struct {
	reporting ports.ReportingService
}

func NewDashboardHandler(reporting ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reporting: reporting}
}

// InactiveStudents lists disabled accounts created in the given month,
// defaulting to the current one.
//
// @Summary      List inactive students
// @Tags         dashboard
// @Produce      json
// @Param        year   query     int  false  "Year (defaults to current)"
// @Param        month  query     int  false  "Month 1-12 (defaults to current)"
// @Success      200  {object}  ports.InactiveReport
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/inactive-students [get]
func (h *DashboardHandler) InactiveStudents(c echo.Context) error {
	var year, month int
	if v := c.QueryParam("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "year must be a number")
		}
		year = n
	}
	if v := c.QueryParam("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return echo.NewHTTPError(http.StatusBadRequest, "month must be between 1 and 12")
		}
		month = n
	}

	report, err := h.reporting.InactiveStudents(c.Request().Context(), year, month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// topActiveResponse is the leaderboard block payload.
type topActiveResponse struct {
	Title    string               `json:"title"`
	Students []ports.ActiveStudent `json:"students"`
}

// TopActiveStudents returns the login-count leaderboard block.
//
// @Summary      Top active students
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  topActiveResponse
// @Router       /blocks/top-active-students [get]
func (h *DashboardHandler) TopActiveStudents(c echo.Context) error {
	rows, err := h.reporting.TopActiveStudents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, topActiveResponse{
		Title:    "Top 5 Active Students",
		Students: rows,
	})
}
