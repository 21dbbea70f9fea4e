package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/student-portal/internal/core/ports"
)

// StudentHandler serves the public student listing API.
type StudentHandler struct {
	reporting ports.ReportingService
}

func NewStudentHandler(reporting ports.ReportingService) *StudentHandler {
	return &StudentHandler{reporting: reporting}
}

// List returns students filtered by stream, joining year, passing year and
// name substring. All filters are optional.
//
// @Summary      List students
// @Tags         students
// @Produce      json
// @Param        stream        query     string  false  "Stream name"
// @Param        joining_year  query     int     false  "Joining year"
// @Param        passing_year  query     int     false  "Passing year"
// @Param        name          query     string  false  "Name substring"
// @Success      200  {array}  ports.StudentRecord
// @Router       /api/students [get]
func (h *StudentHandler) List(c echo.Context) error {
	filter := ports.StudentFilter{
		Stream: c.QueryParam("stream"),
		Name:   c.QueryParam("name"),
	}
	if v := c.QueryParam("joining_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "joining_year must be a number")
		}
		filter.JoiningYear = year
	}
	if v := c.QueryParam("passing_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "passing_year must be a number")
		}
		filter.PassingYear = year
	}

	records, err := h.reporting.ListStudents(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
