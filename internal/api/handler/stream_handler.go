package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/student-portal/internal/api/middleware"
	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
)

// StreamHandler serves the per-student stream redirect and the category and
// content pages the access filter guards.
type StreamHandler struct {
	streamService ports.StreamService
	directory     ports.DirectoryRepository
	content       ports.ContentRepository
}

func NewStreamHandler(streamService ports.StreamService, directory ports.DirectoryRepository, content ports.ContentRepository) *StreamHandler {
	return &StreamHandler{streamService: streamService, directory: directory, content: content}
}

// MyStream sends a student to their stream's page. Anyone else gets a 404.
//
// @Summary      Redirect to own stream
// @Tags         streams
// @Success      302  {string}  string  "redirect to /taxonomy/term/{slug}"
// @Failure      404  {object}  errorResponse
// @Router       /my-stream [get]
func (h *StreamHandler) MyStream(c echo.Context) error {
	principal := middleware.CurrentPrincipal(c)
	path, err := h.streamService.RedirectPath(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, path)
}

// Category renders one stream category page.
//
// @Summary      Category page
// @Tags         streams
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  domain.Category
// @Failure      404  {object}  errorResponse
// @Router       /category/{id} [get]
func (h *StreamHandler) Category(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.ErrCategoryNotFound
	}

	cat, err := h.directory.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// Content renders one content page.
//
// @Summary      Content page
// @Tags         streams
// @Produce      json
// @Param        id   path      int  true  "Content ID"
// @Success      200  {object}  domain.ContentItem
// @Failure      404  {object}  errorResponse
// @Router       /content/{id} [get]
func (h *StreamHandler) Content(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.ErrContentNotFound
	}

	item, err := h.content.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}
