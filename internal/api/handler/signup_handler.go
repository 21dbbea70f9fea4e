package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/student-portal/internal/api/metrics"
	"github.com/campuslink/student-portal/internal/core/ports"
)

// SignupHandler serves student registration.
type SignupHandler struct {
	signupService ports.SignupService
	streamService ports.StreamService
}

func NewSignupHandler(signupService ports.SignupService, streamService ports.StreamService) *SignupHandler {
	return &SignupHandler{signupService: signupService, streamService: streamService}
}

// Signup registers a new student account.
//
// @Summary      Register a student
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  signupResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *SignupHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	identity, err := h.signupService.Signup(c.Request().Context(), ports.SignupInput{
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		MobileNumber: req.MobileNumber,
		StreamID:     req.Stream,
		JoiningYear:  req.JoiningYear,
		PassingYear:  req.PassingYear,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, signupResponse{
		UID:       identity.ID,
		StudentID: identity.StudentID,
		Message:   "Your registration has been submitted successfully.",
	})
}

// Streams lists the selectable stream options for the signup form.
//
// @Summary      List signup stream options
// @Tags         auth
// @Produce      json
// @Success      200  {array}  streamOption
// @Router       /auth/signup/streams [get]
func (h *SignupHandler) Streams(c echo.Context) error {
	cats, err := h.streamService.Options(c.Request().Context())
	if err != nil {
		return err
	}

	options := make([]streamOption, 0, len(cats))
	for _, cat := range cats {
		options = append(options, streamOption{ID: cat.ID, Name: cat.Name})
	}
	return c.JSON(http.StatusOK, options)
}
