package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/student-portal/internal/api/metrics"
	"github.com/campuslink/student-portal/internal/api/middleware"
	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
)

// AuthHandler serves the two-phase OTP login.
type AuthHandler struct {
	loginService ports.LoginService
}

func NewAuthHandler(loginService ports.LoginService) *AuthHandler {
	return &AuthHandler{loginService: loginService}
}

// RequestOTP is phase 1: check credentials and mail a one-time code.
//
// @Summary      Request a login OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      requestOTPRequest  true  "Candidate username and email"
// @Success      200   {object}  requestOTPResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login/otp [post]
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req requestOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	issue, err := h.loginService.RequestOTP(c.Request().Context(), req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownUser):
			metrics.LoginFailuresTotal.WithLabelValues("unknown_user").Inc()
		case errors.Is(err, domain.ErrEmailMismatch):
			metrics.LoginFailuresTotal.WithLabelValues("email_mismatch").Inc()
		}
		return err
	}

	metrics.OTPIssuedTotal.Inc()
	resp := requestOTPResponse{
		OTPSent: true,
		Message: "An OTP has been sent to your email address.",
	}
	if issue.MailErr != nil {
		// The flow moved forward anyway; the caller is told delivery failed.
		metrics.NotificationsFailedTotal.WithLabelValues("otp").Inc()
		resp.MailError = "There was a problem sending the OTP email."
	}
	return c.JSON(http.StatusOK, resp)
}

// Login is phase 2: verify the code, authenticate the password, finalize the
// session and send the browser back to the site root.
//
// @Summary      Verify OTP and log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Username, OTP and password"
// @Success      303   {string}  string  "redirect to /"
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	session, err := h.loginService.VerifyOTP(c.Request().Context(), req.Username, req.OTP, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOTP):
			metrics.LoginFailuresTotal.WithLabelValues("invalid_otp").Inc()
		case errors.Is(err, domain.ErrInvalidPassword):
			metrics.LoginFailuresTotal.WithLabelValues("invalid_password").Inc()
		}
		return err
	}

	metrics.LoginsTotal.Inc()
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/")
}
