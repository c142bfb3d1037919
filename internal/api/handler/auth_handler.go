package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/crmdesk/portal/internal/api/middleware"
	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookie      middleware.SessionCookie
	logger      zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookie middleware.SessionCookie, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User        domain.User `json:"user"`
	DisplayName string      `json:"display_name"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

func newSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{User: s.User, DisplayName: s.User.DisplayName(), ExpiresAt: s.ExpiresAt}
}

type logoutResponse struct {
	Success bool `json:"success"`
}

// Login authenticates against the CRM backend and opens a portal session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if err := h.cookie.Issue(c, session); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(session))
}

// Logout ends the session. The local session is always removed, so the
// answer is success even when the backend could not revoke its token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	if err := h.authService.Logout(c.Request().Context(), session); err != nil {
		h.logger.Warn().Err(err).Str("username", session.User.Username).Msg("logout completed with errors")
	}
	h.cookie.Clear(c)
	return c.JSON(http.StatusOK, logoutResponse{Success: true})
}

// Session returns the signed-in user.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return domain.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, newSessionResponse(session))
}
