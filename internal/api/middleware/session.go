package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/core/ports"
)

const DefaultCookieName = "crm_session"

var errInvalidCookie = errors.New("invalid session cookie")

// SessionCookie signs and reads the browser cookie that references a
// server-side session. The cookie holds an HS256 JWT; the backend token
// never leaves the server.
type SessionCookie struct {
	Name   string
	Secret []byte
	Secure bool
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Issue writes a cookie referencing s that expires with it.
func (sc SessionCookie) Issue(c echo.Context, s *domain.Session) error {
	claims := sessionClaims{
		SessionID: s.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.User.Username,
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sc.Secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     sc.name(),
		Value:    signed,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the cookie in the browser.
func (sc SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.name(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionID verifies a cookie value and returns the session id it carries.
func (sc SessionCookie) SessionID(value string) (string, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (any, error) {
		return sc.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid || claims.SessionID == "" {
		return "", errInvalidCookie
	}
	return claims.SessionID, nil
}

func (sc SessionCookie) name() string {
	if sc.Name == "" {
		return DefaultCookieName
	}
	return sc.Name
}

// Session resolves the cookie into a session and stores it in the request
// context. Requests without a valid session continue unauthenticated; a
// stale cookie is cleared on the way.
func Session(cookie SessionCookie, auth ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(cookie.name())
			if err != nil || ck.Value == "" {
				return next(c)
			}

			sid, err := cookie.SessionID(ck.Value)
			if err != nil {
				cookie.Clear(c)
				return next(c)
			}

			req := c.Request()
			session, err := auth.Resolve(req.Context(), sid)
			switch {
			case errors.Is(err, domain.ErrSessionNotFound):
				cookie.Clear(c)
				return next(c)
			case err != nil:
				log.Error().Err(err).Msg("session lookup failed")
				return err
			}

			c.SetRequest(req.WithContext(domain.WithSession(req.Context(), session)))
			return next(c)
		}
	}
}

// CurrentSession returns the session attached by Session, if any.
func CurrentSession(c echo.Context) (*domain.Session, bool) {
	return domain.SessionFromContext(c.Request().Context())
}

// RequestContext copies the request id set by echo's RequestID middleware
// into the request context so services can stamp it on activity events.
func RequestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(domain.WithRequestID(req.Context(), id)))
			}
			return next(c)
		}
	}
}
