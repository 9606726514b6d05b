package middleware

import (
	deliverycontext "booker/internal/delivery/context"
	"booker/internal/delivery/http/response"
	"booker/internal/domain/entity"
	"booker/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "auth-token"

// AuthMiddleware provides middleware for session-cookie authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the session cookie and attaches the actor to the
// context. Every verification failure collapses into the same generic 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Missing or invalid session token")
		}

		claims, err := m.tokenSvc.Verify(cookie.Value, service.TokenTypeAccess)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Missing or invalid session token")
		}

		deliverycontext.SetActor(c, entity.Actor{
			UserID:  claims.UserID,
			Email:   claims.Email,
			IsAdmin: claims.IsAdmin,
		})

		return next(c)
	}
}

// RequireAdmin rejects non-admin actors. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := deliverycontext.GetActor(c)
		if !ok {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Missing or invalid session token")
		}

		if !actor.IsAdmin {
			return response.Forbidden(c, "FORBIDDEN", "Admin access required")
		}

		return next(c)
	}
}
