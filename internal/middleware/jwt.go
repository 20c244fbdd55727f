package middleware

import (
	"context"
	"net/http"
	"strings"

	"dinepos/internal/common"
	"dinepos/internal/services"
	"dinepos/internal/session"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ClaimsKey is where the validated token claims land in the echo context,
// for handlers that need to revoke the token (logout).
const ClaimsKey = "auth_claims"

// JWTMiddleware validates the bearer token, rejects revoked tokens, and
// requires a live session. User id and session id go into the request
// context for downstream handlers.
func JWTMiddleware(authSvc services.AuthService, sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			claims, err := authSvc.ValidateToken(c.Request().Context(), tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			sessionID, err := uuid.Parse(claims.SessionID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid session id in token")
			}

			if _, ok := sessions.Get(sessionID); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Session expired")
			}

			c.Set(ClaimsKey, claims)
			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, common.SessionIDKey, sessionID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
