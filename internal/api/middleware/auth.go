package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-service/internal/api/metrics"
	"github.com/99minutos/identity-service/internal/core/domain"
	"github.com/99minutos/identity-service/internal/core/ports"
	"github.com/99minutos/identity-service/internal/core/token"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUser = "current_user"
)

// Auth validates the bearer access token, resolves the caller through the
// auth service, and injects the resulting user into context. Requests fail
// with 401 when the token is missing, malformed, expired, of the wrong type,
// or when the subject no longer exists or is deactivated.
func Auth(tokens *token.Manager, auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header")
			}

			userID, err := tokens.Verify(parts[1], token.TypeAccess)
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			user, err := auth.Resolve(c.Request().Context(), userID)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUserNotFound):
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
				case errors.Is(err, domain.ErrUserDisabled):
					return echo.NewHTTPError(http.StatusUnauthorized, "User account is disabled")
				}
				return err
			}

			c.Set(CtxUser, user)
			return next(c)
		}
	}
}
