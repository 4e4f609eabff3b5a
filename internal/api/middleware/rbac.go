package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-service/internal/core/domain"
)

// AdminRequired enforces the admin role on routes already behind Auth.
func AdminRequired() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(CtxUser).(*domain.User)
			if user == nil || !user.IsAdmin() {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "Admin access required"})
			}
			return next(c)
		}
	}
}
