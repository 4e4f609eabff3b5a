package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-service/internal/api/middleware"
	"github.com/99minutos/identity-service/internal/core/domain"
)

// ctxUser extracts the authenticated caller injected by the Auth middleware.
// Its presence proves the middleware ran; routes wired without it fail fast
// with 401 rather than proceeding unauthenticated.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication claims")
	}
	return user, nil
}
