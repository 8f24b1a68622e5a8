package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hydrai/telemetry-system/internal/api/middleware"
	"github.com/hydrai/telemetry-system/internal/core/domain"
)

// currentUser extracts the user resolved by the Auth middleware. Its presence
// proves the middleware ran; a handler reached without it is a wiring bug and
// fails closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
