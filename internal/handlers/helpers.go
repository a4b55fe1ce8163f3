package handlers

import (
	"errors"
	"net/http"

	"github.com/igr/media-backend/internal/models"
	"github.com/igr/media-backend/internal/repositories"
	"github.com/igr/media-backend/internal/services"
	"github.com/igr/media-backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// principalFrom builds the request principal from the JWT claims stored by
// the auth middleware.
func principalFrom(c echo.Context) services.Principal {
	claims := c.Get("user").(*models.JwtCustomClaims)
	return services.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
}

// httpError maps service and repository errors onto HTTP status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrDuplicateEdge):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrAccessDenied):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
