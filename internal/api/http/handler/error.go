package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipebox-server/internal/logger"
	"github.com/recipebox/recipebox-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError translates service errors into HTTP responses. Unrecognized
// errors are logged and reported as an opaque 500.
func handleError(c echo.Context, log *logger.Logger, err error) error {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
	case errors.Is(err, model.ErrEmailTaken):
		return c.JSON(http.StatusConflict, errorResponse{Error: model.ErrEmailTaken.Error()})
	case errors.Is(err, model.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: model.ErrInvalidCredentials.Error()})
	case errors.Is(err, model.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: model.ErrForbidden.Error()})
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: model.ErrNotFound.Error()})
	default:
		log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
