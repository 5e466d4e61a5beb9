package handler

import (
	"errors"
	"net/http"

	apperrors "cipherstudio/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// respondServiceError maps domain errors onto the envelope. Anything that is
// not a client error is logged and reported with serverMsg only.
func respondServiceError(c echo.Context, err error, serverMsg string) error {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return respondValidation(c, http.StatusBadRequest, verr.Fields)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return handleHTTPError(c, httpErr)
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return respondError(c, http.StatusNotFound, msgProjectNotFound)
	case errors.Is(err, apperrors.ErrBadRequest):
		msg := http.StatusText(http.StatusBadRequest)
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			msg = appErr.Message
		}
		return respondError(c, http.StatusBadRequest, msg)
	}

	internal := apperrors.InternalServer(serverMsg, err)
	zerolog.Ctx(c.Request().Context()).Error().
		Err(internal).
		Str("code", internal.Code).
		Str("path", c.Path()).
		Msg(serverMsg)

	return respondError(c, http.StatusInternalServerError, internal.Message)
}

func handleHTTPError(c echo.Context, he *echo.HTTPError) error {
	msg, _ := he.Message.(string)
	if msg == "" {
		msg = http.StatusText(he.Code)
	}
	return respondError(c, he.Code, msg)
}
