package http

import (
	"errors"
	"fmt"
	"net/http"

	"cipherstudio/internal/http/handler"
	"cipherstudio/internal/http/middleware"
	apperrors "cipherstudio/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const msgInternalServerError = "Internal server error"

// CustomHTTPErrorHandler handles errors that escape the handlers, such as
// unknown routes, oversized bodies and recovered panics. Responses use the
// same envelope as the project endpoints.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := msgInternalServerError

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	} else {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			code = http.StatusNotFound
			message = "Resource not found"
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
			code = http.StatusBadRequest
			message = "Bad request"
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && code < 500 {
			message = appErr.Message
		}
	}

	requestID := middleware.GetRequestID(c)
	if requestID == "" {
		requestID = "unknown"
	}

	if code >= 500 {
		log.Error().
			Str(middleware.RequestIDContextKey, requestID).
			Int("status", code).
			Err(err).
			Msg("internal_server_error")
		message = msgInternalServerError
	} else {
		log.Warn().
			Str(middleware.RequestIDContextKey, requestID).
			Int("status", code).
			Err(err).
			Msg("client_error")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, handler.Response{Success: false, Message: message})
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to write error response")
	}
}
