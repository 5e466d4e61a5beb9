package handler

import (
	apperrors "cipherstudio/pkg/errors"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every API response uses.
type Response struct {
	Success bool                   `json:"success"`
	Count   *int                   `json:"count,omitempty"`
	Message string                 `json:"message,omitempty"`
	Data    interface{}            `json:"data,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

func respondData(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondList(c echo.Context, status int, data interface{}, count int) error {
	return c.JSON(status, Response{Success: true, Count: &count, Data: data})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{Success: true, Message: message})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{Success: false, Message: message})
}

func respondValidation(c echo.Context, status int, fields []apperrors.FieldError) error {
	return c.JSON(status, Response{Success: false, Message: msgValidationFail, Errors: fields})
}
