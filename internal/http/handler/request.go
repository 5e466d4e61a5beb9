package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "cipherstudio/pkg/errors"

	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON    = "application/json"
	fieldFiles         = "files"
	maxStrictBodyBytes = 1 << 20
)

// bindJSON decodes exactly one JSON document. Unknown fields are ignored
// because editors send back the whole project they loaded.
func bindJSON(c echo.Context, dst interface{}) error {
	if !strings.HasPrefix(strings.ToLower(c.Request().Header.Get(echo.HeaderContentType)), contentTypeJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	body := io.LimitReader(c.Request().Body, maxStrictBodyBytes)
	decoder := json.NewDecoder(body)

	if err := decoder.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return typeMismatch(typeErr)
		}
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	return nil
}

func typeMismatch(typeErr *json.UnmarshalTypeError) error {
	field := typeErr.Field
	msg := fmt.Sprintf(msgInvalidFieldValueFmt, field)
	if field == fieldFiles {
		msg = msgFilesMustBeArray
	}

	verr := &apperrors.ValidationError{}
	verr.Add(field, msg, nil)
	return verr
}
