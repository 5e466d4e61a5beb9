package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Unwrap(t *testing.T) {
	err := NotFound("project not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Contains(t, err.Error(), "project not found")

	wrapped := fmt.Errorf("loading: %w", err)
	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "project not found", appErr.Message)
}

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.OrNil())

	verr.Add("name", "Project name must be between 1 and 100 characters", "")
	verr.Add("description", "Description must be less than 500 characters", nil)

	err := verr.OrNil()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "name: Project name must be between 1 and 100 characters")
	assert.Len(t, verr.Fields, 2)
}

func TestRemoteUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	err := RemoteUnavailable("GET /api/projects/42", cause)

	assert.True(t, errors.Is(err, ErrRemoteUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestInternalServer(t *testing.T) {
	cause := errors.New("connection refused")
	err := InternalServer("Server error while fetching project", cause)

	assert.True(t, errors.Is(err, ErrInternalServer))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", err.Code)
	assert.Equal(t, "Server error while fetching project", err.Message)
}
