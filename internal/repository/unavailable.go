package repository

import (
	"cipherstudio/internal/domain/project"
	apperrors "cipherstudio/pkg/errors"
	"context"
)

const errNoDatabaseConfigured = "no database configured"

// Unavailable is used when the server runs without a database.
// Every data call fails so clients fall back to their local stores.
type Unavailable struct{}

func (Unavailable) List(context.Context, project.ListFilter) ([]*project.Summary, error) {
	return nil, apperrors.StorageUnavailable(errNoDatabaseConfigured)
}

func (Unavailable) GetByID(context.Context, string) (*project.Project, error) {
	return nil, apperrors.StorageUnavailable(errNoDatabaseConfigured)
}

func (Unavailable) Create(context.Context, *project.Project) error {
	return apperrors.StorageUnavailable(errNoDatabaseConfigured)
}

func (Unavailable) Update(context.Context, string, project.ProjectUpdate) (*project.Project, error) {
	return nil, apperrors.StorageUnavailable(errNoDatabaseConfigured)
}

func (Unavailable) Delete(context.Context, string) error {
	return apperrors.StorageUnavailable(errNoDatabaseConfigured)
}

func (Unavailable) Close(context.Context) error {
	return nil
}
