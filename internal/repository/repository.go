package repository

import (
	"cipherstudio/internal/domain/project"
	"context"
)

// ProjectRepository defines project data access operations.
// Implementations perform single-document writes only; validation happens upstream.
type ProjectRepository interface {
	List(ctx context.Context, filter project.ListFilter) ([]*project.Summary, error)
	GetByID(ctx context.Context, id string) (*project.Project, error)
	Create(ctx context.Context, p *project.Project) error
	Update(ctx context.Context, id string, update project.ProjectUpdate) (*project.Project, error)
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}
