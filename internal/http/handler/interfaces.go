package handler

import (
	"cipherstudio/internal/domain/project"
	"context"
)

// ProjectService is what the project endpoints need from the domain layer.
type ProjectService interface {
	List(ctx context.Context) ([]*project.Summary, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	Create(ctx context.Context, input project.CreateProjectInput) (*project.Project, error)
	Update(ctx context.Context, id string, input project.UpdateProjectInput) (*project.Project, error)
	Delete(ctx context.Context, id string) error
}
