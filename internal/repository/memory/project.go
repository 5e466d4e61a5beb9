package memory

import (
	"cipherstudio/internal/domain/project"
	apperrors "cipherstudio/pkg/errors"
	"context"
	"sort"
	"sync"
)

const (
	errProjectNotFound = "project not found"
	errProjectExists   = "project already exists"
)

// ProjectRepository keeps projects in process memory. Stored values are
// cloned on the way in and out so callers never share file slices.
type ProjectRepository struct {
	projects map[string]*project.Project
	mutex    sync.RWMutex
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{
		projects: make(map[string]*project.Project),
	}
}

func (r *ProjectRepository) List(_ context.Context, filter project.ListFilter) ([]*project.Summary, error) {
	r.mutex.RLock()
	matched := make([]*project.Project, 0, len(r.projects))
	for _, p := range r.projects {
		if filter.PublicOnly && !p.IsPublic {
			continue
		}
		matched = append(matched, p)
	}
	r.mutex.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].LastModified.After(matched[j].LastModified)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	summaries := make([]*project.Summary, 0, len(matched))
	for _, p := range matched {
		summaries = append(summaries, p.Summary())
	}

	return summaries, nil
}

func (r *ProjectRepository) GetByID(_ context.Context, id string) (*project.Project, error) {
	r.mutex.RLock()
	p, found := r.projects[id]
	r.mutex.RUnlock()

	if !found {
		return nil, apperrors.NotFound(errProjectNotFound)
	}

	return p.Clone(), nil
}

func (r *ProjectRepository) Create(_ context.Context, p *project.Project) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.projects[p.ID]; exists {
		return apperrors.BadRequest(errProjectExists)
	}

	r.projects[p.ID] = p.Clone()
	return nil
}

func (r *ProjectRepository) Update(_ context.Context, id string, update project.ProjectUpdate) (*project.Project, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	current, found := r.projects[id]
	if !found {
		return nil, apperrors.NotFound(errProjectNotFound)
	}

	next := current.Clone()
	update.Apply(next)
	r.projects[id] = next

	return next.Clone(), nil
}

func (r *ProjectRepository) Delete(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, found := r.projects[id]; !found {
		return apperrors.NotFound(errProjectNotFound)
	}

	delete(r.projects, id)
	return nil
}

func (r *ProjectRepository) Close(context.Context) error {
	return nil
}
