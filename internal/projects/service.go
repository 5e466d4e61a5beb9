package projects

import (
	"cipherstudio/internal/domain/project"
	"cipherstudio/internal/repository"
	"cipherstudio/pkg/metrics"
	"cipherstudio/pkg/validator"
	"context"
	"strings"
	"time"
)

const (
	DefaultListLimit = 50

	opList   = "list"
	opGet    = "get"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Service owns the server-side rules for projects: input normalization,
// id assignment, default files and timestamps. Persistence is delegated
// to a ProjectRepository.
type Service struct {
	repo      repository.ProjectRepository
	listLimit int
	now       func() time.Time
}

type Option func(*Service)

// WithListLimit caps List results. Non-positive values keep the default.
func WithListLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.listLimit = limit
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo repository.ProjectRepository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		listLimit: DefaultListLimit,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the newest public projects without file contents.
func (s *Service) List(ctx context.Context) (summaries []*project.Summary, err error) {
	defer observe(opList, time.Now(), &err)

	return s.repo.List(ctx, project.ListFilter{PublicOnly: true, Limit: s.listLimit})
}

func (s *Service) Get(ctx context.Context, id string) (p *project.Project, err error) {
	defer observe(opGet, time.Now(), &err)

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input project.CreateProjectInput) (p *project.Project, err error) {
	defer observe(opCreate, time.Now(), &err)

	now := s.now().UTC()
	verr := newValidation()

	name := strings.TrimSpace(input.Name)
	verr.check("name", name, validator.ProjectName(name))

	var description string
	if input.Description != nil {
		description = strings.TrimSpace(*input.Description)
		verr.check("description", description, validator.Description(description))
	}

	files := normalizeFiles(input.Files, now, verr)

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		files = project.DefaultFiles(now)
	}

	p = &project.Project{
		ID:           project.NewID(),
		Name:         name,
		Description:  description,
		Files:        files,
		CreatedAt:    now,
		LastModified: now,
		UserID:       project.DefaultOwner,
	}
	if input.IsPublic != nil {
		p.IsPublic = *input.IsPublic
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Update applies only the provided fields and always refreshes lastModified.
func (s *Service) Update(ctx context.Context, id string, input project.UpdateProjectInput) (p *project.Project, err error) {
	defer observe(opUpdate, time.Now(), &err)

	now := s.now().UTC()
	verr := newValidation()
	update := project.ProjectUpdate{
		IsPublic:     input.IsPublic,
		LastModified: now,
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		verr.check("name", name, validator.ProjectName(name))
		update.Name = &name
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		verr.check("description", description, validator.Description(description))
		update.Description = &description
	}

	if input.Files != nil {
		files := normalizeFiles(*input.Files, now, verr)
		update.Files = &files
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, update)
}

func (s *Service) Delete(ctx context.Context, id string) (err error) {
	defer observe(opDelete, time.Now(), &err)

	return s.repo.Delete(ctx, id)
}

func observe(operation string, start time.Time, err *error) {
	metrics.RecordProjectOperation(operation, *err, time.Since(start))
}
