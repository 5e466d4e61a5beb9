package workspace

import (
	"cipherstudio/internal/domain/project"
	apperrors "cipherstudio/pkg/errors"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	errFailedSaveLocalFmt   = "failed to save project locally: %w"
	errFailedCreateLocalFmt = "failed to create project locally: %w"
	errFailedDeleteFmt      = "failed to delete project: %w"
)

// LocalProjects is the browser-storage side of the sync policy.
type LocalProjects interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	Save(ctx context.Context, p *project.Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*project.Project, error)
}

// RemoteProjects is the API side of the sync policy.
type RemoteProjects interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	Create(ctx context.Context, req CreateRequest) (*project.Project, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*project.Project, error)
	Delete(ctx context.Context, id string) error
}

type SyncOption func(*SyncPolicy)

func WithSyncClock(now func() time.Time) SyncOption {
	return func(s *SyncPolicy) {
		s.now = now
	}
}

// SyncPolicy reads local first and writes local then remote. The local copy
// is authoritative; a failed remote write is logged and otherwise ignored,
// so the two stores can drift apart.
type SyncPolicy struct {
	local  LocalProjects
	remote RemoteProjects
	now    func() time.Time
}

// NewSyncPolicy builds a policy. remote may be nil for offline use.
func NewSyncPolicy(local LocalProjects, remote RemoteProjects, opts ...SyncOption) *SyncPolicy {
	s := &SyncPolicy{
		local:  local,
		remote: remote,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SyncPolicy) Load(ctx context.Context, id string) (*project.Project, error) {
	p, err := s.local.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		log.Warn().Err(err).Str("project_id", id).Msg("local read failed, trying remote")
	}

	if s.remote == nil {
		return nil, apperrors.NotFound(msgProjectNotFound)
	}

	p, err = s.remote.Get(ctx, id)
	if err != nil {
		return nil, &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: msgProjectNotFound,
			Err:     fmt.Errorf("%w: %w", apperrors.ErrNotFound, err),
		}
	}

	if err := s.local.Save(ctx, p); err != nil {
		log.Warn().Err(err).Str("project_id", id).Msg(msgMirrorFailed)
	}

	return p, nil
}

// Save stamps lastModified and writes the project locally, then pushes it to
// the remote store. It returns the saved copy. A project the server has never
// seen (created offline) is created remotely and its local record re-keyed to
// the server id, so the returned copy may carry a new ID.
func (s *SyncPolicy) Save(ctx context.Context, p *project.Project) (*project.Project, error) {
	saved := p.Clone()
	saved.LastModified = s.now().UTC()

	if err := s.local.Save(ctx, saved); err != nil {
		return nil, fmt.Errorf(errFailedSaveLocalFmt, err)
	}

	if s.remote == nil {
		return saved, nil
	}

	return s.push(ctx, saved), nil
}

func (s *SyncPolicy) push(ctx context.Context, saved *project.Project) *project.Project {
	files := saved.Files
	_, err := s.remote.Update(ctx, saved.ID, UpdateRequest{
		Name:        &saved.Name,
		Description: &saved.Description,
		Files:       &files,
		IsPublic:    &saved.IsPublic,
	})
	if err == nil {
		return saved
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		log.Warn().Err(err).Str("project_id", saved.ID).Msg(msgRemoteSaveFailed)
		return saved
	}

	created, err := s.remote.Create(ctx, CreateRequest{
		Name:        saved.Name,
		Description: saved.Description,
		Files:       saved.Files,
		IsPublic:    &saved.IsPublic,
	})
	if err != nil {
		log.Warn().Err(err).Str("project_id", saved.ID).Msg(msgRemoteSaveFailed)
		return saved
	}

	rekeyed := saved.Clone()
	rekeyed.ID = created.ID
	if err := s.local.Save(ctx, rekeyed); err != nil {
		log.Warn().Err(err).Str("project_id", created.ID).Msg(msgMirrorFailed)
		return saved
	}
	if err := s.local.Delete(ctx, saved.ID); err != nil {
		log.Warn().Err(err).Str("project_id", saved.ID).Msg(msgStaleLocalRecord)
	}

	log.Info().Str("local_id", saved.ID).Str("project_id", rekeyed.ID).Msg(msgProjectRekeyed)
	return rekeyed
}

// Create asks the server for a new project and falls back to a locally built
// one when the server cannot be reached.
func (s *SyncPolicy) Create(ctx context.Context, name, description string) (*project.Project, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		verr := &apperrors.ValidationError{}
		verr.Add("name", msgProjectNameRequired, name)
		return nil, verr
	}

	var p *project.Project
	if s.remote != nil {
		created, err := s.remote.Create(ctx, CreateRequest{Name: name, Description: description})
		switch {
		case err == nil:
			p = created
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
			return nil, err
		default:
			log.Warn().Err(err).Str("name", name).Msg(msgRemoteCreateFailed)
		}
	}

	if p == nil {
		now := s.now().UTC()
		p = &project.Project{
			ID:           project.NewID(),
			Name:         name,
			Description:  description,
			Files:        project.DefaultFiles(now),
			CreatedAt:    now,
			LastModified: now,
			UserID:       project.DefaultOwner,
		}
	}

	if err := s.local.Save(ctx, p); err != nil {
		return nil, fmt.Errorf(errFailedCreateLocalFmt, err)
	}

	return p, nil
}

func (s *SyncPolicy) List(ctx context.Context) ([]*project.Project, error) {
	return s.local.List(ctx)
}

func (s *SyncPolicy) Delete(ctx context.Context, id string) error {
	if err := s.local.Delete(ctx, id); err != nil {
		return fmt.Errorf(errFailedDeleteFmt, err)
	}

	if s.remote != nil {
		if err := s.remote.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("project_id", id).Msg(msgRemoteDeleteFailed)
		}
	}

	return nil
}
