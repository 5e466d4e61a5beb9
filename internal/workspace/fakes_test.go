package workspace

import (
	"cipherstudio/internal/domain/project"
	apperrors "cipherstudio/pkg/errors"
	"context"
	"errors"
	"sync"
	"time"
)

var errOffline = errors.New("connection refused")

// fakeRemote records calls and serves projects from a map.
type fakeRemote struct {
	mu       sync.Mutex
	projects map[string]*project.Project
	fail     bool
	calls    map[string]int
	updates  []UpdateRequest
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		projects: make(map[string]*project.Project),
		calls:    make(map[string]int),
	}
}

func (f *fakeRemote) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	if f.fail {
		return apperrors.RemoteUnavailable(op, errOffline)
	}
	return nil
}

func (f *fakeRemote) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeRemote) Get(_ context.Context, id string) (*project.Project, error) {
	if err := f.record("get"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, apperrors.NotFound(msgProjectNotFound)
	}
	return p.Clone(), nil
}

func (f *fakeRemote) Create(_ context.Context, req CreateRequest) (*project.Project, error) {
	if err := f.record("create"); err != nil {
		return nil, err
	}
	p := &project.Project{
		ID:          "remote-" + req.Name,
		Name:        req.Name,
		Description: req.Description,
		Files:       append([]project.File(nil), req.Files...),
		UserID:      project.DefaultOwner,
	}
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}
	f.mu.Lock()
	f.projects[p.ID] = p
	f.mu.Unlock()
	return p.Clone(), nil
}

func (f *fakeRemote) Update(_ context.Context, id string, req UpdateRequest) (*project.Project, error) {
	if err := f.record("update"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, req)
	p, ok := f.projects[id]
	if !ok {
		return nil, apperrors.NotFound(msgProjectNotFound)
	}
	if req.Files != nil {
		p.Files = *req.Files
	}
	return p.Clone(), nil
}

func (f *fakeRemote) Delete(_ context.Context, id string) error {
	if err := f.record("delete"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.projects, id)
	return nil
}

// countingSaver stands in for the sync policy in session tests.
type countingSaver struct {
	mu    sync.Mutex
	saves []*project.Project
	err   error
}

func (c *countingSaver) Save(_ context.Context, p *project.Project) (*project.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	saved := p.Clone()
	saved.LastModified = latestModification(saved)
	c.saves = append(c.saves, saved)
	return saved, nil
}

func (c *countingSaver) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.saves)
}

func (c *countingSaver) last() *project.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.saves) == 0 {
		return nil
	}
	return c.saves[len(c.saves)-1]
}

func latestModification(p *project.Project) (latest time.Time) {
	latest = p.LastModified
	for _, f := range p.Files {
		if f.ModifiedAt.After(latest) {
			latest = f.ModifiedAt
		}
	}
	return latest
}
