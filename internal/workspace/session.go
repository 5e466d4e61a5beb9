package workspace

import (
	"cipherstudio/internal/domain/project"
	"cipherstudio/pkg/validator"
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

var ErrFileNotFound = errors.New("file not found")

// Saver persists a project and returns the stored copy.
type Saver interface {
	Save(ctx context.Context, p *project.Project) (*project.Project, error)
}

// ChangeListener is called after every session mutation, outside the lock.
type ChangeListener func()

// Session holds one open project in memory. Its operators never persist;
// Save hands a snapshot to the Saver.
type Session struct {
	mu        sync.Mutex
	project   *project.Project
	activeID  string
	saver     Saver
	listeners []ChangeListener
	now       func() time.Time

	// rev counts mutations; savedRev is the rev of the last saved snapshot.
	rev      uint64
	savedRev uint64
}

func NewSession(p *project.Project, saver Saver) *Session {
	s := &Session{
		project: p.Clone(),
		saver:   saver,
		now:     time.Now,
	}
	if len(s.project.Files) > 0 {
		s.activeID = s.project.Files[0].ID
	}
	return s
}

// OnChange registers l to run after each mutation.
func (s *Session) OnChange(l ChangeListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

func (s *Session) notify() {
	s.mu.Lock()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}

func (s *Session) indexOf(id string) int {
	for i := range s.project.Files {
		if s.project.Files[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) CreateFile(name, content string) (project.File, error) {
	name = strings.TrimSpace(name)
	if err := validator.FileName(name); err != nil {
		return project.File{}, err
	}

	s.mu.Lock()
	f := project.NewFile(project.NewID(), name, content, s.now().UTC())
	s.project.Files = append(s.project.Files, f)
	s.activeID = f.ID
	s.rev++
	s.mu.Unlock()

	s.notify()
	return f, nil
}

// RenameFile renames a file and re-derives its type from the new extension.
func (s *Session) RenameFile(id, newName string) (project.File, error) {
	newName = strings.TrimSpace(newName)
	if err := validator.FileName(newName); err != nil {
		return project.File{}, err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return project.File{}, ErrFileNotFound
	}
	f := &s.project.Files[i]
	f.Name = newName
	f.Type = project.ClassifyFile(newName)
	f.ModifiedAt = s.now().UTC()
	renamed := *f
	s.rev++
	s.mu.Unlock()

	s.notify()
	return renamed, nil
}

// DeleteFile removes a file. Deleting the active file activates the first
// remaining one, or none.
func (s *Session) DeleteFile(id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrFileNotFound
	}
	files := make([]project.File, 0, len(s.project.Files)-1)
	files = append(files, s.project.Files[:i]...)
	s.project.Files = append(files, s.project.Files[i+1:]...)
	if s.activeID == id {
		s.activeID = ""
		if len(s.project.Files) > 0 {
			s.activeID = s.project.Files[0].ID
		}
	}
	s.rev++
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *Session) UpdateFile(id, content string) (project.File, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return project.File{}, ErrFileNotFound
	}
	f := &s.project.Files[i]
	f.Content = content
	f.ModifiedAt = s.now().UTC()
	updated := *f
	s.rev++
	s.mu.Unlock()

	s.notify()
	return updated, nil
}

func (s *Session) Files() []project.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]project.File(nil), s.project.Files...)
}

// File returns the file with id.
func (s *Session) File(id string) (project.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return project.File{}, ErrFileNotFound
	}
	return s.project.Files[i], nil
}

func (s *Session) ActiveFile() (project.File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(s.activeID)
	if i < 0 {
		return project.File{}, false
	}
	return s.project.Files[i], true
}

func (s *Session) SetActiveFile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return ErrFileNotFound
	}
	s.activeID = id
	return nil
}

func (s *Session) Project() *project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.Clone()
}

// Dirty reports unsaved changes: a mutation since the last save, or a file
// modified after the project's lastModified.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rev != s.savedRev {
		return true
	}
	for _, f := range s.project.Files {
		if f.ModifiedAt.After(s.project.LastModified) {
			return true
		}
	}
	return false
}

// Save persists a snapshot and adopts the stored ID, which changes when an
// offline project is first created on the server. Edits made while the save
// is in flight stay dirty.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	snapshot := s.project.Clone()
	rev := s.rev
	s.mu.Unlock()

	saved, err := s.saver.Save(ctx, snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.project.ID = saved.ID
	s.project.LastModified = saved.LastModified
	if s.savedRev < rev {
		s.savedRev = rev
	}
	s.mu.Unlock()

	return nil
}
