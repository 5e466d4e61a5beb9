package workspace

import (
	"cipherstudio/internal/domain/project"
	"cipherstudio/internal/kvstore"
	apperrors "cipherstudio/pkg/errors"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// KeyPrefix namespaces project records in the key-value store.
const KeyPrefix = "cipherstudio-project-"

const (
	errFailedEncodeProjectFmt = "failed to encode project: %w"
	errFailedDecodeProjectFmt = "failed to decode project %s: %w"
	errFailedReadLocalFmt     = "failed to read local project: %w"
	errFailedWriteLocalFmt    = "failed to write local project: %w"
	errFailedDeleteLocalFmt   = "failed to delete local project: %w"
	errFailedListLocalFmt     = "failed to list local projects: %w"
)

// LocalStore keeps one self-contained JSON record per project. It performs
// no validation: whatever the editor holds is what gets written.
type LocalStore struct {
	kv kvstore.Store
}

func NewLocalStore(kv kvstore.Store) *LocalStore {
	return &LocalStore{kv: kv}
}

func projectKey(id string) string {
	return KeyPrefix + id
}

func (s *LocalStore) Get(ctx context.Context, id string) (*project.Project, error) {
	raw, err := s.kv.Get(ctx, projectKey(id))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, apperrors.NotFound(msgProjectNotFound)
		}
		return nil, fmt.Errorf(errFailedReadLocalFmt, err)
	}

	var p project.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf(errFailedDecodeProjectFmt, id, err)
	}

	return &p, nil
}

// Save overwrites the whole record for p.ID.
func (s *LocalStore) Save(ctx context.Context, p *project.Project) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf(errFailedEncodeProjectFmt, err)
	}

	if err := s.kv.Set(ctx, projectKey(p.ID), raw); err != nil {
		return fmt.Errorf(errFailedWriteLocalFmt, err)
	}

	return nil
}

func (s *LocalStore) Delete(ctx context.Context, id string) error {
	if err := s.kv.Delete(ctx, projectKey(id)); err != nil {
		return fmt.Errorf(errFailedDeleteLocalFmt, err)
	}
	return nil
}

// List returns every stored project, newest first. Records that do not
// decode are skipped.
func (s *LocalStore) List(ctx context.Context) ([]*project.Project, error) {
	entries, err := s.kv.ListByPrefix(ctx, KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf(errFailedListLocalFmt, err)
	}

	projects := make([]*project.Project, 0, len(entries))
	for _, entry := range entries {
		var p project.Project
		if err := json.Unmarshal(entry.Value, &p); err != nil {
			log.Warn().Err(err).Str("key", entry.Key).Msg(msgSkippingCorruptRecord)
			continue
		}
		if p.ID == "" {
			p.ID = strings.TrimPrefix(entry.Key, KeyPrefix)
		}
		projects = append(projects, &p)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].LastModified.After(projects[j].LastModified)
	})

	return projects, nil
}
