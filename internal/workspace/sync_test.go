package workspace

import (
	"cipherstudio/internal/domain/project"
	"cipherstudio/internal/kvstore"
	apperrors "cipherstudio/pkg/errors"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newPolicy(remote RemoteProjects) (*SyncPolicy, *LocalStore) {
	local := NewLocalStore(kvstore.NewMemoryStore())
	return NewSyncPolicy(local, remote, WithSyncClock(func() time.Time { return fixedNow })), local
}

func TestSyncPolicy_LoadLocalHitSkipsRemote(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.projects["42"] = &project.Project{ID: "42", Name: "remote copy"}
	policy, local := newPolicy(remote)

	stored := localProject("42", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, local.Save(ctx, stored))

	got, err := policy.Load(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "project 42", got.Name)
	assert.True(t, stored.LastModified.Equal(got.LastModified))
	assert.Equal(t, stored.Files[0].Content, got.Files[0].Content)
	assert.Zero(t, remote.count("get"))
}

func TestSyncPolicy_LoadFallsBackAndMirrors(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.projects["7"] = localProject("7", fixedNow)
	policy, local := newPolicy(remote)

	got, err := policy.Load(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "project 7", got.Name)
	assert.Equal(t, 1, remote.count("get"))

	mirrored, err := local.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, got.Name, mirrored.Name)

	_, err = policy.Load(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, 1, remote.count("get"))
}

func TestSyncPolicy_LoadMissEverywhere(t *testing.T) {
	ctx := context.Background()

	t.Run("remote not found", func(t *testing.T) {
		policy, _ := newPolicy(newFakeRemote())
		_, err := policy.Load(ctx, "nope")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("remote unavailable", func(t *testing.T) {
		remote := newFakeRemote()
		remote.fail = true
		policy, _ := newPolicy(remote)

		_, err := policy.Load(ctx, "nope")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.ErrorIs(t, err, apperrors.ErrRemoteUnavailable)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "Project not found", appErr.Message)
	})

	t.Run("offline", func(t *testing.T) {
		policy, _ := newPolicy(nil)
		_, err := policy.Load(ctx, "nope")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestSyncPolicy_SaveWritesBoth(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	p := localProject("1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	remote.projects["1"] = p.Clone()
	policy, local := newPolicy(remote)

	p.Files[0].Content = "edited"
	saved, err := policy.Save(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, saved.LastModified)
	assert.NotEqual(t, fixedNow, p.LastModified)

	stored, err := local.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Files[0].Content)

	require.Len(t, remote.updates, 1)
	req := remote.updates[0]
	require.NotNil(t, req.Name)
	require.NotNil(t, req.Files)
	require.NotNil(t, req.IsPublic)
	assert.Equal(t, "project 1", *req.Name)
	assert.Equal(t, "edited", (*req.Files)[0].Content)
}

func TestSyncPolicy_SaveSwallowsRemoteFailure(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.fail = true
	policy, local := newPolicy(remote)

	saved, err := policy.Save(ctx, localProject("9", fixedNow.Add(-time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, fixedNow, saved.LastModified)
	assert.Equal(t, 1, remote.count("update"))

	stored, err := local.Get(ctx, "9")
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(stored.LastModified))
}

func TestSyncPolicy_SaveCreatesUnknownProjectRemotely(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	policy, local := newPolicy(remote)

	offline := localProject("cq2lb1ne1o8s73b2l8bg", fixedNow.Add(-time.Hour))
	offline.IsPublic = true
	require.NoError(t, local.Save(ctx, offline))

	saved, err := policy.Save(ctx, offline)
	require.NoError(t, err)
	assert.Equal(t, "remote-project cq2lb1ne1o8s73b2l8bg", saved.ID)
	assert.Equal(t, 1, remote.count("update"))
	assert.Equal(t, 1, remote.count("create"))

	fromServer, ok := remote.projects[saved.ID]
	require.True(t, ok)
	assert.Equal(t, offline.Files, fromServer.Files)
	assert.True(t, fromServer.IsPublic)

	_, err = local.Get(ctx, offline.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	stored, err := local.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, offline.Files, stored.Files)

	_, err = policy.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, 2, remote.count("update"))
	assert.Equal(t, 1, remote.count("create"))
}

type failingLocal struct {
	*LocalStore
}

func (failingLocal) Save(context.Context, *project.Project) error {
	return errors.New("quota exceeded")
}

func TestSyncPolicy_SaveLocalFailureIsReturned(t *testing.T) {
	remote := newFakeRemote()
	policy := NewSyncPolicy(failingLocal{NewLocalStore(kvstore.NewMemoryStore())}, remote)

	_, err := policy.Save(context.Background(), localProject("1", fixedNow))
	require.Error(t, err)
	assert.Zero(t, remote.count("update"))
}

func TestSyncPolicy_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("remote first", func(t *testing.T) {
		remote := newFakeRemote()
		policy, local := newPolicy(remote)

		p, err := policy.Create(ctx, "  Demo  ", "desc")
		require.NoError(t, err)
		assert.Equal(t, "remote-Demo", p.ID)
		assert.Equal(t, "Demo", p.Name)

		_, err = local.Get(ctx, p.ID)
		assert.NoError(t, err)
	})

	t.Run("local fallback", func(t *testing.T) {
		remote := newFakeRemote()
		remote.fail = true
		policy, local := newPolicy(remote)

		p, err := policy.Create(ctx, "Demo", "")
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, fixedNow, p.CreatedAt)
		require.Len(t, p.Files, 2)
		assert.Equal(t, "App.tsx", p.Files[0].Name)
		assert.Equal(t, project.FileTypeComponent, p.Files[0].Type)
		assert.Equal(t, "App.css", p.Files[1].Name)
		assert.Equal(t, project.FileTypeStyle, p.Files[1].Type)

		_, err = local.Get(ctx, p.ID)
		assert.NoError(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		remote := newFakeRemote()
		policy, local := newPolicy(remote)

		_, err := policy.Create(ctx, "   ", "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Zero(t, remote.count("create"))

		list, err := local.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestSyncPolicy_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.fail = true
	policy, local := newPolicy(remote)

	require.NoError(t, local.Save(ctx, localProject("a", fixedNow)))
	require.NoError(t, local.Save(ctx, localProject("b", fixedNow.Add(time.Minute))))

	list, err := policy.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)

	require.NoError(t, policy.Delete(ctx, "b"))
	assert.Equal(t, 1, remote.count("delete"))

	list, err = policy.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
	assert.Zero(t, remote.count("get"))
}
