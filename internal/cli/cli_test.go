package cli

import (
	"bytes"
	"cipherstudio/internal/config"
	"cipherstudio/internal/domain/project"
	apihttp "cipherstudio/internal/http"
	"cipherstudio/internal/projects"
	"cipherstudio/internal/repository/memory"
	"cipherstudio/internal/workspace"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("ENVIRONMENT", config.EnvTest)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CIPHERSTUDIO_AUTOSAVE_DELAY", "1h")
	return "sqlite://" + filepath.Join(t.TempDir(), "projects.db")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "cipherstudio %v", args)
	return out
}

func TestCLI_OfflineLifecycle(t *testing.T) {
	store := setupEnv(t)
	base := []string{"--offline", "--local-store", store, "-o", "json"}
	cmd := func(args ...string) []string { return append(append([]string{}, base...), args...) }

	var p project.Project
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, cmd("project", "new", "Demo", "-d", "first")...)), &p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "first", p.Description)
	require.Len(t, p.Files, 2)
	assert.Equal(t, project.FileTypeComponent, p.Files[0].Type)
	assert.Equal(t, project.FileTypeStyle, p.Files[1].Type)

	var added project.File
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, cmd("file", "add", p.ID, "Button.jsx", "--content", "export default 1;")...)), &added))
	assert.Equal(t, project.FileTypeComponent, added.Type)

	assert.Equal(t, "export default 1;", mustRun(t, cmd("file", "cat", p.ID, added.ID)...))

	var renamed project.File
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, cmd("file", "rename", p.ID, added.ID, "button.css")...)), &renamed))
	assert.Equal(t, project.FileTypeStyle, renamed.Type)

	mustRun(t, cmd("file", "write", p.ID, "1", "--content", "// rewritten")...)
	assert.Equal(t, "// rewritten", mustRun(t, cmd("file", "cat", p.ID, "1")...))

	mustRun(t, cmd("file", "rm", p.ID, "2")...)
	_, err := run(t, cmd("file", "cat", p.ID, "2")...)
	assert.ErrorIs(t, err, workspace.ErrFileNotFound)

	var shown project.Project
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, cmd("project", "show", p.ID)...)), &shown))
	require.Len(t, shown.Files, 2)
	assert.Equal(t, "button.css", shown.Files[1].Name)

	var listed []project.Project
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, cmd("project", "list")...)), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, p.ID, listed[0].ID)

	mustRun(t, cmd("project", "rm", p.ID)...)
	_, err = run(t, cmd("project", "show", p.ID)...)
	assert.Error(t, err)
}

func TestCLI_YAMLAndTableOutput(t *testing.T) {
	store := setupEnv(t)

	out := mustRun(t, "--offline", "--local-store", store, "-o", "yaml", "project", "new", "Demo")
	var p project.Project
	require.NoError(t, yaml.Unmarshal([]byte(out), &p))
	assert.Equal(t, "Demo", p.Name)
	assert.Contains(t, out, "name: Demo")

	table := mustRun(t, "--offline", "--local-store", store, "project", "list")
	assert.Contains(t, table, "LAST MODIFIED")
	assert.Contains(t, table, p.ID)

	_, err := run(t, "--offline", "--local-store", store, "-o", "xml", "project", "list")
	assert.Error(t, err)
}

func TestCLI_WriteFromFile(t *testing.T) {
	store := setupEnv(t)
	base := []string{"--offline", "--local-store", store, "-o", "json"}

	var p project.Project
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, append(base, "project", "new", "Demo")...)), &p))

	src := filepath.Join(t.TempDir(), "App.tsx")
	require.NoError(t, os.WriteFile(src, []byte("from disk"), 0o600))

	mustRun(t, append(base, "file", "write", p.ID, "1", "--from", src)...)
	assert.Equal(t, "from disk", mustRun(t, append(base, "file", "cat", p.ID, "1")...))

	_, err := run(t, append(base, "file", "write", p.ID, "1", "--from", src, "--content", "x")...)
	assert.Error(t, err)
}

func TestCLI_SyncsWithAPI(t *testing.T) {
	store := setupEnv(t)
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        time.Second,
			WriteTimeout:       time.Second,
			ShutdownTimeout:    time.Second,
			CORSAllowedOrigins: []string{"*"},
			RateLimitRPS:       1000,
			RateLimitBurst:     1000,
		},
	}
	api := httptest.NewServer(apihttp.NewServer(&apihttp.ServerDependencies{
		Config:   cfg,
		Projects: projects.NewService(memory.NewProjectRepository()),
	}).Handler())
	defer api.Close()

	base := []string{"--api-url", api.URL, "--local-store", store, "-o", "json"}

	var p project.Project
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, append(base, "project", "new", "Demo")...)), &p))

	mustRun(t, append(base, "file", "write", p.ID, "1", "--content", "synced")...)

	remote := workspace.NewRemoteStore(api.URL, time.Second)
	fromServer, err := remote.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "synced", fromServer.Files[0].Content)

	_, err = run(t, append(base, "project", "list", "--remote")...)
	assert.NoError(t, err)

	_, err = run(t, "--offline", "--local-store", store, "project", "list", "--remote")
	assert.ErrorIs(t, err, errRemoteOffline)
}

func TestCLI_SaveCreatesOfflineProjectOnServer(t *testing.T) {
	store := setupEnv(t)
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        time.Second,
			WriteTimeout:       time.Second,
			ShutdownTimeout:    time.Second,
			CORSAllowedOrigins: []string{"*"},
			RateLimitRPS:       1000,
			RateLimitBurst:     1000,
		},
	}
	api := httptest.NewServer(apihttp.NewServer(&apihttp.ServerDependencies{
		Config:   cfg,
		Projects: projects.NewService(memory.NewProjectRepository()),
	}).Handler())
	defer api.Close()

	var offline project.Project
	out := mustRun(t, "--offline", "--local-store", store, "-o", "json", "project", "new", "Offline")
	require.NoError(t, json.Unmarshal([]byte(out), &offline))

	var saved project.Project
	out = mustRun(t, "--api-url", api.URL, "--local-store", store, "-o", "json", "project", "save", offline.ID)
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.NotEqual(t, offline.ID, saved.ID)

	remote := workspace.NewRemoteStore(api.URL, time.Second)
	fromServer, err := remote.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Offline", fromServer.Name)

	_, err = run(t, "--offline", "--local-store", store, "project", "show", offline.ID)
	assert.Error(t, err)
	mustRun(t, "--offline", "--local-store", store, "project", "show", saved.ID)
}
