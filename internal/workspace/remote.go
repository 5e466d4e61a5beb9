package workspace

import (
	"cipherstudio/internal/domain/project"
	apperrors "cipherstudio/pkg/errors"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
)

const (
	projectsPath = "/api/projects"

	DefaultHTTPTimeout = 10 * time.Second

	errFailedSendFmt     = "failed to send request: %w"
	errFailedParseFmt    = "failed to parse response: %w"
	errServerResponseFmt = "server responded %d: %s"
)

// CreateRequest is the body of POST /api/projects.
type CreateRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Files       []project.File `json:"files,omitempty"`
	IsPublic    *bool          `json:"isPublic,omitempty"`
}

// UpdateRequest is the body of PUT /api/projects/:id. Nil fields are not sent.
type UpdateRequest struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Files       *[]project.File `json:"files,omitempty"`
	IsPublic    *bool           `json:"isPublic,omitempty"`
}

type envelope struct {
	Success bool                   `json:"success"`
	Count   *int                   `json:"count,omitempty"`
	Message string                 `json:"message,omitempty"`
	Data    json.RawMessage        `json:"data,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

// RemoteStore talks to the project REST API.
type RemoteStore struct {
	client fastshot.ClientHttpMethods
}

func NewRemoteStore(baseURL string, timeout time.Duration) *RemoteStore {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	c := fastshot.NewClient(strings.TrimRight(baseURL, "/"))

	return &RemoteStore{
		client: c.Config().SetTimeout(timeout).
			Config().SetFollowRedirects(true).
			Header().Add("Content-Type", "application/json").
			Header().Add("Accept", "application/json").
			Build(),
	}
}

func projectPath(id string) string {
	return projectsPath + "/" + url.PathEscape(id)
}

func (s *RemoteStore) List(ctx context.Context) ([]*project.Summary, error) {
	resp, err := s.client.GET(projectsPath).
		Context().Set(ctx).
		Send()
	if err != nil {
		return nil, apperrors.RemoteUnavailable("list projects", fmt.Errorf(errFailedSendFmt, err))
	}
	defer resp.Body().Close()

	var summaries []*project.Summary
	if err := parseResponse(resp, &summaries); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (s *RemoteStore) Get(ctx context.Context, id string) (*project.Project, error) {
	resp, err := s.client.GET(projectPath(id)).
		Context().Set(ctx).
		Send()
	if err != nil {
		return nil, apperrors.RemoteUnavailable("get project", fmt.Errorf(errFailedSendFmt, err))
	}
	defer resp.Body().Close()

	var p project.Project
	if err := parseResponse(resp, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *RemoteStore) Create(ctx context.Context, req CreateRequest) (*project.Project, error) {
	resp, err := s.client.POST(projectsPath).
		Context().Set(ctx).
		Body().AsJSON(req).
		Send()
	if err != nil {
		return nil, apperrors.RemoteUnavailable("create project", fmt.Errorf(errFailedSendFmt, err))
	}
	defer resp.Body().Close()

	var p project.Project
	if err := parseResponse(resp, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *RemoteStore) Update(ctx context.Context, id string, req UpdateRequest) (*project.Project, error) {
	resp, err := s.client.PUT(projectPath(id)).
		Context().Set(ctx).
		Body().AsJSON(req).
		Send()
	if err != nil {
		return nil, apperrors.RemoteUnavailable("update project", fmt.Errorf(errFailedSendFmt, err))
	}
	defer resp.Body().Close()

	var p project.Project
	if err := parseResponse(resp, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *RemoteStore) Delete(ctx context.Context, id string) error {
	resp, err := s.client.DELETE(projectPath(id)).
		Context().Set(ctx).
		Send()
	if err != nil {
		return apperrors.RemoteUnavailable("delete project", fmt.Errorf(errFailedSendFmt, err))
	}
	defer resp.Body().Close()

	return parseResponse[struct{}](resp, nil)
}

// parseResponse decodes the response envelope and maps non-2xx statuses onto
// the apperrors sentinels. result may be nil when no data is expected.
func parseResponse[T any](resp *fastshot.Response, result *T) error {
	raw, err := resp.Body().AsString()
	if err != nil {
		return apperrors.RemoteUnavailable("read response", err)
	}

	var env envelope
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &env); err != nil && !resp.Status().IsError() {
			return apperrors.RemoteUnavailable("decode response", fmt.Errorf(errFailedParseFmt, err))
		}
	}

	if resp.Status().IsError() {
		return statusError(resp.Status().Code(), env, raw)
	}

	if result == nil || len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, result); err != nil {
		return apperrors.RemoteUnavailable("decode response", fmt.Errorf(errFailedParseFmt, err))
	}

	return nil
}

func statusError(code int, env envelope, raw string) error {
	message := env.Message
	if message == "" {
		message = strings.TrimSpace(raw)
	}

	switch code {
	case http.StatusNotFound:
		if message == "" {
			message = msgProjectNotFound
		}
		return apperrors.NotFound(message)
	case http.StatusBadRequest:
		if len(env.Errors) > 0 {
			return &apperrors.ValidationError{Fields: env.Errors}
		}
		return apperrors.BadRequest(message)
	default:
		return apperrors.RemoteUnavailable(http.StatusText(code), fmt.Errorf(errServerResponseFmt, code, message))
	}
}
