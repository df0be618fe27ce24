package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/google/uuid"
)

// projectNamePattern keeps project names URL-safe: lowercase alphanumerics
// and single hyphens, 3 to 32 characters.
var projectNamePattern = regexp.MustCompile(`^[a-z0-9](?:-?[a-z0-9]){2,31}$`)

// ValidationError reports synchronous, field-level input failures. It is
// rendered inline next to the offending input and is never a panic or an
// upstream error.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ProjectServiceImpl implements ProjectService. All operations here are
// one-shot mutations or admin-facing reads; none of them go through the
// suspension cache.
type ProjectServiceImpl struct {
	client LedgerClient
}

// NewProjectService creates a new project service.
func NewProjectService(client LedgerClient) ProjectService {
	return &ProjectServiceImpl{client: client}
}

// CreateProject validates the name and redirect URL locally before issuing
// the one-shot create call.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, name entity.ProjectName, redirectURL entity.Url) (ledger.Project, error) {
	fields := make(map[string]string)
	if !projectNamePattern.MatchString(string(name)) {
		fields["name"] = "must be 3-32 lowercase letters, digits, or hyphens"
	}
	if redirectURL != "" {
		if err := validateURL(string(redirectURL)); err != nil {
			fields["redirect_url"] = err.Error()
		}
	}
	if len(fields) > 0 {
		return ledger.Project{}, &ValidationError{Fields: fields}
	}

	return s.client.CreateProject(ctx, name, redirectURL)
}

// validateURL requires an absolute http(s) URL.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("must be absolute")
	}
	return nil
}

// AddAdmin grants a user admin rights on a project.
func (s *ProjectServiceImpl) AddAdmin(ctx context.Context, project entity.ProjectName, user entity.UserName) error {
	return s.client.AddAdmin(ctx, project, user)
}

// RemoveAdmin revokes a user's admin rights on a project.
func (s *ProjectServiceImpl) RemoveAdmin(ctx context.Context, project entity.ProjectName, user entity.UserName) error {
	return s.client.RemoveAdmin(ctx, project, user)
}

// ListAPIClients lists a project's API credentials.
func (s *ProjectServiceImpl) ListAPIClients(ctx context.Context, project entity.ProjectName) ([]ledger.APIClient, error) {
	return s.client.APIClients(ctx, project)
}

// CreateAPIClient issues a new API credential for a project.
func (s *ProjectServiceImpl) CreateAPIClient(ctx context.Context, project entity.ProjectName, name string) (ledger.APIClient, error) {
	if strings.TrimSpace(name) == "" {
		return ledger.APIClient{}, &ValidationError{Fields: map[string]string{
			"name": "must not be empty",
		}}
	}
	return s.client.CreateAPIClient(ctx, project, name)
}

// DeleteAPIClient revokes an API credential.
func (s *ProjectServiceImpl) DeleteAPIClient(ctx context.Context, project entity.ProjectName, id uuid.UUID) error {
	return s.client.DeleteAPIClient(ctx, project, id)
}
