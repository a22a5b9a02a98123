package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/plannery/plannery-go/internal/domain"
	"github.com/plannery/plannery-go/internal/platform/httpclient"
	"github.com/plannery/plannery-go/internal/ports"
)

// Compile-time interface check.
var _ ports.ProjectsClient = (*ProjectsClient)(nil)

// ProjectsClient implements [ports.ProjectsClient] against the /projects
// resource.
type ProjectsClient struct {
	req *Requester
}

// NewProjectsClient creates a ProjectsClient over the given transport client.
func NewProjectsClient(client *httpclient.Client, logger *slog.Logger) *ProjectsClient {
	return &ProjectsClient{req: NewRequester(client, logger)}
}

// List fetches all projects from GET /projects.
func (c *ProjectsClient) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.req.Do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Retrieve fetches a single project from GET /projects/{id}, venues
// denormalized inline.
func (c *ProjectsClient) Retrieve(ctx context.Context, id string) (*domain.Project, error) {
	var project domain.Project
	if err := c.req.Do(ctx, http.MethodGet, "/projects/"+id, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Create sends POST /projects and returns the server's authoritative entity.
func (c *ProjectsClient) Create(ctx context.Context, payload domain.ProjectCreate) (*domain.Project, error) {
	var project domain.Project
	if err := c.req.Do(ctx, http.MethodPost, "/projects", payload, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Update sends PUT /projects/{id} with the patch's non-nil fields and
// returns the updated entity. Partial semantics are server-defined; the
// client sends whatever subset of fields changed, including none.
func (c *ProjectsClient) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	var project domain.Project
	if err := c.req.Do(ctx, http.MethodPut, "/projects/"+id, patch, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Remove sends DELETE /projects/{id} and expects an empty success body.
func (c *ProjectsClient) Remove(ctx context.Context, id string) error {
	return c.req.Do(ctx, http.MethodDelete, "/projects/"+id, nil, nil)
}
