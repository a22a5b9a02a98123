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
var _ ports.MissionTemplatesClient = (*MissionTemplatesClient)(nil)

// MissionTemplatesClient implements [ports.MissionTemplatesClient] against
// the /mission-templates resource.
type MissionTemplatesClient struct {
	req *Requester
}

// NewMissionTemplatesClient creates a MissionTemplatesClient over the given
// transport client.
func NewMissionTemplatesClient(client *httpclient.Client, logger *slog.Logger) *MissionTemplatesClient {
	return &MissionTemplatesClient{req: NewRequester(client, logger)}
}

// List fetches all mission templates from GET /mission-templates.
func (c *MissionTemplatesClient) List(ctx context.Context) ([]domain.MissionTemplate, error) {
	var templates []domain.MissionTemplate
	if err := c.req.Do(ctx, http.MethodGet, "/mission-templates", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Create sends POST /mission-templates and returns the created entity with
// tags denormalized.
func (c *MissionTemplatesClient) Create(ctx context.Context, payload domain.MissionTemplateCreate) (*domain.MissionTemplate, error) {
	var template domain.MissionTemplate
	if err := c.req.Do(ctx, http.MethodPost, "/mission-templates", payload, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// Update sends PUT /mission-templates/{id} with the patch's non-nil fields.
func (c *MissionTemplatesClient) Update(ctx context.Context, id string, patch domain.MissionTemplatePatch) (*domain.MissionTemplate, error) {
	var template domain.MissionTemplate
	if err := c.req.Do(ctx, http.MethodPut, "/mission-templates/"+id, patch, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// Remove sends DELETE /mission-templates/{id} and expects an empty body.
func (c *MissionTemplatesClient) Remove(ctx context.Context, id string) error {
	return c.req.Do(ctx, http.MethodDelete, "/mission-templates/"+id, nil, nil)
}
