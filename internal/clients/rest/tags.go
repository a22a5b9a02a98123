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
var _ ports.MissionTagsClient = (*MissionTagsClient)(nil)

// MissionTagsClient implements [ports.MissionTagsClient] against the
// read-only /mission-tags resource.
type MissionTagsClient struct {
	req *Requester
}

// NewMissionTagsClient creates a MissionTagsClient over the given transport
// client.
func NewMissionTagsClient(client *httpclient.Client, logger *slog.Logger) *MissionTagsClient {
	return &MissionTagsClient{req: NewRequester(client, logger)}
}

// List fetches all mission tags from GET /mission-tags.
func (c *MissionTagsClient) List(ctx context.Context) ([]domain.MissionTag, error) {
	var tags []domain.MissionTag
	if err := c.req.Do(ctx, http.MethodGet, "/mission-tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
