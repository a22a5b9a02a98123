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
var _ ports.VenuesClient = (*VenuesClient)(nil)

// VenuesClient implements [ports.VenuesClient] against the read-only /venues
// resource.
type VenuesClient struct {
	req *Requester
}

// NewVenuesClient creates a VenuesClient over the given transport client.
func NewVenuesClient(client *httpclient.Client, logger *slog.Logger) *VenuesClient {
	return &VenuesClient{req: NewRequester(client, logger)}
}

// List fetches all venues from GET /venues.
func (c *VenuesClient) List(ctx context.Context) ([]domain.Venue, error) {
	var venues []domain.Venue
	if err := c.req.Do(ctx, http.MethodGet, "/venues", nil, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}
