package app

import (
	"context"
	"log/slog"

	"github.com/plannery/plannery-go/internal/cache"
	"github.com/plannery/plannery-go/internal/domain"
	"github.com/plannery/plannery-go/internal/ports"
)

// VenueService fronts the read-only /venues resource.
type VenueService struct {
	store  *cache.Store
	client ports.VenuesClient
	logger *slog.Logger
}

// NewVenueService creates a VenueService over the shared cache store.
func NewVenueService(store *cache.Store, client ports.VenuesClient, logger *slog.Logger) *VenueService {
	return &VenueService{store: store, client: client, logger: logger}
}

// List returns all venues, served from cache when fresh.
func (s *VenueService) List(ctx context.Context) cache.Result[[]domain.Venue] {
	return cache.Read(ctx, s.store, cache.List(resourceVenues), s.client.List)
}

// Refresh marks the venues namespace for refetch.
func (s *VenueService) Refresh() {
	s.store.Invalidate(cache.Root(resourceVenues))
}

// Evict removes all cached venue data. Called when the session credential
// changes.
func (s *VenueService) Evict() {
	s.store.Drop(cache.Root(resourceVenues))
}

// TagService fronts the read-only /mission-tags resource.
type TagService struct {
	store  *cache.Store
	client ports.MissionTagsClient
	logger *slog.Logger
}

// NewTagService creates a TagService over the shared cache store.
func NewTagService(store *cache.Store, client ports.MissionTagsClient, logger *slog.Logger) *TagService {
	return &TagService{store: store, client: client, logger: logger}
}

// List returns all mission tags, served from cache when fresh.
func (s *TagService) List(ctx context.Context) cache.Result[[]domain.MissionTag] {
	return cache.Read(ctx, s.store, cache.List(resourceTags), s.client.List)
}

// Refresh marks the mission tags namespace for refetch.
func (s *TagService) Refresh() {
	s.store.Invalidate(cache.Root(resourceTags))
}

// Evict removes all cached mission tag data. Called when the session
// credential changes.
func (s *TagService) Evict() {
	s.store.Drop(cache.Root(resourceTags))
}
