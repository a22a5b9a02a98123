package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/plannery/plannery-go/internal/cache"
	"github.com/plannery/plannery-go/internal/domain"
	"github.com/plannery/plannery-go/internal/ports"
)

// TemplateService fronts the /mission-templates resource: cached list reads
// and optimistic create, update, and delete. Templates have no detail
// endpoint; every read goes through the list.
type TemplateService struct {
	store  *cache.Store
	client ports.MissionTemplatesClient
	logger *slog.Logger
	now    func() time.Time
}

// NewTemplateService creates a TemplateService over the shared cache store
// and the mission templates client port.
func NewTemplateService(store *cache.Store, client ports.MissionTemplatesClient, logger *slog.Logger) *TemplateService {
	return &TemplateService{
		store:  store,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TemplateService) listKey() cache.Key {
	return cache.List(resourceTemplates)
}

// List returns all mission templates, served from cache when fresh.
func (s *TemplateService) List(ctx context.Context) cache.Result[[]domain.MissionTemplate] {
	return cache.Read(ctx, s.store, s.listKey(), s.client.List)
}

// Create creates a mission template with optimistic feedback: a placeholder
// under a client-minted id is appended to the cached list before the
// request goes out, and the server's entity is returned on success.
func (s *TemplateService) Create(ctx context.Context, payload domain.MissionTemplateCreate) (*domain.MissionTemplate, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "creating mission template", slog.String("name", payload.Name))

	placeholder := s.placeholder(payload)
	var created *domain.MissionTemplate

	err := s.store.Mutate(ctx, cache.Mutation{
		Name: "templates.create",
		Patches: []cache.Patch{
			cache.AppendItem(s.listKey(), placeholder),
		},
		Invalidates: []cache.Key{cache.Root(resourceTemplates)},
		Call: func(ctx context.Context) error {
			t, err := s.client.Create(ctx, payload)
			if err != nil {
				return err
			}
			created = t
			return nil
		},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create mission template",
			slog.String("operation", "Create"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return created, nil
}

// Update applies a partial update with optimistic feedback on the cached
// list entry. Failure restores the list verbatim.
func (s *TemplateService) Update(ctx context.Context, id string, patch domain.MissionTemplatePatch) (*domain.MissionTemplate, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "updating mission template", slog.String("id", id))

	now := s.now()
	var updated *domain.MissionTemplate

	err := s.store.Mutate(ctx, cache.Mutation{
		Name: "templates.update",
		Patches: []cache.Patch{
			cache.UpdateItem(s.listKey(),
				func(t domain.MissionTemplate) bool { return t.ID == id },
				func(t domain.MissionTemplate) domain.MissionTemplate { return patch.Apply(t, now) },
			),
		},
		Invalidates: []cache.Key{cache.Root(resourceTemplates)},
		Call: func(ctx context.Context) error {
			t, err := s.client.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			updated = t
			return nil
		},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update mission template",
			slog.String("operation", "Update"),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// Delete removes a mission template with optimistic feedback on the cached
// list.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	s.logger.InfoContext(ctx, "deleting mission template", slog.String("id", id))

	err := s.store.Mutate(ctx, cache.Mutation{
		Name: "templates.delete",
		Patches: []cache.Patch{
			cache.RemoveItem(s.listKey(),
				func(t domain.MissionTemplate) bool { return t.ID == id },
			),
		},
		Invalidates: []cache.Key{cache.Root(resourceTemplates)},
		Call: func(ctx context.Context) error {
			return s.client.Remove(ctx, id)
		},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete mission template",
			slog.String("operation", "Delete"),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// Refresh marks the whole mission templates namespace for refetch.
func (s *TemplateService) Refresh() {
	s.store.Invalidate(cache.Root(resourceTemplates))
}

// Evict removes all cached template data. Called when the session
// credential changes.
func (s *TemplateService) Evict() {
	s.store.Drop(cache.Root(resourceTemplates))
}

// placeholder builds the optimistic stand-in for a template being created.
// Tag and venue associations stay empty, the payload carries ids while the
// entity carries denormalized objects.
func (s *TemplateService) placeholder(payload domain.MissionTemplateCreate) domain.MissionTemplate {
	now := s.now()
	return domain.MissionTemplate{
		ID:               domain.NewOptimisticID(),
		Name:             payload.Name,
		Description:      payload.Description,
		TeamSize:         payload.TeamSize,
		RequiredSkills:   payload.RequiredSkills,
		DefaultStartTime: payload.DefaultStartTime,
		DefaultEndTime:   payload.DefaultEndTime,
		DefaultVenueID:   payload.DefaultVenueID,
		Tags:             []domain.MissionTag{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
