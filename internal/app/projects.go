package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/plannery/plannery-go/internal/cache"
	"github.com/plannery/plannery-go/internal/domain"
	"github.com/plannery/plannery-go/internal/ports"
)

// ProjectService fronts the /projects resource: cached reads of the project
// list and single projects, and optimistic create, update, and delete.
type ProjectService struct {
	store  *cache.Store
	client ports.ProjectsClient
	logger *slog.Logger
	now    func() time.Time
}

// NewProjectService creates a ProjectService over the shared cache store
// and the projects client port.
func NewProjectService(store *cache.Store, client ports.ProjectsClient, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		store:  store,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ProjectService) listKey() cache.Key {
	return cache.List(resourceProjects)
}

func (s *ProjectService) detailKey(id string) cache.Key {
	return cache.Detail(resourceProjects, id)
}

// List returns all projects, served from cache when fresh.
func (s *ProjectService) List(ctx context.Context) cache.Result[[]domain.Project] {
	return cache.Read(ctx, s.store, s.listKey(), s.client.List)
}

// Get returns a single project by id. An empty id gates the query: the
// result is Unresolved and no request is made.
func (s *ProjectService) Get(ctx context.Context, id string) cache.Result[domain.Project] {
	if id == "" {
		return cache.Unresolved[domain.Project]()
	}
	return cache.Read(ctx, s.store, s.detailKey(id), func(ctx context.Context) (domain.Project, error) {
		p, err := s.client.Retrieve(ctx, id)
		if err != nil {
			return domain.Project{}, err
		}
		return *p, nil
	})
}

// Create creates a project with optimistic feedback: a placeholder entity
// under a client-minted id is appended to the cached list before the
// request goes out. On success the server's authoritative entity is
// returned and the resource is invalidated so the placeholder is replaced
// by the refetched list; on failure the list is restored as it was.
func (s *ProjectService) Create(ctx context.Context, payload domain.ProjectCreate) (*domain.Project, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "creating project", slog.String("name", payload.Name))

	placeholder := s.placeholder(payload)
	var created *domain.Project

	err := s.store.Mutate(ctx, cache.Mutation{
		Name: "projects.create",
		Patches: []cache.Patch{
			cache.AppendItem(s.listKey(), placeholder),
		},
		Invalidates: []cache.Key{cache.Root(resourceProjects)},
		Call: func(ctx context.Context) error {
			p, err := s.client.Create(ctx, payload)
			if err != nil {
				return err
			}
			created = p
			return nil
		},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create project",
			slog.String("operation", "Create"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return created, nil
}

// Update applies a partial update with optimistic feedback: the patch's
// non-nil fields are merged into the cached list entry and detail entry
// before the request goes out. Failure restores both verbatim.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	s.logger.InfoContext(ctx, "updating project", slog.String("id", id))

	now := s.now()
	var updated *domain.Project

	err := s.store.Mutate(ctx, cache.Mutation{
		Name: "projects.update",
		Patches: []cache.Patch{
			cache.UpdateItem(s.listKey(),
				func(p domain.Project) bool { return p.ID == id },
				func(p domain.Project) domain.Project { return patch.Apply(p, now) },
			),
			cache.UpdateEntity(s.detailKey(id),
				func(p domain.Project) domain.Project { return patch.Apply(p, now) },
			),
		},
		Invalidates: []cache.Key{cache.Root(resourceProjects)},
		Call: func(ctx context.Context) error {
			p, err := s.client.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			updated = p
			return nil
		},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update project",
			slog.String("operation", "Update"),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// Delete removes a project with optimistic feedback: the entry disappears
// from the cached list before the request goes out and reappears if the
// server refuses.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	s.logger.InfoContext(ctx, "deleting project", slog.String("id", id))

	err := s.store.Mutate(ctx, cache.Mutation{
		Name: "projects.delete",
		Patches: []cache.Patch{
			cache.RemoveItem(s.listKey(),
				func(p domain.Project) bool { return p.ID == id },
			),
		},
		Invalidates: []cache.Key{cache.Root(resourceProjects)},
		Call: func(ctx context.Context) error {
			return s.client.Remove(ctx, id)
		},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete project",
			slog.String("operation", "Delete"),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// Refresh marks the whole projects namespace for refetch.
func (s *ProjectService) Refresh() {
	s.store.Invalidate(cache.Root(resourceProjects))
}

// Evict removes all cached project data. Unlike Refresh, the values are
// gone, not just stale. Called when the session credential changes.
func (s *ProjectService) Evict() {
	s.store.Drop(cache.Root(resourceProjects))
}

// placeholder builds the optimistic stand-in for a project being created.
// Venue associations stay empty: the payload carries ids while the entity
// carries denormalized venues, and only the server can resolve them.
func (s *ProjectService) placeholder(payload domain.ProjectCreate) domain.Project {
	now := s.now()
	return domain.Project{
		ID:          domain.NewOptimisticID(),
		Name:        payload.Name,
		Description: payload.Description,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
		BudgetCents: payload.BudgetCents,
		TeamType:    payload.TeamType,
		CreatedAt:   now,
		UpdatedAt:   now,
		Venues:      []domain.Venue{},
	}
}
