package ports

import (
	"context"

	"github.com/plannery/plannery-go/internal/domain"
)

// ProjectsClient is the client port for the /projects resource.
// Failures from the transport propagate unchanged: server-reported errors
// arrive as *domain.APIError, cancellations satisfy domain.IsCancellation.
type ProjectsClient interface {
	// List returns all projects visible to the session's organization.
	List(ctx context.Context) ([]domain.Project, error)

	// Retrieve returns a single project by id, venues denormalized.
	// Returns an error satisfying errors.Is(err, domain.ErrNotFound) when
	// the server reports 404.
	Retrieve(ctx context.Context, id string) (*domain.Project, error)

	// Create creates a project and returns the server's authoritative
	// entity, including the server-assigned id and timestamps.
	Create(ctx context.Context, payload domain.ProjectCreate) (*domain.Project, error)

	// Update applies a partial update; only the patch's non-nil fields are
	// sent. Returns the updated entity.
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)

	// Remove deletes a project. The server responds with an empty body.
	Remove(ctx context.Context, id string) error
}

// VenuesClient is the client port for the read-only /venues resource.
type VenuesClient interface {
	List(ctx context.Context) ([]domain.Venue, error)
}

// MissionTemplatesClient is the client port for the /mission-templates
// resource.
type MissionTemplatesClient interface {
	List(ctx context.Context) ([]domain.MissionTemplate, error)
	Create(ctx context.Context, payload domain.MissionTemplateCreate) (*domain.MissionTemplate, error)
	Update(ctx context.Context, id string, patch domain.MissionTemplatePatch) (*domain.MissionTemplate, error)
	Remove(ctx context.Context, id string) error
}

// MissionTagsClient is the client port for the read-only /mission-tags
// resource.
type MissionTagsClient interface {
	List(ctx context.Context) ([]domain.MissionTag, error)
}
