package stub

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plannery/plannery-go/internal/domain"
)

// defaultOrgID stamps every seeded and created entity. The stub models a
// single organization.
const defaultOrgID = "org-plannery-dev"

// state is the stub's in-memory dataset. Venues and tags are read-only
// lookups; projects and templates support full CRUD.
type state struct {
	mu        sync.RWMutex
	venues    map[string]domain.Venue
	tags      map[string]domain.MissionTag
	projects  map[string]domain.Project
	templates map[string]domain.MissionTemplate
	now       func() time.Time
}

// newState builds a dataset with a few seeded venues and tags so list
// endpoints are non-empty from the first request.
func newState(now func() time.Time) *state {
	s := &state{
		venues:    make(map[string]domain.Venue),
		tags:      make(map[string]domain.MissionTag),
		projects:  make(map[string]domain.Project),
		templates: make(map[string]domain.MissionTemplate),
		now:       now,
	}

	seeded := now()
	for _, v := range []domain.Venue{
		{ID: uuid.NewString(), Name: "Grand Hall", Address: strPtr("1 Festival Way"), Capacity: intPtr(1200)},
		{ID: uuid.NewString(), Name: "Riverside Stage", Address: strPtr("42 Quay Road"), Capacity: intPtr(350)},
		{ID: uuid.NewString(), Name: "Studio B", Capacity: intPtr(80)},
	} {
		v.OrganizationID = defaultOrgID
		v.CreatedAt = seeded
		v.UpdatedAt = seeded
		s.venues[v.ID] = v
	}

	for _, t := range []domain.MissionTag{
		{ID: uuid.NewString(), Slug: "setup", Label: "Setup"},
		{ID: uuid.NewString(), Slug: "teardown", Label: "Teardown"},
		{ID: uuid.NewString(), Slug: "front-of-house", Label: "Front of House"},
	} {
		t.OrganizationID = defaultOrgID
		t.CreatedAt = seeded
		t.UpdatedAt = seeded
		s.tags[t.ID] = t
	}

	return s
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// listVenues returns all venues sorted by name.
func (s *state) listVenues() []domain.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// listTags returns all tags sorted by slug.
func (s *state) listTags() []domain.MissionTag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MissionTag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// listProjects returns all projects sorted by creation time.
func (s *state) listProjects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// getProject returns a project by id.
func (s *state) getProject(id string) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	return p, ok
}

// resolveVenues maps venue ids to denormalized venues, rejecting unknown
// ids with the offending id.
func (s *state) resolveVenues(ids []string) ([]domain.Venue, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	venues := make([]domain.Venue, 0, len(ids))
	for _, id := range ids {
		v, ok := s.venues[id]
		if !ok {
			return nil, id, false
		}
		venues = append(venues, v)
	}
	return venues, "", true
}

// createProject materializes a project from the payload with a fresh id
// and denormalized venues.
func (s *state) createProject(payload domain.ProjectCreate, venues []domain.Venue) domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	p := domain.Project{
		ID:             uuid.NewString(),
		Name:           payload.Name,
		Description:    payload.Description,
		StartDate:      payload.StartDate,
		EndDate:        payload.EndDate,
		BudgetCents:    payload.BudgetCents,
		TeamType:       payload.TeamType,
		OrganizationID: defaultOrgID,
		CreatedAt:      now,
		UpdatedAt:      now,
		Venues:         venues,
	}
	s.projects[p.ID] = p
	return p
}

// updateProject merges the patch into an existing project. When the patch
// carries venue ids the resolved venues replace the association set.
func (s *state) updateProject(id string, patch domain.ProjectPatch, venues []domain.Venue, replaceVenues bool) (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return domain.Project{}, false
	}
	p = patch.Apply(p, s.now())
	if replaceVenues {
		p.Venues = venues
	}
	s.projects[id] = p
	return p, true
}

// deleteProject removes a project by id.
func (s *state) deleteProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return false
	}
	delete(s.projects, id)
	return true
}

// listTemplates returns all mission templates sorted by creation time.
func (s *state) listTemplates() []domain.MissionTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MissionTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// resolveTags maps tag ids to denormalized tags, rejecting unknown ids.
func (s *state) resolveTags(ids []string) ([]domain.MissionTag, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tags := make([]domain.MissionTag, 0, len(ids))
	for _, id := range ids {
		t, ok := s.tags[id]
		if !ok {
			return nil, id, false
		}
		tags = append(tags, t)
	}
	return tags, "", true
}

// lookupVenue returns a venue by id for default-venue denormalization.
func (s *state) lookupVenue(id string) (domain.Venue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.venues[id]
	return v, ok
}

// createTemplate materializes a mission template from the payload.
func (s *state) createTemplate(payload domain.MissionTemplateCreate, tags []domain.MissionTag, defaultVenue *domain.Venue) domain.MissionTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	skills := payload.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	t := domain.MissionTemplate{
		ID:               uuid.NewString(),
		Name:             payload.Name,
		Description:      payload.Description,
		TeamSize:         payload.TeamSize,
		RequiredSkills:   skills,
		DefaultStartTime: payload.DefaultStartTime,
		DefaultEndTime:   payload.DefaultEndTime,
		DefaultVenueID:   payload.DefaultVenueID,
		DefaultVenue:     defaultVenue,
		Tags:             tags,
		OrganizationID:   defaultOrgID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.templates[t.ID] = t
	return t
}

// updateTemplate merges the patch into an existing template, replacing
// associations when the patch names them.
func (s *state) updateTemplate(id string, patch domain.MissionTemplatePatch, tags []domain.MissionTag, replaceTags bool, defaultVenue *domain.Venue) (domain.MissionTemplate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.templates[id]
	if !ok {
		return domain.MissionTemplate{}, false
	}
	t = patch.Apply(t, s.now())
	if replaceTags {
		t.Tags = tags
	}
	if patch.DefaultVenueID != nil {
		t.DefaultVenue = defaultVenue
	}
	s.templates[id] = t
	return t, true
}

// deleteTemplate removes a mission template by id.
func (s *state) deleteTemplate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return false
	}
	delete(s.templates, id)
	return true
}
