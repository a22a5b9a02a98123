package domain

import (
	"strings"
	"time"
)

// Project is a production-planning project. The Venues slice carries the
// project's associated venues by value: reads receive full Venue objects
// inline, while writes reference venues by id (see ProjectCreate.VenueIDs).
type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	StartDate      *string   `json:"startDate,omitempty"`
	EndDate        *string   `json:"endDate,omitempty"`
	BudgetCents    *int64    `json:"budgetCents,omitempty"`
	TeamType       *string   `json:"teamType,omitempty"`
	OrganizationID string    `json:"organizationId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Venues         []Venue   `json:"venues"`
}

// ProjectCreate is the payload for creating a project. Venue associations are
// sent as an id list; the server responds with the venues denormalized.
type ProjectCreate struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	StartDate   *string  `json:"startDate,omitempty"`
	EndDate     *string  `json:"endDate,omitempty"`
	BudgetCents *int64   `json:"budgetCents,omitempty"`
	TeamType    *string  `json:"teamType,omitempty"`
	VenueIDs    []string `json:"venueIds"`
}

// Validate checks the payload before submission. The server is the authority;
// this only rejects payloads that are locally known to be invalid.
func (p *ProjectCreate) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = MsgRequired
	}
	if p.BudgetCents != nil && *p.BudgetCents < 0 {
		fields["budgetCents"] = "must not be negative"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ProjectPatch is the payload for a partial project update. Every field is
// optional: nil means "leave untouched" and is omitted from the wire payload.
// A non-nil field overwrites the server-side value. There is deliberately no
// way to express "set to null" here; omitted is never treated as cleared.
type ProjectPatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	StartDate   *string   `json:"startDate,omitempty"`
	EndDate     *string   `json:"endDate,omitempty"`
	BudgetCents *int64    `json:"budgetCents,omitempty"`
	TeamType    *string   `json:"teamType,omitempty"`
	VenueIDs    *[]string `json:"venueIds,omitempty"`
}

// Apply merges the patch into a copy of the given project, field by field.
// Venue associations are not merged locally: the patch carries venue ids
// while the entity carries denormalized venues, so only the server can
// resolve the new association set. UpdatedAt is bumped to now, clamped so
// it never moves backwards relative to the cached entity.
func (p ProjectPatch) Apply(proj Project, now time.Time) Project {
	if p.Name != nil {
		proj.Name = *p.Name
	}
	if p.Description != nil {
		proj.Description = p.Description
	}
	if p.StartDate != nil {
		proj.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		proj.EndDate = p.EndDate
	}
	if p.BudgetCents != nil {
		proj.BudgetCents = p.BudgetCents
	}
	if p.TeamType != nil {
		proj.TeamType = p.TeamType
	}
	if now.After(proj.UpdatedAt) {
		proj.UpdatedAt = now
	}
	return proj
}
