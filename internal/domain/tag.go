package domain

import "time"

// MissionTag is a labelled categorization for mission templates. The slug is
// the stable machine key; Label is the display name. Tags are read-only from
// this client's perspective.
type MissionTag struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Label          string    `json:"label"`
	OrganizationID string    `json:"organizationId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
