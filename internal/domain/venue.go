package domain

import "time"

// Venue is a performance or production location. Venues are read-only from
// this client's perspective: they are listed and embedded into projects and
// mission templates, never created or mutated here.
type Venue struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        *string   `json:"address,omitempty"`
	City           *string   `json:"city,omitempty"`
	Country        *string   `json:"country,omitempty"`
	PostalCode     *string   `json:"postalCode,omitempty"`
	Capacity       *int      `json:"capacity,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	OrganizationID string    `json:"organizationId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
