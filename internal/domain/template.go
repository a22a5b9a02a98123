package domain

import (
	"fmt"
	"strings"
	"time"
)

// MissionTemplate is a reusable mission definition: required team size and
// skills, default times, an optional default venue (referenced by id, with
// the venue optionally denormalized inline on reads), and a set of tags.
type MissionTemplate struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Description      *string      `json:"description,omitempty"`
	TeamSize         int          `json:"teamSize"`
	RequiredSkills   []string     `json:"requiredSkills"`
	DefaultStartTime *string      `json:"defaultStartTime,omitempty"`
	DefaultEndTime   *string      `json:"defaultEndTime,omitempty"`
	DefaultVenueID   *string      `json:"defaultVenueId,omitempty"`
	DefaultVenue     *Venue       `json:"defaultVenue,omitempty"`
	Tags             []MissionTag `json:"tags"`
	OrganizationID   string       `json:"organizationId"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// MissionTemplateCreate is the payload for creating a mission template.
// Tag associations are sent as an id list and come back denormalized.
type MissionTemplateCreate struct {
	Name             string   `json:"name"`
	Description      *string  `json:"description,omitempty"`
	TeamSize         int      `json:"teamSize"`
	RequiredSkills   []string `json:"requiredSkills"`
	DefaultStartTime *string  `json:"defaultStartTime,omitempty"`
	DefaultEndTime   *string  `json:"defaultEndTime,omitempty"`
	DefaultVenueID   *string  `json:"defaultVenueId,omitempty"`
	TagIDs           []string `json:"tagIds"`
}

// Validate checks the payload before submission. TeamSize must be a positive
// integer; the server is still the authority on everything else.
func (t *MissionTemplateCreate) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Name) == "" {
		fields["name"] = MsgRequired
	}
	if t.TeamSize < 1 {
		fields["teamSize"] = fmt.Sprintf("must be >= 1, got %d", t.TeamSize)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// MissionTemplatePatch is the payload for a partial mission template update.
// Nil fields are omitted from the wire payload and left untouched on merge.
type MissionTemplatePatch struct {
	Name             *string   `json:"name,omitempty"`
	Description      *string   `json:"description,omitempty"`
	TeamSize         *int      `json:"teamSize,omitempty"`
	RequiredSkills   *[]string `json:"requiredSkills,omitempty"`
	DefaultStartTime *string   `json:"defaultStartTime,omitempty"`
	DefaultEndTime   *string   `json:"defaultEndTime,omitempty"`
	DefaultVenueID   *string   `json:"defaultVenueId,omitempty"`
	TagIDs           *[]string `json:"tagIds,omitempty"`
}

// Validate rejects patches that would set an invalid team size.
func (t *MissionTemplatePatch) Validate() error {
	if t.TeamSize != nil && *t.TeamSize < 1 {
		return &ValidationError{Fields: map[string]string{
			"teamSize": fmt.Sprintf("must be >= 1, got %d", *t.TeamSize),
		}}
	}
	return nil
}

// Apply merges the patch into a copy of the given template, field by field.
// Tag associations are not merged locally (id list on write, denormalized
// objects on read); the authoritative set arrives with the refetch.
// UpdatedAt is bumped to now, never backwards.
func (t MissionTemplatePatch) Apply(tpl MissionTemplate, now time.Time) MissionTemplate {
	if t.Name != nil {
		tpl.Name = *t.Name
	}
	if t.Description != nil {
		tpl.Description = t.Description
	}
	if t.TeamSize != nil {
		tpl.TeamSize = *t.TeamSize
	}
	if t.RequiredSkills != nil {
		tpl.RequiredSkills = *t.RequiredSkills
	}
	if t.DefaultStartTime != nil {
		tpl.DefaultStartTime = t.DefaultStartTime
	}
	if t.DefaultEndTime != nil {
		tpl.DefaultEndTime = t.DefaultEndTime
	}
	if t.DefaultVenueID != nil {
		tpl.DefaultVenueID = t.DefaultVenueID
		// The denormalized venue matches the old id; drop it rather than
		// show a stale object until the refetch lands.
		tpl.DefaultVenue = nil
	}
	if now.After(tpl.UpdatedAt) {
		tpl.UpdatedAt = now
	}
	return tpl
}
