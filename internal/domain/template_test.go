package domain

import (
	"errors"
	"testing"
	"time"
)

func intPtr(n int) *int { return &n }

func TestMissionTemplateCreate_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload MissionTemplateCreate
		wantErr bool
	}{
		{"valid", MissionTemplateCreate{Name: "Stage Setup", TeamSize: 4}, false},
		{"blank name", MissionTemplateCreate{Name: " ", TeamSize: 4}, true},
		{"zero team size", MissionTemplateCreate{Name: "X", TeamSize: 0}, true},
		{"negative team size", MissionTemplateCreate{Name: "X", TeamSize: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.payload.Validate()
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() = %v, want validation error", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestMissionTemplatePatch_Validate(t *testing.T) {
	t.Parallel()

	if err := (&MissionTemplatePatch{TeamSize: intPtr(0)}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("Validate(teamSize=0) = %v, want validation error", err)
	}
	if err := (&MissionTemplatePatch{}).Validate(); err != nil {
		t.Errorf("Validate(empty patch) = %v, want nil", err)
	}
}

func TestMissionTemplatePatch_Apply(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	venue := Venue{ID: "v1", Name: "Grand Hall"}
	tpl := MissionTemplate{
		ID:             "t1",
		Name:           "Stage Setup",
		TeamSize:       4,
		RequiredSkills: []string{"rigging"},
		DefaultVenueID: strPtr("v1"),
		DefaultVenue:   &venue,
		Tags:           []MissionTag{{ID: "tag1", Slug: "setup"}},
		UpdatedAt:      base,
	}

	t.Run("merges scalar fields", func(t *testing.T) {
		t.Parallel()
		got := MissionTemplatePatch{TeamSize: intPtr(6)}.Apply(tpl, base.Add(time.Hour))
		if got.TeamSize != 6 {
			t.Errorf("TeamSize = %d, want 6", got.TeamSize)
		}
		if got.Name != "Stage Setup" {
			t.Error("nil patch field modified Name")
		}
	})

	t.Run("changing default venue drops the stale denormalized venue", func(t *testing.T) {
		t.Parallel()
		got := MissionTemplatePatch{DefaultVenueID: strPtr("v2")}.Apply(tpl, base.Add(time.Hour))
		if got.DefaultVenueID == nil || *got.DefaultVenueID != "v2" {
			t.Errorf("DefaultVenueID = %v, want v2", got.DefaultVenueID)
		}
		if got.DefaultVenue != nil {
			t.Errorf("DefaultVenue = %+v, want nil until refetch", got.DefaultVenue)
		}
	})

	t.Run("tag ids are not merged locally", func(t *testing.T) {
		t.Parallel()
		ids := []string{"tag2"}
		got := MissionTemplatePatch{TagIDs: &ids}.Apply(tpl, base.Add(time.Hour))
		if len(got.Tags) != 1 || got.Tags[0].ID != "tag1" {
			t.Errorf("Tags = %+v, want untouched until refetch", got.Tags)
		}
	})
}
