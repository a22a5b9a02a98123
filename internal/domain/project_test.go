package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }

func TestProjectCreate_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts minimal payload", func(t *testing.T) {
		t.Parallel()
		p := ProjectCreate{Name: "Summer Festival"}
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		t.Parallel()
		p := ProjectCreate{Name: "   "}
		err := p.Validate()
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Validate() = %v, want ValidationError", err)
		}
		if vErr.Fields["name"] != MsgRequired {
			t.Errorf("Fields[name] = %q, want %q", vErr.Fields["name"], MsgRequired)
		}
	})

	t.Run("rejects negative budget", func(t *testing.T) {
		t.Parallel()
		p := ProjectCreate{Name: "X", BudgetCents: i64Ptr(-1)}
		var vErr *ValidationError
		if err := p.Validate(); !errors.As(err, &vErr) {
			t.Fatalf("Validate() = %v, want ValidationError", err)
		}
	})
}

func TestProjectPatch_Apply(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	proj := Project{
		ID:          "p1",
		Name:        "Old Name",
		Description: strPtr("old description"),
		BudgetCents: i64Ptr(5000),
		UpdatedAt:   base,
		Venues:      []Venue{{ID: "v1", Name: "Grand Hall"}},
	}

	t.Run("non-nil fields overwrite", func(t *testing.T) {
		t.Parallel()
		now := base.Add(time.Hour)
		got := ProjectPatch{Name: strPtr("New Name")}.Apply(proj, now)

		if got.Name != "New Name" {
			t.Errorf("Name = %q, want %q", got.Name, "New Name")
		}
		if got.Description == nil || *got.Description != "old description" {
			t.Error("nil patch field modified Description")
		}
		if !got.UpdatedAt.Equal(now) {
			t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, now)
		}
	})

	t.Run("never moves updatedAt backwards", func(t *testing.T) {
		t.Parallel()
		earlier := base.Add(-time.Hour)
		got := ProjectPatch{Name: strPtr("X")}.Apply(proj, earlier)
		if !got.UpdatedAt.Equal(base) {
			t.Errorf("UpdatedAt = %v, want clamped to %v", got.UpdatedAt, base)
		}
	})

	t.Run("venue ids are not merged locally", func(t *testing.T) {
		t.Parallel()
		ids := []string{"v2"}
		got := ProjectPatch{VenueIDs: &ids}.Apply(proj, base.Add(time.Hour))
		if len(got.Venues) != 1 || got.Venues[0].ID != "v1" {
			t.Errorf("Venues = %+v, want untouched until refetch", got.Venues)
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		t.Parallel()
		ProjectPatch{Name: strPtr("Mutated?")}.Apply(proj, base.Add(time.Hour))
		if proj.Name != "Old Name" {
			t.Errorf("input project mutated: Name = %q", proj.Name)
		}
	})
}

func TestProjectPatch_WireOmitsNilFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ProjectPatch{Name: strPtr("Only Name")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got := string(data); got != `{"name":"Only Name"}` {
		t.Errorf("Marshal() = %s, want only the set field", got)
	}
}

func TestProject_WireFieldNames(t *testing.T) {
	t.Parallel()

	p := Project{
		ID:             "p1",
		Name:           "X",
		OrganizationID: "org",
		Venues:         []Venue{},
		BudgetCents:    i64Ptr(100),
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, field := range []string{`"organizationId"`, `"budgetCents"`, `"createdAt"`, `"updatedAt"`, `"venues"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("wire payload missing %s: %s", field, data)
		}
	}
}
