package cache

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type item struct {
	ID   string
	Name string
}

func seedList(s *Store, key Key) []item {
	list := []item{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Beta"},
		{ID: "c", Name: "Gamma"},
	}
	s.Put(key, list)
	return list
}

func peekList(t *testing.T, s *Store, key Key) []item {
	t.Helper()
	v, ok := s.Peek(key)
	if !ok {
		t.Fatalf("key %q not cached", key)
	}
	list, ok := v.([]item)
	if !ok {
		t.Fatalf("key %q holds %T, want []item", key, v)
	}
	return list
}

func TestMutate_CommitKeepsOptimisticValueAndInvalidates(t *testing.T) {
	t.Parallel()

	s := New()
	key := List("items")
	seedList(s, key)

	err := s.Mutate(context.Background(), Mutation{
		Name: "items.create",
		Patches: []Patch{
			AppendItem(key, item{ID: "d", Name: "Delta"}),
		},
		Invalidates: []Key{Root("items")},
		Call:        func(context.Context) error { return nil },
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	got := peekList(t, s, key)
	if len(got) != 4 || got[3].ID != "d" {
		t.Errorf("list after commit = %+v, want optimistic entry appended", got)
	}

	// The namespace is marked for refetch: the next Read goes to the network.
	calls := 0
	res := Read(context.Background(), s, key, func(context.Context) ([]item, error) {
		calls++
		return []item{{ID: "server", Name: "Authoritative"}}, nil
	})
	if calls != 1 {
		t.Errorf("fetch calls after invalidation = %d, want 1", calls)
	}
	if !res.IsSuccess() || res.Value[0].ID != "server" {
		t.Errorf("Read() after commit = %+v, want authoritative list", res)
	}
}

func TestMutate_FailureRestoresSnapshotVerbatim(t *testing.T) {
	t.Parallel()

	s := New()
	key := List("items")
	want := seedList(s, key)
	wantErr := errors.New("server refused")

	err := s.Mutate(context.Background(), Mutation{
		Name: "items.create",
		Patches: []Patch{
			AppendItem(key, item{ID: "d", Name: "Delta"}),
		},
		Invalidates: []Key{Root("items")},
		Call: func(context.Context) error {
			// The optimistic entry is visible while the call is in flight.
			if got := peekList(t, s, key); len(got) != 4 {
				t.Errorf("list during call = %+v, want 4 entries", got)
			}
			return wantErr
		},
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Mutate() error = %v, want %v", err, wantErr)
	}

	got := peekList(t, s, key)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("list after rollback = %+v, want %+v restored verbatim", got, want)
	}
}

func TestMutate_FailureStillMarksForRefetch(t *testing.T) {
	t.Parallel()

	s := New()
	key := List("items")
	seedList(s, key)

	_ = s.Mutate(context.Background(), Mutation{
		Name:        "items.update",
		Invalidates: []Key{Root("items")},
		Call:        func(context.Context) error { return errors.New("boom") },
	})

	calls := 0
	Read(context.Background(), s, key, func(context.Context) ([]item, error) {
		calls++
		return nil, nil
	})
	if calls != 1 {
		t.Errorf("fetch calls after failed mutation = %d, want 1 (marked for refetch)", calls)
	}
}

func TestMutate_RemoveThenFailureRestores(t *testing.T) {
	t.Parallel()

	s := New()
	key := List("items")
	want := seedList(s, key)

	err := s.Mutate(context.Background(), Mutation{
		Name: "items.delete",
		Patches: []Patch{
			RemoveItem(key, func(it item) bool { return it.ID == "b" }),
		},
		Invalidates: []Key{Root("items")},
		Call: func(context.Context) error {
			if got := peekList(t, s, key); len(got) != 2 {
				t.Errorf("list during delete = %+v, want entry removed", got)
			}
			return errors.New("not allowed")
		},
	})
	if err == nil {
		t.Fatal("Mutate() error = nil, want failure")
	}

	got := peekList(t, s, key)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("list after rollback = %+v, want %+v", got, want)
	}
}

func TestMutate_UpdatePatchesListAndDetail(t *testing.T) {
	t.Parallel()

	s := New()
	listKey := List("items")
	detailKey := Detail("items", "b")
	seedList(s, listKey)
	s.Put(detailKey, item{ID: "b", Name: "Beta"})

	rename := func(it item) item {
		it.Name = "Renamed"
		return it
	}

	err := s.Mutate(context.Background(), Mutation{
		Name: "items.update",
		Patches: []Patch{
			UpdateItem(listKey, func(it item) bool { return it.ID == "b" }, rename),
			UpdateEntity(detailKey, rename),
		},
		Invalidates: []Key{Root("items")},
		Call:        func(context.Context) error { return nil },
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	list := peekList(t, s, listKey)
	if list[1].Name != "Renamed" {
		t.Errorf("list entry = %+v, want renamed", list[1])
	}
	v, _ := s.Peek(detailKey)
	if v.(item).Name != "Renamed" {
		t.Errorf("detail entry = %+v, want renamed", v)
	}
}

func TestMutate_PatchOnAbsentKeyIsNoOp(t *testing.T) {
	t.Parallel()

	s := New()
	key := List("items")

	err := s.Mutate(context.Background(), Mutation{
		Name: "items.create",
		Patches: []Patch{
			AppendItem(key, item{ID: "d"}),
		},
		Invalidates: []Key{Root("items")},
		Call:        func(context.Context) error { return nil },
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	// Absence means unknown: no one-element list is fabricated.
	if _, ok := s.Peek(key); ok {
		t.Error("patch on absent key fabricated an entry")
	}
}

func TestMutate_RestoreRemovesEntryAbsentAtSnapshot(t *testing.T) {
	t.Parallel()

	s := New()
	key := List("items")

	// The patch writes even when the key is absent; rollback must remove
	// the entry again rather than leave an empty artifact.
	err := s.Mutate(context.Background(), Mutation{
		Name: "items.create",
		Patches: []Patch{
			{Key: key, Apply: func(any, bool) (any, bool) {
				return []item{{ID: "ghost"}}, true
			}},
		},
		Call: func(context.Context) error { return errors.New("refused") },
	})
	if err == nil {
		t.Fatal("Mutate() error = nil, want failure")
	}

	if _, ok := s.Peek(key); ok {
		t.Error("rollback left an entry that was absent before the mutation")
	}
}

func TestDrop(t *testing.T) {
	t.Parallel()

	s := New()
	seedList(s, List("items"))
	s.Put(Detail("items", "a"), item{ID: "a"})
	s.Put(List("other"), []item{})

	s.Drop(Root("items"))

	if _, ok := s.Peek(List("items")); ok {
		t.Error("Drop() left the list entry")
	}
	if _, ok := s.Peek(Detail("items", "a")); ok {
		t.Error("Drop() left the detail entry")
	}
	if _, ok := s.Peek(List("other")); !ok {
		t.Error("Drop() removed an uncovered entry")
	}
}
