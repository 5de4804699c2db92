package store

import (
	"context"
	"reflect"
	"testing"
)

func TestSplitTags(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"a", []string{"a"}},
		{"a,b", []string{"a", "b"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b,", []string{"a", "b"}},
		{"a,b,a", []string{"a", "b"}},
		{"go, sqlite, go", []string{"go", "sqlite"}},
	}
	for _, c := range cases {
		if got := SplitTags(c.in); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("SplitTags(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestResolveCategoryDedup(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")

	first, err := st.ResolveCategory(ctx, "Work", alice)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := st.ResolveCategory(ctx, "Work", alice)
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if first == "" || first != second {
		t.Fatalf("expected stable id for same (name,user), got %q then %q", first, second)
	}

	other, err := st.ResolveCategory(ctx, "Work", bob)
	if err != nil {
		t.Fatalf("resolve for bob: %v", err)
	}
	if other == first {
		t.Fatalf("two users must not share a category id")
	}
}

func TestResolveEmptyCategory(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")

	id, err := st.ResolveCategory(ctx, "", alice)
	if err != nil {
		t.Fatalf("resolve empty: %v", err)
	}
	if id != "" {
		t.Fatalf("empty name must resolve to no category, got %q", id)
	}
	id, err = st.ResolveCategory(ctx, "   ", alice)
	if err != nil {
		t.Fatalf("resolve blank: %v", err)
	}
	if id != "" {
		t.Fatalf("blank name must resolve to no category, got %q", id)
	}
}

func TestResolveTagsOrderAndDedup(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")

	// Seed "b" first so input order, not insertion order, decides output.
	seeded, err := st.ResolveTags(ctx, "b", alice)
	if err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	ids, err := st.ResolveTags(ctx, " a , b , a ", alice)
	if err != nil {
		t.Fatalf("resolve tags: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
	if ids[1] != seeded[0] {
		t.Fatalf("expected b at input position 1, got %v (b=%s)", ids, seeded[0])
	}

	again, err := st.ResolveTags(ctx, "a,b", alice)
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if !reflect.DeepEqual(ids, again) {
		t.Fatalf("expected stable ids, got %v then %v", ids, again)
	}
}
