package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"gnote/internal/errs"
)

func tagSet(csv string) map[string]bool {
	out := make(map[string]bool)
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			out[name] = true
		}
	}
	return out
}

func TestNoteRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	userID := createTestUser(t, st, "alice")

	noteID, err := st.CreateNote(ctx, "T", "C", "Cat", "a,b", userID)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	note, err := st.Note(ctx, noteID, userID)
	if err != nil {
		t.Fatalf("get note: %v", err)
	}
	if note.Title != "T" || note.Content != "C" || note.Category != "Cat" {
		t.Fatalf("unexpected note %+v", note)
	}
	tags := tagSet(note.Tags)
	if len(tags) != 2 || !tags["a"] || !tags["b"] {
		t.Fatalf("expected tags {a,b}, got %q", note.Tags)
	}
	if _, err := time.Parse("2006-01-02 15:04:05", note.Timestamp); err != nil {
		t.Fatalf("unexpected timestamp format %q: %v", note.Timestamp, err)
	}
}

func TestNoteWithoutCategoryOrTags(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	userID := createTestUser(t, st, "alice")

	noteID, err := st.CreateNote(ctx, "Bare", "Body", "", "", userID)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	note, err := st.Note(ctx, noteID, userID)
	if err != nil {
		t.Fatalf("get note: %v", err)
	}
	if note.Category != "" || note.Tags != "" {
		t.Fatalf("expected empty category and tags, got %+v", note)
	}
}

func TestDuplicateTagsCollapseToOneAssociation(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	userID := createTestUser(t, st, "alice")

	noteID, err := st.CreateNote(ctx, "T", "C", "", "a, a ,a", userID)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	var count int
	if err := st.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM note_tags WHERE note_id = ?", noteID).Scan(&count); err != nil {
		t.Fatalf("count associations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 association row, got %d", count)
	}
}

func TestUpdateNoteReplacesTagSet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	userID := createTestUser(t, st, "alice")

	noteID, err := st.CreateNote(ctx, "T", "C", "Cat", "a,b", userID)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if err := st.UpdateNote(ctx, noteID, "T2", "C2", "Cat2", "b,c", userID); err != nil {
		t.Fatalf("update note: %v", err)
	}
	note, err := st.Note(ctx, noteID, userID)
	if err != nil {
		t.Fatalf("get note: %v", err)
	}
	if note.Title != "T2" || note.Content != "C2" || note.Category != "Cat2" {
		t.Fatalf("unexpected note after update %+v", note)
	}
	tags := tagSet(note.Tags)
	if len(tags) != 2 || !tags["b"] || !tags["c"] || tags["a"] {
		t.Fatalf("expected tag set exactly {b,c}, got %q", note.Tags)
	}
}

func TestUpdateNoteClearsCategoryAndTags(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	userID := createTestUser(t, st, "alice")

	noteID, err := st.CreateNote(ctx, "T", "C", "Cat", "a", userID)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if err := st.UpdateNote(ctx, noteID, "T", "C", "", "", userID); err != nil {
		t.Fatalf("update note: %v", err)
	}
	note, err := st.Note(ctx, noteID, userID)
	if err != nil {
		t.Fatalf("get note: %v", err)
	}
	if note.Category != "" || note.Tags != "" {
		t.Fatalf("expected category and tags cleared, got %+v", note)
	}
}

func TestUpdateNoteContentOnly(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	userID := createTestUser(t, st, "alice")

	noteID, err := st.CreateNote(ctx, "T", "old body", "Cat", "a,b", userID)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if err := st.UpdateNoteContent(ctx, noteID, "new body", userID); err != nil {
		t.Fatalf("update content: %v", err)
	}
	note, err := st.Note(ctx, noteID, userID)
	if err != nil {
		t.Fatalf("get note: %v", err)
	}
	if note.Content != "new body" {
		t.Fatalf("expected new content, got %q", note.Content)
	}
	if note.Title != "T" || note.Category != "Cat" {
		t.Fatalf("title/category must be untouched, got %+v", note)
	}
	tags := tagSet(note.Tags)
	if len(tags) != 2 || !tags["a"] || !tags["b"] {
		t.Fatalf("tags must be untouched, got %q", note.Tags)
	}
}

func TestDeleteNoteCascades(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	userID := createTestUser(t, st, "alice")

	noteID, err := st.CreateNote(ctx, "T", "C", "", "a,b", userID)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if err := st.DeleteNote(ctx, noteID, userID); err != nil {
		t.Fatalf("delete note: %v", err)
	}

	if _, err := st.Note(ctx, noteID, userID); errs.CodeOf(err) != errs.NotFound {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
	var count int
	if err := st.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM note_tags WHERE note_id = ?", noteID).Scan(&count); err != nil {
		t.Fatalf("count associations: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 association rows after delete, got %d", count)
	}
}

func TestDeleteMissingNoteIsNoOp(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	userID := createTestUser(t, st, "alice")

	if err := st.DeleteNote(ctx, "no-such-id", userID); err != nil {
		t.Fatalf("delete of missing note must be a no-op, got %v", err)
	}
}

func TestOwnershipNoOp(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")
	mallory := createTestUser(t, st, "mallory")

	noteID, err := st.CreateNote(ctx, "T", "C", "Cat", "a,b", alice)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	if err := st.UpdateNote(ctx, noteID, "hacked", "hacked", "", "x", mallory); err != nil {
		t.Fatalf("foreign update must be a silent no-op, got %v", err)
	}
	if err := st.UpdateNoteContent(ctx, noteID, "hacked", mallory); err != nil {
		t.Fatalf("foreign content update must be a silent no-op, got %v", err)
	}
	if err := st.DeleteNote(ctx, noteID, mallory); err != nil {
		t.Fatalf("foreign delete must be a silent no-op, got %v", err)
	}

	note, err := st.Note(ctx, noteID, alice)
	if err != nil {
		t.Fatalf("owner re-fetch: %v", err)
	}
	if note.Title != "T" || note.Content != "C" || note.Category != "Cat" {
		t.Fatalf("note changed by non-owner: %+v", note)
	}
	tags := tagSet(note.Tags)
	if len(tags) != 2 || !tags["a"] || !tags["b"] {
		t.Fatalf("tag set changed by non-owner: %q", note.Tags)
	}
}
