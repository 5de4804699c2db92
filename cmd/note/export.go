package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gnote/internal/store"
)

// exportNote writes the note to a markdown file in the working
// directory, with YAML front matter carrying its metadata. The file
// name combines the note's date and a sanitized title, e.g.
// 2026_08_28_meeting_notes.md.
func exportNote(ctx context.Context, st *store.Store, noteID, userID string) error {
	note, err := st.Note(ctx, noteID, userID)
	if err != nil {
		return err
	}

	name := exportFileName(note)
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %s\n", note.ID)
	fmt.Fprintf(&b, "title: %q\n", note.Title)
	fmt.Fprintf(&b, "date: %q\n", note.Timestamp)
	if note.Category != "" {
		fmt.Fprintf(&b, "category: %q\n", note.Category)
	}
	if note.Tags != "" {
		b.WriteString("tags:\n")
		for _, tag := range store.SplitTags(note.Tags) {
			fmt.Fprintf(&b, "  - %s\n", tag)
		}
	}
	b.WriteString("---\n\n")
	b.WriteString(note.Content)
	if !strings.HasSuffix(note.Content, "\n") {
		b.WriteString("\n")
	}

	if err := os.WriteFile(name, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	fmt.Printf("Saved %s\n", name)
	return nil
}

func exportFileName(note store.NoteView) string {
	date := note.Timestamp
	if len(date) >= 10 {
		date = date[:10]
	}
	date = strings.ReplaceAll(date, "-", "_")
	return date + "_" + safeTitle(note.Title) + ".md"
}

// safeTitle lowercases the title and keeps only letters, digits, and
// underscores so the result is a portable file name.
func safeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "note"
	}
	return out
}
