package main

import (
	"fmt"
	"strings"

	"gnote/internal/store"
)

const previewLen = 100

func printSummaries(notes []store.NoteView) {
	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return
	}
	for _, note := range notes {
		fmt.Printf("ID: %s\n", note.ID)
		fmt.Printf("Date: %s\n", note.Timestamp)
		fmt.Printf("Title: %s\n", note.Title)
		if note.Category != "" {
			fmt.Printf("Category: %s\n", note.Category)
		}
		if note.Tags != "" {
			fmt.Printf("Tags: %s\n", note.Tags)
		}
		fmt.Printf("Body: %s\n\n", preview(note.Content))
	}
}

func printNote(note store.NoteView) {
	fmt.Printf("ID: %s\n", note.ID)
	fmt.Printf("Date: %s\n", note.Timestamp)
	fmt.Printf("Title: %s\n", note.Title)
	if note.Category != "" {
		fmt.Printf("Category: %s\n", note.Category)
	}
	if note.Tags != "" {
		fmt.Printf("Tags: %s\n", note.Tags)
	}
	fmt.Printf("\n%s\n", note.Content)
}

// preview collapses the note body to a single line capped at
// previewLen characters.
func preview(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) <= previewLen {
		return flat
	}
	return string(runes[:previewLen]) + "..."
}
