package web

import (
	"html/template"

	"gnote/internal/store"
)

type ViewData struct {
	Title           string
	ContentTemplate string
	ContentHTML     template.HTML
	UserName        string
	Note            *NoteCard
	Notes           []NoteCard
	Categories      []string
	SearchQuery     string
	FormTitle       string
	FormContent     string
	FormCategory    string
	FormTags        string
	Error           string
}

type NoteCard struct {
	ID           string
	Title        string
	Timestamp    string
	Category     string
	Tags         string
	RawContent   string
	RenderedHTML template.HTML
}

func noteCard(n store.NoteView) NoteCard {
	return NoteCard{
		ID:           n.ID,
		Title:        n.Title,
		Timestamp:    n.Timestamp,
		Category:     n.Category,
		Tags:         n.Tags,
		RawContent:   n.Content,
		RenderedHTML: renderMarkdown(n.Content),
	}
}

func noteCards(notes []store.NoteView) []NoteCard {
	cards := make([]NoteCard, 0, len(notes))
	for _, n := range notes {
		cards = append(cards, noteCard(n))
	}
	return cards
}
