package web

import (
	"log/slog"
	"net/http"
	"strings"

	"gnote/internal/errs"
	"gnote/internal/store"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	user, ok := CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	notes, err := s.store.ListNotes(r.Context(), user.ID, category, s.cfg.ListLimit)
	if err != nil {
		s.renderError(w, err)
		return
	}
	categories, err := s.store.ListCategories(r.Context(), user.ID)
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.views.RenderPage(w, ViewData{
		Title:           "Notes",
		ContentTemplate: "home",
		UserName:        user.Name,
		Notes:           noteCards(notes),
		Categories:      categories,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))

	var (
		notes []store.NoteView
		err   error
	)
	switch {
	case tag != "":
		notes, err = s.store.NotesByTag(r.Context(), user.ID, tag)
	case query != "":
		notes, err = s.store.SearchNotes(r.Context(), user.ID, query)
	}
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.views.RenderPage(w, ViewData{
		Title:           "Search",
		ContentTemplate: "search",
		UserName:        user.Name,
		SearchQuery:     query,
		Notes:           noteCards(notes),
	})
}

func (s *Server) handleNewNote(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method == http.MethodGet {
		s.views.RenderPage(w, ViewData{
			Title:           "New note",
			ContentTemplate: "new",
			UserName:        user.Name,
		})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.Form.Get("title"))
	content := r.Form.Get("content")
	if title == "" || strings.TrimSpace(content) == "" {
		http.Error(w, "title and content required", http.StatusBadRequest)
		return
	}

	id, err := s.store.CreateNote(r.Context(), title, content,
		r.Form.Get("category"), r.Form.Get("tags"), user.ID)
	if err != nil {
		s.renderError(w, err)
		return
	}
	slog.Info("note created", "id", id, "user", user.Name)

	http.Redirect(w, r, "/notes/"+id, http.StatusSeeOther)
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	idPart := strings.TrimPrefix(r.URL.Path, "/notes/")
	idPart = strings.TrimSuffix(idPart, "/")
	if idPart == "" {
		http.NotFound(w, r)
		return
	}
	if strings.HasSuffix(idPart, "/edit") {
		s.handleEditNote(w, r, strings.TrimSuffix(idPart, "/edit"))
		return
	}
	if strings.HasSuffix(idPart, "/delete") {
		s.handleDeleteNote(w, r, strings.TrimSuffix(idPart, "/delete"))
		return
	}
	s.handleViewNote(w, r, idPart)
}

func (s *Server) handleViewNote(w http.ResponseWriter, r *http.Request, noteID string) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	note, err := s.store.Note(r.Context(), noteID, user.ID)
	if err != nil {
		s.renderError(w, err)
		return
	}
	card := noteCard(note)
	s.views.RenderPage(w, ViewData{
		Title:           note.Title,
		ContentTemplate: "note",
		UserName:        user.Name,
		Note:            &card,
	})
}

func (s *Server) handleEditNote(w http.ResponseWriter, r *http.Request, noteID string) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	note, err := s.store.Note(r.Context(), noteID, user.ID)
	if err != nil {
		s.renderError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		card := noteCard(note)
		s.views.RenderPage(w, ViewData{
			Title:           "Edit " + note.Title,
			ContentTemplate: "edit",
			UserName:        user.Name,
			Note:            &card,
			FormTitle:       note.Title,
			FormContent:     note.Content,
			FormCategory:    note.Category,
			FormTags:        note.Tags,
		})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.Form.Get("title"))
	content := r.Form.Get("content")
	if title == "" || strings.TrimSpace(content) == "" {
		http.Error(w, "title and content required", http.StatusBadRequest)
		return
	}

	err = s.store.UpdateNote(r.Context(), noteID, title, content,
		r.Form.Get("category"), r.Form.Get("tags"), user.ID)
	if err != nil {
		s.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/notes/"+noteID, http.StatusSeeOther)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request, noteID string) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.store.DeleteNote(r.Context(), noteID, user.ID); err != nil {
		s.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.views.RenderPage(w, ViewData{
			Title:           "Register",
			ContentTemplate: "register",
		})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err := s.store.CreateUser(r.Context(),
		r.Form.Get("username"), r.Form.Get("email"), r.Form.Get("password"))
	if err != nil {
		s.views.RenderPage(w, ViewData{
			Title:           "Register",
			ContentTemplate: "register",
			Error:           errs.MessageOf(err),
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(errs.CodeOf(err))
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	http.Error(w, errs.MessageOf(err), status)
}
