package web

import (
	"net/http"

	"gnote/internal/config"
	"gnote/internal/store"
)

type Server struct {
	cfg   config.Config
	store *store.Store
	mux   *http.ServeMux
	outer *http.ServeMux
	views *Templates
}

func NewServer(cfg config.Config, st *store.Store) *Server {
	s := &Server{
		cfg:   cfg,
		store: st,
		mux:   http.NewServeMux(),
		outer: http.NewServeMux(),
		views: MustParseTemplates(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.outer
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/search", s.handleSearch)
	s.mux.HandleFunc("/notes/new", s.handleNewNote)
	s.mux.HandleFunc("/notes/", s.handleNotes)

	// Registration must stay reachable without credentials.
	s.outer.HandleFunc("/register", s.handleRegister)
	s.outer.Handle("/", s.requireAuth(s.mux))
}
