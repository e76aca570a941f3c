// ABOUTME: HTTP server wiring for the chatbot: routes, templates, dependencies
// ABOUTME: Handlers live in handlers.go; this file owns construction and routing
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/heulosofia/chatbot/internal/bot"
	"github.com/heulosofia/chatbot/internal/chunker"
	"github.com/heulosofia/chatbot/internal/config"
	"github.com/heulosofia/chatbot/internal/index"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server holds the request handlers' dependencies. Everything is injected;
// there is no package-level state.
type Server struct {
	cfg       *config.Config
	bot       *bot.Bot
	index     *index.Index
	splitter  *chunker.Splitter
	codec     *sessionCodec
	templates *template.Template

	seqMu   sync.Mutex
	nextSeq int // sequence index for the next uploaded document
}

// NewServer builds the HTTP surface. nextSeq continues the document
// sequence where startup ingestion stopped.
func NewServer(cfg *config.Config, b *bot.Bot, ix *index.Index, splitter *chunker.Splitter, nextSeq int) (*Server, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	if nextSeq < 1 {
		nextSeq = 1
	}
	return &Server{
		cfg:       cfg,
		bot:       b,
		index:     ix,
		splitter:  splitter,
		codec:     newSessionCodec(cfg.SessionSecret),
		templates: templates,
		nextSeq:   nextSeq,
	}, nil
}

// Routes returns the handler with all endpoints registered.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/contact", s.handleContact)
	mux.HandleFunc("POST /api/clear-history", s.handleClearHistory)

	mux.HandleFunc("GET /{$}", s.handlePage("index.html"))
	mux.HandleFunc("GET /chat", s.handlePage("chat.html"))

	return mux
}

func (s *Server) handlePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.templates.ExecuteTemplate(w, name, nil); err != nil {
			log.Printf("web: rendering %s: %v", name, err)
		}
	}
}

func (s *Server) takeSeq() int {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	seq := s.nextSeq
	s.nextSeq++
	return seq
}
