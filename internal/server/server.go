// Package server exposes the clone workflow over HTTP: paste a form URL,
// fill out the rebuilt clone, download the answers as a workbook.
package server

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-formclone/internal/config"
	"github.com/goliatone/go-formclone/pkg/orchestrator"
	"github.com/goliatone/go-formclone/pkg/render/template/pongo"
	"github.com/goliatone/go-formclone/pkg/renderers/vanilla"
	"github.com/goliatone/go-formclone/pkg/source"
	"github.com/goliatone/go-formclone/pkg/store"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Server wires the pipeline, the model store, and the HTTP handlers.
type Server struct {
	orch     *orchestrator.Orchestrator
	renderer *vanilla.Renderer
	store    store.Store
	pages    *pongo.Engine
	logger   *zap.Logger
	router   chi.Router
}

// New constructs the server from configuration.
func New(cfg config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loaderOptions := []source.LoaderOption{
		source.WithRequestTimeout(cfg.FetchTimeout),
		source.WithUserAgent(cfg.UserAgent),
	}

	renderer, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("server: construct renderer: %w", err)
	}

	pagesFS, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("server: template bundle: %w", err)
	}
	pages, err := pongo.New(pongo.WithFS(pagesFS))
	if err != nil {
		return nil, fmt.Errorf("server: construct page engine: %w", err)
	}

	s := &Server{
		orch:     orchestrator.New(orchestrator.WithLoaderOptions(loaderOptions...)),
		renderer: renderer,
		store:    store.NewMemory(store.WithTTL(cfg.StoreTTL)),
		pages:    pages,
		logger:   logger,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Get("/", s.handleIndex)
	router.Post("/", s.handleClone)
	router.Post("/submit/{key}", s.handleSubmit)
	s.router = router

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
