// Package server hosts the example forms over HTTP. Form state travels in
// the request: every POST carries the page index and all values, so the
// server keeps no sessions.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-formalise/internal/log"
	"github.com/goliatone/go-formalise/pkg/gallery"
	"github.com/goliatone/go-formalise/pkg/model"
	pkgopenapi "github.com/goliatone/go-formalise/pkg/openapi"
	"github.com/goliatone/go-formalise/pkg/renderers/vanilla"
	"github.com/goliatone/go-formalise/pkg/site"
	"github.com/goliatone/go-formalise/pkg/submission"
	"github.com/goliatone/go-formalise/pkg/validation"
)

// SiteSource provides the current site configuration. *site.Holder
// implements it.
type SiteSource interface {
	Snapshot() site.Snapshot
}

type staticSite site.Snapshot

func (s staticSite) Snapshot() site.Snapshot { return site.Snapshot(s) }

// Config is the configuration of the server.
type Config struct {
	Forms      []model.Form
	Renderer   *vanilla.Renderer
	Site       SiteSource
	Store      submission.Store
	Logger     log.Logger
	RateLimit  RateLimitConfig
	BcryptCost int
	Now        func() time.Time
}

func (c *Config) defaults() error {
	if len(c.Forms) == 0 {
		c.Forms = gallery.Forms()
	}
	if c.Renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return err
		}
		c.Renderer = renderer
	}
	if c.Site == nil {
		snapshot, err := site.Resolve(site.Default())
		if err != nil {
			return err
		}
		c.Site = staticSite(snapshot)
	}
	if c.Store == nil {
		c.Store = submission.NewMemoryStore()
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "server.HTTP"})
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return nil
}

// Server serves the site and the example forms.
type Server struct {
	forms     map[string]model.Form
	order     []string
	renderer  *vanilla.Renderer
	site      SiteSource
	store     submission.Store
	recorder  *submission.Recorder
	validator *validation.SchemaValidator
	logger    log.Logger
	openapi   []byte
	now       func() time.Time
	handler   http.Handler
}

// New validates every form and builds the routes.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Server{
		forms:     make(map[string]model.Form, len(cfg.Forms)),
		renderer:  cfg.Renderer,
		site:      cfg.Site,
		store:     cfg.Store,
		validator: validation.NewSchemaValidator(cfg.Forms...),
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
	s.recorder = submission.NewRecorder(cfg.Store, submission.WithCost(cfg.BcryptCost), submission.WithClock(cfg.Now))

	for _, def := range cfg.Forms {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.forms[def.ID]; dup {
			return nil, fmt.Errorf("form %q registered twice", def.ID)
		}
		s.forms[def.ID] = def
		s.order = append(s.order, def.ID)
	}

	doc, err := pkgopenapi.Document(ctx, pkgopenapi.Info{Title: "Formalise examples"}, cfg.Forms...)
	if err != nil {
		return nil, err
	}
	if s.openapi, err = json.MarshalIndent(doc, "", "  "); err != nil {
		return nil, fmt.Errorf("could not encode openapi document: %w", err)
	}

	s.handler = s.routes(cfg.RateLimit)
	return s, nil
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes(limits RateLimitConfig) http.Handler {
	limit := RateLimitMiddleware(limits, s.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.HandleFunc("GET /examples/{id}", s.handleExample)
	mux.Handle("POST /examples/{id}", limit(http.HandlerFunc(s.handleExamplePost)))
	mux.Handle("POST /examples/{id}/submissions", limit(http.HandlerFunc(s.handleSubmissionAPI)))
	mux.HandleFunc("GET /submissions/{id}", s.handleSubmission)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))

	return ApplyMiddlewares(mux,
		RequestIDMiddleware(),
		LoggingMiddleware(s.logger),
	)
}
