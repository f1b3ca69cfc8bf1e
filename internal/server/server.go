// Package server is the HTTP surface of the portfolio: the public page with
// its HTMX section fragments, the contact form, and the hidden admin page.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/editor"
	"github.com/Zachkp/portfolio/internal/identity"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the handlers call.
type Deps struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Repo      *content.Repository
	Sections  *content.Sections
	Editors   *editor.Set
	Scheduler *contact.Scheduler
	Auth      *identity.Authenticator
	Store     Pinger
}

type Server struct {
	Deps
	engine     *gin.Engine
	httpServer *http.Server
	salt       string
}

func New(deps Deps) (*Server, error) {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	s := &Server{Deps: deps, engine: gin.New(), salt: newSalt()}
	s.engine.SetHTMLTemplate(tmpl)
	s.engine.Use(requestID(), requestLogger(deps.Logger), gin.Recovery())
	s.engine.StaticFS("/static", http.FS(static))
	if deps.Config.Media.Provider == "local" {
		s.engine.Static(deps.Config.Media.PublicPath, deps.Config.Media.LocalDir)
	}
	s.engine.MaxMultipartMemory = deps.Config.Media.MaxUploadBytes

	s.setupPublicRoutes()
	s.setupAdminRoutes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      s.engine,
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
		IdleTimeout:  s.Config.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info().
			Str("port", s.Config.Server.Port).
			Str("env", s.Config.Primary.Env).
			Msg("starting server")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	s.Logger.Info().Msg("server stopped")
	return nil
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"year": func() int { return time.Now().Year() },
}
