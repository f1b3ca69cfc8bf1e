package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/editor"
	"github.com/Zachkp/portfolio/internal/identity"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/media"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/rs/zerolog"
)

func main() {
	cfg, warnings, err := config.Load()
	if err != nil {
		boot := logger.New(config.EnvDevelopment, "info")
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Primary.Env, cfg.Primary.LogLevel)
	for _, w := range warnings {
		log.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create data directory")
	}
	db, err := store.Open(ctx, cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("failed to open store")
	}
	defer db.Close()

	uploader, err := newUploader(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up media uploads")
	}

	repo := content.NewRepository(db)
	sections := content.NewSections(repo, &log)

	srv, err := server.New(server.Deps{
		Config:    cfg,
		Logger:    &log,
		Repo:      repo,
		Sections:  sections,
		Editors:   editor.NewSet(repo, uploader, &log),
		Scheduler: contact.NewScheduler(sections, &log),
		Auth:      identity.NewAuthenticator(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.SessionSecret, cfg.Admin.SessionTTL),
		Store:     db,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	logEmailStatus(&log)
	log.Info().Msg("admin access available at /admin/login")

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func newUploader(cfg *config.Config) (media.Uploader, error) {
	if cfg.Media.Provider == "cloudinary" {
		m := cfg.Media
		return media.NewCloudinary(m.CloudName, m.APIKey, m.APISecret, m.UploadPreset, "", m.MaxUploadBytes, m.Timeout)
	}
	return media.NewLocal(cfg.Media.LocalDir, cfg.Media.PublicPath, cfg.Media.MaxUploadBytes)
}

// logEmailStatus reports at startup whether the contact form can send mail.
// The settings are read again on every request.
func logEmailStatus(log *zerolog.Logger) {
	email, err := config.LoadEmail()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read email configuration")
		return
	}
	if missing := email.Missing(); len(missing) > 0 {
		log.Warn().Strs("missing", missing).Msg("contact form email is not configured")
		return
	}
	log.Info().Str("provider", email.Provider).Msg("contact form email configured")
}
