// Package app wires configuration, persistence and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/audit"
	"github.com/crocobrasseur/website/internal/config"
	"github.com/crocobrasseur/website/internal/db"
	webhttp "github.com/crocobrasseur/website/internal/http"
	"github.com/crocobrasseur/website/internal/http/api/admin"
	"github.com/crocobrasseur/website/internal/http/api/public"
	"github.com/crocobrasseur/website/internal/logging"
	"github.com/crocobrasseur/website/internal/mail"
	"github.com/crocobrasseur/website/internal/upload"
)

// Migrate opens the database described by the config at configPath and
// runs migrations, without starting the server.
func Migrate(ctx context.Context, configPath string) error {
	cfg, errLoad := config.Load(configPath)
	if errLoad != nil {
		return errLoad
	}
	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return errOpen
	}
	return db.Migrate(conn)
}

// RunServer boots the site backend and blocks until ctx is cancelled or
// the listener fails.
func RunServer(ctx context.Context, configPath string) error {
	cfg, errLoad := config.Load(configPath)
	if errLoad != nil {
		return errLoad
	}
	logging.Setup(cfg.Logging)

	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errSeed := db.SeedDefaultAdmin(conn, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, cfg.Seed.AdminEmail); errSeed != nil {
		return errSeed
	}

	engine := buildEngine(conn, cfg)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return fmt.Errorf("shutdown: %w", errShutdown)
		}
		log.Info("server stopped")
		return nil
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}

func buildEngine(conn *gorm.DB, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), webhttp.RequestLogger())
	engine.MaxMultipartMemory = 32 << 20

	store := upload.NewStore(cfg.Uploads.Dir, cfg.Uploads.PublicBase)
	recorder := audit.NewRecorder(conn)
	sender := mail.NewSender(cfg.SMTP)

	admin.RegisterRoutes(engine, conn, cfg.JWT.Secret, store, recorder)
	public.RegisterRoutes(engine, conn, cfg, sender)
	return engine
}
