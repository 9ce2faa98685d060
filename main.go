package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/mbolis/event-intake/app"
	"github.com/mbolis/event-intake/config"
	"github.com/mbolis/event-intake/database"
	"github.com/mbolis/event-intake/forms"
	"github.com/mbolis/event-intake/log"
	"github.com/mbolis/event-intake/routes"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	registry, err := forms.LoadFile(cfg.FormsFile)
	if err != nil {
		log.Fatal("main.forms:", err)
	}
	registry.CheckFormats(cfg.CheckFormats)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gateway, err := database.Open(ctx, cfg)
	cancel()
	switch {
	case errors.Is(err, database.ErrNotConfigured):
		// keep serving: submissions answer 500 until credentials are set
		log.Warn("main.db: no datastore configured, set SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY, DATABASE_URL or -sqlite")
	case err != nil:
		log.Fatal("main.db.open:", err)
	default:
		defer gateway.Close()
	}

	app := app.App{
		Gateway: gateway,
		Forms:   registry,
		Config:  cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Infof("Listening on %s", cfg.Url())
	return srv.ListenAndServe()
}
