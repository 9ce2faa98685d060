package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/mbolis/event-intake/app"
	"github.com/mbolis/event-intake/log"
	"github.com/mbolis/event-intake/model"
)

// Health reports whether the datastore is reachable and holds the table of
// every declared form. It answers 200 even when
// the datastore is not, so uptime probes only track the process itself.
func Health(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			render.Status(r, http.StatusMethodNotAllowed)
			render.JSON(w, r, model.Health{Status: "method_not_allowed"})
			return
		}

		if app.Gateway == nil {
			render.JSON(w, r, model.Health{Status: "healthy", Database: "env_missing"})
			return
		}

		// every declared table is read, nothing is written
		var failures []string
		seen := map[string]bool{}
		for _, form := range app.Forms.All() {
			if seen[form.Table] {
				continue
			}
			seen[form.Table] = true
			if err := app.Gateway.Ping(r.Context(), form.Table); err != nil {
				log.Warnf("health.ping.%s: %s", form.Table, err)
				failures = append(failures, form.Table+": "+err.Error())
			}
		}
		if len(failures) > 0 {
			render.JSON(w, r, model.Health{
				Status:   "healthy",
				Database: "connected_but_table_missing",
				Error:    strings.Join(failures, "; "),
			})
			return
		}

		render.JSON(w, r, model.Health{Status: "healthy", Database: "connected"})
	}
}

// Diagnostics echoes the request and tells which credentials are present,
// without revealing them.
func Diagnostics(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		render.JSON(w, r, model.Diagnostics{
			Success:   true,
			Message:   "API is working!",
			Method:    r.Method,
			URL:       r.URL.RequestURI(),
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			EnvCheck: map[string]string{
				"supabase_url":         presence(app.SupabaseURL),
				"supabase_key":         presence(app.SupabaseKey),
				"supabase_service_key": presence(app.SupabaseServiceKey),
				"database_url":         presence(app.DatabaseURL),
				"sqlite":               presence(app.SQLitePath),
			},
		})
	}
}

func presence(v string) string {
	if v == "" {
		return "missing"
	}
	return "configured"
}
