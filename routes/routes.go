package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/mbolis/event-intake/app"
	"github.com/mbolis/event-intake/log"
	"github.com/mbolis/event-intake/metrics"
	"github.com/mbolis/event-intake/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(
		middleware.RealIP,
		middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.Logger, NoColor: true}),
		middleware.Recoverer,
	)

	root.Mount("/api", apiRouter(app))
	root.Method(http.MethodGet, "/metrics", metrics.Handler())
	root.Mount("/", servePublicFiles(app.PublicDir))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()
	api.Use(middlewares.MaxBody(app.MaxBodyBytes))

	api.With(middlewares.CORS("GET, POST, OPTIONS")).HandleFunc("/test", Diagnostics(app))
	api.With(middlewares.CORS("GET")).HandleFunc("/health", Health(app))

	// every method reaches the form handler so preflight and 405 are
	// answered in the envelope format
	submit := make(map[string]http.HandlerFunc, len(app.Forms.All()))
	for _, form := range app.Forms.All() {
		submit[form.Name] = SubmitForm(app, form)
	}
	api.With(middlewares.CORS("POST, OPTIONS")).HandleFunc("/{form}", func(w http.ResponseWriter, r *http.Request) {
		form, ok := app.Forms.Get(chi.URLParam(r, "form"))
		if !ok {
			notFound(w, r)
			return
		}
		submit[form.Name](w, r)
	})

	api.NotFound(notFound)

	return api
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, map[string]string{"error": "Not found"})
}
