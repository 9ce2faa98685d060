package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/go-chi/render"
)

// servePublicFiles serves the static site from dir. Pages can be linked
// without their .html extension.
func servePublicFiles(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if name == "/" {
			name = "/index.html"
		}

		for _, candidate := range []string{name, name + ".html"} {
			full := filepath.Join(dir, filepath.FromSlash(candidate))
			if info, err := os.Stat(full); err == nil && !info.IsDir() {
				http.ServeFile(w, r, full)
				return
			}
		}

		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "Not found"})
	})
}
