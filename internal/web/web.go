// Package web serves the embedded browser frontend.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var staticFS embed.FS

// Routes mounts the frontend at / and its assets at /static/.
func Routes(router *chi.Mux) error {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}

	fileServer := http.FileServer(http.FS(sub))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, sub, "index.html")
	})
	router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	return nil
}
