package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/justinas/nosurf"

	"css-layout-builder/web"
)

// routes sets up the HTTP router for the editor. Form routes are CSRF
// protected; the JSON API under /api is exempt.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Handle("/static/*", http.FileServer(http.FS(web.Static)))

	r.Get("/", app.editorHandler)
	r.Get("/preview", app.previewHandler)
	r.Get("/download/{part}", app.downloadHandler)

	r.Route("/editor", func(r chi.Router) {
		r.Post("/undo", app.undoHandler)
		r.Post("/redo", app.redoHandler)
		r.Post("/layout-type", app.layoutTypeHandler)
		r.Post("/preview-mode", app.previewModeHandler)
		r.Post("/flexbox", app.flexboxHandler)
		r.Post("/grid", app.gridHandler)

		r.Post("/flex-items", app.addFlexItemHandler)
		r.Post("/flex-items/{index}", app.updateFlexItemHandler)
		r.Post("/flex-items/{index}/remove", app.removeFlexItemHandler)
		r.Post("/flex-items/{index}/duplicate", app.duplicateFlexItemHandler)

		r.Post("/grid-items", app.addGridItemHandler)
		r.Post("/grid-items/{index}", app.updateGridItemHandler)
		r.Post("/grid-items/{index}/remove", app.removeGridItemHandler)
		r.Post("/grid-items/{index}/duplicate", app.duplicateGridItemHandler)

		r.Post("/templates/{templateID}/load", app.loadTemplateHandler)
	})

	r.Route("/library", func(r chi.Router) {
		r.Get("/", app.libraryHandler)
		r.Post("/save", app.saveLayoutHandler)
		r.Post("/{layoutID}/load", app.loadLayoutHandler)
		r.Post("/{layoutID}/rename", app.renameLayoutHandler)
		r.Post("/{layoutID}/delete", app.deleteLayoutHandler)
		r.Get("/{layoutID}/preview", app.savedPreviewHandler)
	})

	r.Route("/api", app.apiRoutes)

	csrf := nosurf.New(r)
	csrf.ExemptGlob("/api/*")
	csrf.SetBaseCookie(http.Cookie{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	csrf.SetFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.logger.Warn("CSRF check failed", "path", r.URL.Path, "reason", nosurf.Reason(r))
		http.Error(w, "Forbidden - invalid CSRF token", http.StatusForbidden)
	}))
	return csrf
}
