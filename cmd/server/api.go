package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"css-layout-builder/internal/catalog"
	"css-layout-builder/internal/editor"
	"css-layout-builder/internal/layout"
	"css-layout-builder/internal/library"
	"css-layout-builder/internal/model"
	"css-layout-builder/internal/storage"
)

const maxBodyBytes = 1 << 20

// StateResponse is returned by every API call that reads or changes the
// editor session.
type StateResponse struct {
	State       model.Layout      `json:"state"`
	PreviewMode model.PreviewMode `json:"previewMode"`
	CanUndo     bool              `json:"canUndo"`
	CanRedo     bool              `json:"canRedo"`
	Removed     *bool             `json:"removed,omitempty"`
}

// HistoryResponse describes the depth of the undo timeline.
type HistoryResponse struct {
	Past    int  `json:"past"`
	Future  int  `json:"future"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

type layoutTypeRequest struct {
	LayoutType model.LayoutType `json:"layoutType"`
}

type previewModeRequest struct {
	Mode model.PreviewMode `json:"mode"`
}

type nameRequest struct {
	Name string `json:"name"`
}

func (app *application) apiRoutes(r chi.Router) {
	r.Get("/state", app.apiState)
	r.Get("/code", app.apiCode)
	r.Get("/preview", app.previewHandler)
	r.Get("/history", app.apiHistory)

	r.Post("/undo", app.apiUndo)
	r.Post("/redo", app.apiRedo)
	r.Put("/layout-type", app.apiSetLayoutType)
	r.Put("/preview-mode", app.apiSetPreviewMode)
	r.Patch("/flexbox", app.apiUpdateFlexbox)
	r.Patch("/grid", app.apiUpdateGrid)

	r.Post("/flex-items", app.apiAddFlexItem)
	r.Patch("/flex-items/{index}", app.apiUpdateFlexItem)
	r.Delete("/flex-items/{index}", app.apiRemoveFlexItem)
	r.Post("/flex-items/{index}/duplicate", app.apiDuplicateFlexItem)

	r.Post("/grid-items", app.apiAddGridItem)
	r.Patch("/grid-items/{index}", app.apiUpdateGridItem)
	r.Delete("/grid-items/{index}", app.apiRemoveGridItem)
	r.Post("/grid-items/{index}/duplicate", app.apiDuplicateGridItem)

	r.Get("/templates", app.apiListTemplates)
	r.Post("/templates/{templateID}/load", app.apiLoadTemplate)

	r.Get("/saved", app.apiListSaved)
	r.Post("/saved", app.apiSaveLayout)
	r.Post("/saved/{layoutID}/load", app.apiLoadSaved)
	r.Patch("/saved/{layoutID}", app.apiRenameSaved)
	r.Delete("/saved/{layoutID}", app.apiDeleteSaved)
}

// --- helpers ---

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, editor.ErrInvalid),
		errors.Is(err, library.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, layout.ErrIndexOutOfRange),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, catalog.ErrUnknownTemplate):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (app *application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.Error("Error encoding JSON response", "error", err)
	}
}

func (app *application) apiError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		app.logger.Error("API request failed", "path", r.URL.Path, "error", err)
		msg = http.StatusText(status)
	} else {
		app.logger.Debug("API request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	app.writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes a single JSON object from the request body. Unknown
// fields are rejected.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON object", errBadRequest)
	}
	return nil
}

// stateLocked builds a StateResponse; the caller holds app.mu.
func (app *application) stateLocked() StateResponse {
	return StateResponse{
		State:       app.session.Present().Clone(),
		PreviewMode: app.session.PreviewMode(),
		CanUndo:     app.session.CanUndo(),
		CanRedo:     app.session.CanRedo(),
	}
}

// mutate runs fn under the session lock and answers with the resulting
// state.
func (app *application) mutate(w http.ResponseWriter, r *http.Request, fn func(s *editor.Session) error) {
	app.mu.Lock()
	err := fn(app.session)
	resp := app.stateLocked()
	app.mu.Unlock()

	if err != nil {
		app.apiError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, resp)
}

// mutateJSON decodes the body into a T before calling fn.
func mutateJSON[T any](app *application, w http.ResponseWriter, r *http.Request, fn func(s *editor.Session, body T) error) {
	var body T
	if err := readJSON(w, r, &body); err != nil {
		app.apiError(w, r, err)
		return
	}
	app.mutate(w, r, func(s *editor.Session) error { return fn(s, body) })
}

// --- session ---

func (app *application) apiState(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	resp := app.stateLocked()
	app.mu.Unlock()
	app.writeJSON(w, http.StatusOK, resp)
}

func (app *application) apiCode(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	code := app.session.Code()
	app.mu.Unlock()

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, code.Combined())
		return
	}
	app.writeJSON(w, http.StatusOK, code)
}

func (app *application) apiHistory(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	snap := app.session.History()
	app.mu.Unlock()

	app.writeJSON(w, http.StatusOK, HistoryResponse{
		Past:    len(snap.Past),
		Future:  len(snap.Future),
		CanUndo: len(snap.Past) > 0,
		CanRedo: len(snap.Future) > 0,
	})
}

func (app *application) apiUndo(w http.ResponseWriter, r *http.Request) {
	app.mutate(w, r, func(s *editor.Session) error {
		s.Undo()
		return nil
	})
}

func (app *application) apiRedo(w http.ResponseWriter, r *http.Request) {
	app.mutate(w, r, func(s *editor.Session) error {
		s.Redo()
		return nil
	})
}

func (app *application) apiSetLayoutType(w http.ResponseWriter, r *http.Request) {
	mutateJSON(app, w, r, func(s *editor.Session, body layoutTypeRequest) error {
		return s.SetLayoutType(body.LayoutType)
	})
}

func (app *application) apiSetPreviewMode(w http.ResponseWriter, r *http.Request) {
	mutateJSON(app, w, r, func(s *editor.Session, body previewModeRequest) error {
		return s.SetPreviewMode(body.Mode)
	})
}

func (app *application) apiUpdateFlexbox(w http.ResponseWriter, r *http.Request) {
	mutateJSON(app, w, r, func(s *editor.Session, p layout.FlexboxPatch) error {
		return s.UpdateFlexboxProps(p)
	})
}

func (app *application) apiUpdateGrid(w http.ResponseWriter, r *http.Request) {
	mutateJSON(app, w, r, func(s *editor.Session, p layout.GridPatch) error {
		return s.UpdateGridProps(p)
	})
}

// --- items ---

func (app *application) apiAddFlexItem(w http.ResponseWriter, r *http.Request) {
	app.mutate(w, r, func(s *editor.Session) error {
		s.AddFlexItem()
		return nil
	})
}

func (app *application) apiUpdateFlexItem(w http.ResponseWriter, r *http.Request) {
	i, err := indexParam(r)
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	mutateJSON(app, w, r, func(s *editor.Session, p layout.FlexItemPatch) error {
		return s.UpdateFlexItem(i, p)
	})
}

func (app *application) apiRemoveFlexItem(w http.ResponseWriter, r *http.Request) {
	app.removeItem(w, r, (*editor.Session).RemoveFlexItem)
}

func (app *application) apiDuplicateFlexItem(w http.ResponseWriter, r *http.Request) {
	i, err := indexParam(r)
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	app.mutate(w, r, func(s *editor.Session) error { return s.DuplicateFlexItem(i) })
}

func (app *application) apiAddGridItem(w http.ResponseWriter, r *http.Request) {
	app.mutate(w, r, func(s *editor.Session) error {
		s.AddGridItem()
		return nil
	})
}

func (app *application) apiUpdateGridItem(w http.ResponseWriter, r *http.Request) {
	i, err := indexParam(r)
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	mutateJSON(app, w, r, func(s *editor.Session, p layout.GridItemPatch) error {
		return s.UpdateGridItem(i, p)
	})
}

func (app *application) apiRemoveGridItem(w http.ResponseWriter, r *http.Request) {
	app.removeItem(w, r, (*editor.Session).RemoveGridItem)
}

func (app *application) apiDuplicateGridItem(w http.ResponseWriter, r *http.Request) {
	i, err := indexParam(r)
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	app.mutate(w, r, func(s *editor.Session) error { return s.DuplicateGridItem(i) })
}

// removeItem answers with the state plus whether an item was removed; the
// last item of a sequence is kept.
func (app *application) removeItem(w http.ResponseWriter, r *http.Request, remove func(*editor.Session, int) (bool, error)) {
	i, err := indexParam(r)
	if err != nil {
		app.apiError(w, r, err)
		return
	}

	app.mu.Lock()
	removed, err := remove(app.session, i)
	resp := app.stateLocked()
	app.mu.Unlock()

	if err != nil {
		app.apiError(w, r, err)
		return
	}
	resp.Removed = &removed
	app.writeJSON(w, http.StatusOK, resp)
}

// --- templates ---

func (app *application) apiListTemplates(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, app.catalog.List())
}

func (app *application) apiLoadTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := app.catalog.Get(chi.URLParam(r, "templateID"))
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	app.mutate(w, r, func(s *editor.Session) error { return s.LoadTemplate(tpl) })
}

// --- saved layouts ---

func (app *application) apiListSaved(w http.ResponseWriter, r *http.Request) {
	layouts, err := app.library.List()
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	if layouts == nil {
		layouts = []*model.SavedLayout{}
	}
	app.writeJSON(w, http.StatusOK, layouts)
}

func (app *application) apiSaveLayout(w http.ResponseWriter, r *http.Request) {
	var body nameRequest
	if err := readJSON(w, r, &body); err != nil {
		app.apiError(w, r, err)
		return
	}

	app.mu.Lock()
	state := app.session.Present().Clone()
	app.mu.Unlock()

	saved, err := app.library.Save(body.Name, state)
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, saved)
}

func (app *application) apiLoadSaved(w http.ResponseWriter, r *http.Request) {
	saved, err := app.library.Get(chi.URLParam(r, "layoutID"))
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	app.mutate(w, r, func(s *editor.Session) error { return s.LoadLayout(*saved) })
}

func (app *application) apiRenameSaved(w http.ResponseWriter, r *http.Request) {
	var body nameRequest
	if err := readJSON(w, r, &body); err != nil {
		app.apiError(w, r, err)
		return
	}
	saved, err := app.library.Rename(chi.URLParam(r, "layoutID"), body.Name)
	if err != nil {
		app.apiError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, saved)
}

func (app *application) apiDeleteSaved(w http.ResponseWriter, r *http.Request) {
	if err := app.library.Delete(chi.URLParam(r, "layoutID")); err != nil {
		app.apiError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
