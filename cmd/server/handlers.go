package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"css-layout-builder/internal/editor"
	"css-layout-builder/internal/generator"
	"css-layout-builder/internal/layout"
	"css-layout-builder/internal/model"
)

// errBadRequest marks malformed input: unparsable forms, bodies or indexes.
var errBadRequest = errors.New("bad request")

// EditorPageData holds the page-specific data for editor.html.
type EditorPageData struct {
	Layout      model.Layout
	Code        generator.Code
	CanUndo     bool
	CanRedo     bool
	PreviewMode model.PreviewMode
	Templates   []model.Template
	Options     EditorOptions
}

// EditorOptions lists the choices offered by each select control.
type EditorOptions struct {
	LayoutTypes     []model.LayoutType
	FlexDisplays    []model.FlexDisplay
	FlexDirections  []model.FlexDirection
	JustifyContents []model.JustifyContent
	FlexAlignItems  []model.FlexAlignItems
	FlexWraps       []model.FlexWrap
	FlexAlignSelves []model.FlexAlignSelf
	GridDisplays    []model.GridDisplay
	GridAligns      []model.GridAlign
}

var editorOptions = EditorOptions{
	LayoutTypes:     model.LayoutTypes,
	FlexDisplays:    model.FlexDisplays,
	FlexDirections:  model.FlexDirections,
	JustifyContents: model.JustifyContents,
	FlexAlignItems:  model.FlexAlignItemsValues,
	FlexWraps:       model.FlexWraps,
	FlexAlignSelves: model.FlexAlignSelves,
	GridDisplays:    model.GridDisplays,
	GridAligns:      model.GridAligns,
}

// LibraryPageData holds the page-specific data for library.html.
type LibraryPageData struct {
	Layouts []*model.SavedLayout
}

func (app *application) render(w http.ResponseWriter, page string, data map[string]any) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.logger.Error("Template not found in cache", "template", page)
		http.Error(w, "Internal Server Error - Template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ts.ExecuteTemplate(w, "layout.html", data); err != nil {
		app.logger.Error("Error executing layout template", "template", page, "error", err)
	}
}

// redirect finishes a form post. A failed action is reported through the
// error query parameter of the target page.
func (app *application) redirect(w http.ResponseWriter, r *http.Request, target string, err error) {
	if err != nil {
		app.logger.Warn("Form action rejected", "path", r.URL.Path, "error", err)
		target += "?error=" + url.QueryEscape(userMessage(err))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func redirectNotice(w http.ResponseWriter, r *http.Request, target, notice string) {
	http.Redirect(w, r, target+"?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}

// userMessage hides internal failures from the page.
func userMessage(err error) string {
	if status := statusFor(err); status == http.StatusInternalServerError {
		return "Something went wrong, see the server log."
	}
	return err.Error()
}

// edit parses the form and runs fn against the session under the lock,
// then redirects back to the editor.
func (app *application) edit(w http.ResponseWriter, r *http.Request, fn func(s *editor.Session, form url.Values) error) {
	if err := r.ParseForm(); err != nil {
		app.redirect(w, r, "/", fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	app.mu.Lock()
	err := fn(app.session, r.PostForm)
	app.mu.Unlock()
	app.redirect(w, r, "/", err)
}

// --- form decoding ---

// formValue returns a pointer to the trimmed field value, or nil when the
// form did not carry the field.
func formValue[T ~string](form url.Values, key string) *T {
	if !form.Has(key) {
		return nil
	}
	v := T(strings.TrimSpace(form.Get(key)))
	return &v
}

func formInt(form url.Values, key string) (*int, error) {
	if !form.Has(key) {
		return nil, nil
	}
	raw := strings.TrimSpace(form.Get(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a whole number, got %q", editor.ErrInvalid, key, raw)
	}
	return &n, nil
}

func indexParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: item index %q", errBadRequest, raw)
	}
	return i, nil
}

func flexboxPatchFromForm(form url.Values) layout.FlexboxPatch {
	return layout.FlexboxPatch{
		Display:        formValue[model.FlexDisplay](form, "display"),
		FlexDirection:  formValue[model.FlexDirection](form, "flexDirection"),
		JustifyContent: formValue[model.JustifyContent](form, "justifyContent"),
		AlignItems:     formValue[model.FlexAlignItems](form, "alignItems"),
		FlexWrap:       formValue[model.FlexWrap](form, "flexWrap"),
		Gap:            formValue[string](form, "gap"),
	}
}

func gridPatchFromForm(form url.Values) layout.GridPatch {
	return layout.GridPatch{
		Display:             formValue[model.GridDisplay](form, "display"),
		GridTemplateColumns: formValue[string](form, "gridTemplateColumns"),
		GridTemplateRows:    formValue[string](form, "gridTemplateRows"),
		RowGap:              formValue[string](form, "rowGap"),
		ColumnGap:           formValue[string](form, "columnGap"),
		JustifyItems:        formValue[model.GridAlign](form, "justifyItems"),
		AlignItems:          formValue[model.GridAlign](form, "alignItems"),
	}
}

func flexItemPatchFromForm(form url.Values) (layout.FlexItemPatch, error) {
	p := layout.FlexItemPatch{
		FlexBasis: formValue[string](form, "flexBasis"),
		AlignSelf: formValue[model.FlexAlignSelf](form, "alignSelf"),
	}
	var err error
	if p.FlexGrow, err = formInt(form, "flexGrow"); err != nil {
		return p, err
	}
	if p.FlexShrink, err = formInt(form, "flexShrink"); err != nil {
		return p, err
	}
	if p.Order, err = formInt(form, "order"); err != nil {
		return p, err
	}
	return p, nil
}

func gridItemPatchFromForm(form url.Values) layout.GridItemPatch {
	return layout.GridItemPatch{
		GridColumnStart: formValue[string](form, "gridColumnStart"),
		GridColumnEnd:   formValue[string](form, "gridColumnEnd"),
		GridRowStart:    formValue[string](form, "gridRowStart"),
		GridRowEnd:      formValue[string](form, "gridRowEnd"),
		JustifySelf:     formValue[model.GridAlign](form, "justifySelf"),
		AlignSelf:       formValue[model.GridAlign](form, "alignSelf"),
	}
}

// --- pages ---

// editorHandler serves the editor page for the present layout.
func (app *application) editorHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	page := EditorPageData{
		Layout:      app.session.Present().Clone(),
		Code:        app.session.Code(),
		CanUndo:     app.session.CanUndo(),
		CanRedo:     app.session.CanRedo(),
		PreviewMode: app.session.PreviewMode(),
	}
	app.mu.Unlock()
	page.Templates = app.catalog.List()
	page.Options = editorOptions

	data := app.newTemplateData(r, "editor")
	data["Page"] = page
	app.render(w, "editor.html", data)
}

// previewHandler serves the standalone preview document shown in the
// editor's iframe.
func (app *application) previewHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	code := app.session.Code()
	mode := app.session.PreviewMode()
	app.mu.Unlock()

	if q := model.PreviewMode(r.URL.Query().Get("mode")); q.Valid() {
		mode = q
	}
	doc, err := app.preview.RenderDocument("Layout preview", code, mode)
	if err != nil {
		app.logger.Error("Error rendering preview", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}

// downloadHandler returns the generated markup or stylesheet as a file.
func (app *application) downloadHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	code := app.session.Code()
	t := app.session.Present().LayoutType
	app.mu.Unlock()

	htmlName, cssName := generator.FileNames(t)
	var name, contentType, body string
	switch chi.URLParam(r, "part") {
	case "html":
		name, contentType, body = htmlName, "text/html; charset=utf-8", code.HTML
	case "css":
		name, contentType, body = cssName, "text/css; charset=utf-8", code.CSS
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write([]byte(body))
	app.logger.Info("Served download", "file", name, "bytes", len(body))
}

// --- editor actions ---

func (app *application) undoHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, _ url.Values) error {
		s.Undo()
		return nil
	})
}

func (app *application) redoHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, _ url.Values) error {
		s.Redo()
		return nil
	})
}

func (app *application) layoutTypeHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, form url.Values) error {
		return s.SetLayoutType(model.LayoutType(form.Get("layoutType")))
	})
}

func (app *application) previewModeHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, form url.Values) error {
		return s.SetPreviewMode(model.PreviewMode(form.Get("mode")))
	})
}

func (app *application) flexboxHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, form url.Values) error {
		return s.UpdateFlexboxProps(flexboxPatchFromForm(form))
	})
}

func (app *application) gridHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, form url.Values) error {
		return s.UpdateGridProps(gridPatchFromForm(form))
	})
}

func (app *application) addFlexItemHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, _ url.Values) error {
		s.AddFlexItem()
		return nil
	})
}

func (app *application) updateFlexItemHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, form url.Values) error {
		i, err := indexParam(r)
		if err != nil {
			return err
		}
		p, err := flexItemPatchFromForm(form)
		if err != nil {
			return err
		}
		return s.UpdateFlexItem(i, p)
	})
}

func (app *application) removeFlexItemHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, _ url.Values) error {
		i, err := indexParam(r)
		if err != nil {
			return err
		}
		_, err = s.RemoveFlexItem(i)
		return err
	})
}

func (app *application) duplicateFlexItemHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, _ url.Values) error {
		i, err := indexParam(r)
		if err != nil {
			return err
		}
		return s.DuplicateFlexItem(i)
	})
}

func (app *application) addGridItemHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, _ url.Values) error {
		s.AddGridItem()
		return nil
	})
}

func (app *application) updateGridItemHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, form url.Values) error {
		i, err := indexParam(r)
		if err != nil {
			return err
		}
		return s.UpdateGridItem(i, gridItemPatchFromForm(form))
	})
}

func (app *application) removeGridItemHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, _ url.Values) error {
		i, err := indexParam(r)
		if err != nil {
			return err
		}
		_, err = s.RemoveGridItem(i)
		return err
	})
}

func (app *application) duplicateGridItemHandler(w http.ResponseWriter, r *http.Request) {
	app.edit(w, r, func(s *editor.Session, _ url.Values) error {
		i, err := indexParam(r)
		if err != nil {
			return err
		}
		return s.DuplicateGridItem(i)
	})
}

func (app *application) loadTemplateHandler(w http.ResponseWriter, r *http.Request) {
	tpl, err := app.catalog.Get(chi.URLParam(r, "templateID"))
	if err != nil {
		app.redirect(w, r, "/", err)
		return
	}
	app.edit(w, r, func(s *editor.Session, _ url.Values) error {
		return s.LoadTemplate(tpl)
	})
}

// --- library ---

// libraryHandler lists the saved layouts.
func (app *application) libraryHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r, "library")

	layouts, err := app.library.List()
	if err != nil {
		data["Error"] = "Failed to load saved layouts."
	}
	data["Page"] = LibraryPageData{Layouts: layouts}
	app.render(w, "library.html", data)
}

func (app *application) saveLayoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.redirect(w, r, "/", fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	app.mu.Lock()
	state := app.session.Present().Clone()
	app.mu.Unlock()

	saved, err := app.library.Save(r.PostForm.Get("name"), state)
	if err != nil {
		app.redirect(w, r, "/", err)
		return
	}
	redirectNotice(w, r, "/library", fmt.Sprintf("Saved %q.", saved.Name))
}

func (app *application) loadLayoutHandler(w http.ResponseWriter, r *http.Request) {
	saved, err := app.library.Get(chi.URLParam(r, "layoutID"))
	if err != nil {
		app.redirect(w, r, "/library", err)
		return
	}
	app.edit(w, r, func(s *editor.Session, _ url.Values) error {
		return s.LoadLayout(*saved)
	})
}

func (app *application) renameLayoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.redirect(w, r, "/library", fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	_, err := app.library.Rename(chi.URLParam(r, "layoutID"), r.PostForm.Get("name"))
	app.redirect(w, r, "/library", err)
}

func (app *application) deleteLayoutHandler(w http.ResponseWriter, r *http.Request) {
	err := app.library.Delete(chi.URLParam(r, "layoutID"))
	app.redirect(w, r, "/library", err)
}

// savedPreviewHandler renders a saved layout without loading it into the
// editor.
func (app *application) savedPreviewHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "layoutID")
	doc, err := app.preview.RenderSaved(id, model.PreviewMode(r.URL.Query().Get("mode")))
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			app.logger.Error("Error rendering saved layout preview", "layoutID", id, "error", err)
		}
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}
