// Package editor ties the layout helpers to an undo history. A Session is
// the single owner of one editing timeline; every mutating method turns the
// present layout into a new one and commits it as one undo step.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"css-layout-builder/internal/generator"
	"css-layout-builder/internal/history"
	"css-layout-builder/internal/idgen"
	"css-layout-builder/internal/layout"
	"css-layout-builder/internal/model"
)

// ErrInvalid marks a rejected change: an unknown keyword, a negative
// grow/shrink factor or a layout that fails validation.
var ErrInvalid = errors.New("invalid change")

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

// Session is not safe for concurrent use. Callers sharing one across
// goroutines must serialise access.
type Session struct {
	hist    *history.Store[model.Layout]
	ids     idgen.Generator
	logger  *slog.Logger
	preview model.PreviewMode
}

// NewSession starts a timeline at model.DefaultLayout. A nil ids falls back
// to idgen.Default and a nil logger discards output.
func NewSession(logger *slog.Logger, ids idgen.Generator, opts ...history.Option) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ids = idgen.OrDefault(ids)
	return &Session{
		hist:    history.New(model.DefaultLayout(ids), opts...),
		ids:     ids,
		logger:  logger,
		preview: model.PreviewDesktop,
	}
}

func (s *Session) commit(action string, next model.Layout) {
	s.hist.Commit(next)
	past, _ := s.hist.Len()
	s.logger.Debug("Committed layout change", "action", action, "undoDepth", past)
}

// Present returns the current layout. The returned value shares slices with
// the history and must not be written.
func (s *Session) Present() model.Layout { return s.hist.Present() }

// History returns a copy of the timeline.
func (s *Session) History() history.Snapshot[model.Layout] { return s.hist.Snapshot() }

// Previous returns the layout Undo would restore.
func (s *Session) Previous() (model.Layout, bool) { return s.hist.Previous() }

// Code generates markup and stylesheet for the present layout.
func (s *Session) Code() generator.Code { return generator.Generate(s.hist.Present()) }

func (s *Session) CanUndo() bool { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

func (s *Session) Undo() bool {
	ok := s.hist.Undo()
	if ok {
		s.logger.Debug("Undo")
	}
	return ok
}

func (s *Session) Redo() bool {
	ok := s.hist.Redo()
	if ok {
		s.logger.Debug("Redo")
	}
	return ok
}

// Draft replaces the present without recording an undo step. It backs live
// previews of in-progress edits; the caller restores the starting layout
// with another Draft before committing the final value.
func (s *Session) Draft(next model.Layout) {
	s.hist.SetPresent(next)
}

func (s *Session) PreviewMode() model.PreviewMode { return s.preview }

// SetPreviewMode changes the preview viewport. It is not an undo step.
func (s *Session) SetPreviewMode(m model.PreviewMode) error {
	if !m.Valid() {
		return invalid(fmt.Errorf("unknown preview mode %q", m))
	}
	s.preview = m
	return nil
}

// --- container ---

func (s *Session) SetLayoutType(t model.LayoutType) error {
	if !t.Valid() {
		return invalid(fmt.Errorf("unknown layout type %q", t))
	}
	s.commit("set-layout-type", layout.SetLayoutType(s.Present(), t))
	return nil
}

func (s *Session) UpdateFlexboxProps(p layout.FlexboxPatch) error {
	if err := p.Validate(); err != nil {
		return invalid(err)
	}
	s.commit("update-flexbox", layout.UpdateFlexboxProps(s.Present(), p))
	return nil
}

func (s *Session) UpdateGridProps(p layout.GridPatch) error {
	if err := p.Validate(); err != nil {
		return invalid(err)
	}
	s.commit("update-grid", layout.UpdateGridProps(s.Present(), p))
	return nil
}

// --- flex items ---

func (s *Session) AddFlexItem() {
	s.commit("add-flex-item", layout.AddFlexItem(s.Present(), s.ids()))
}

func (s *Session) UpdateFlexItem(i int, p layout.FlexItemPatch) error {
	if err := p.Validate(); err != nil {
		return invalid(err)
	}
	next, err := layout.UpdateFlexItem(s.Present(), i, p)
	if err != nil {
		return err
	}
	s.commit("update-flex-item", next)
	return nil
}

// RemoveFlexItem removes item i and reports whether anything changed. The
// last flex item is kept and no undo step is recorded for the attempt.
func (s *Session) RemoveFlexItem(i int) (bool, error) {
	next, removed, err := layout.RemoveFlexItem(s.Present(), i)
	if err != nil || !removed {
		return false, err
	}
	s.commit("remove-flex-item", next)
	return true, nil
}

func (s *Session) DuplicateFlexItem(i int) error {
	next, err := layout.DuplicateFlexItem(s.Present(), i, s.ids())
	if err != nil {
		return err
	}
	s.commit("duplicate-flex-item", next)
	return nil
}

// --- grid items ---

func (s *Session) AddGridItem() {
	s.commit("add-grid-item", layout.AddGridItem(s.Present(), s.ids()))
}

func (s *Session) UpdateGridItem(i int, p layout.GridItemPatch) error {
	if err := p.Validate(); err != nil {
		return invalid(err)
	}
	next, err := layout.UpdateGridItem(s.Present(), i, p)
	if err != nil {
		return err
	}
	s.commit("update-grid-item", next)
	return nil
}

// RemoveGridItem follows the same last-item rule as RemoveFlexItem.
func (s *Session) RemoveGridItem(i int) (bool, error) {
	next, removed, err := layout.RemoveGridItem(s.Present(), i)
	if err != nil || !removed {
		return false, err
	}
	s.commit("remove-grid-item", next)
	return true, nil
}

func (s *Session) DuplicateGridItem(i int) error {
	next, err := layout.DuplicateGridItem(s.Present(), i, s.ids())
	if err != nil {
		return err
	}
	s.commit("duplicate-grid-item", next)
	return nil
}

// --- whole-layout replacement ---

// LoadTemplate replaces the present with the template's layout as one undo
// step. An empty item sequence in the template gets a default item.
func (s *Session) LoadTemplate(tpl model.Template) error {
	next := layout.Normalize(tpl.State.Clone(), s.ids)
	if err := next.Validate(); err != nil {
		return invalid(fmt.Errorf("template %q: %v", tpl.ID, err))
	}
	s.commit("load-template", next)
	s.logger.Info("Loaded template", "templateID", tpl.ID, "name", tpl.Name)
	return nil
}

// LoadLayout replaces the present with a saved layout as one undo step.
func (s *Session) LoadLayout(saved model.SavedLayout) error {
	next := layout.Normalize(saved.State.Clone(), s.ids)
	if err := next.Validate(); err != nil {
		return invalid(fmt.Errorf("saved layout %q: %v", saved.ID, err))
	}
	s.commit("load-layout", next)
	s.logger.Info("Loaded saved layout", "layoutID", saved.ID, "name", saved.Name)
	return nil
}
