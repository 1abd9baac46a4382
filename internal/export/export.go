// Package export delivers generated code to the clipboard or to files.
package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/atotto/clipboard"

	"css-layout-builder/internal/generator"
	"css-layout-builder/internal/model"
	"css-layout-builder/pkg/fsutils"
)

// ErrClipboardUnavailable is returned when the system has no usable
// clipboard (no xclip/xsel/wl-copy on Linux, headless sessions).
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return nil
}

// Part selects which text Copy places on the clipboard.
type Part string

const (
	PartHTML Part = "html"
	PartCSS  Part = "css"
	PartBoth Part = "both"
)

// ParsePart accepts html, css or both.
func ParsePart(s string) (Part, error) {
	switch p := Part(s); p {
	case PartHTML, PartCSS, PartBoth:
		return p, nil
	}
	return "", fmt.Errorf("unknown export part %q (want html, css or both)", s)
}

// Text returns the part of code p selects.
func (p Part) Text(code generator.Code) string {
	switch p {
	case PartHTML:
		return code.HTML
	case PartCSS:
		return code.CSS
	default:
		return code.Combined()
	}
}

// Exporter copies and writes generated code.
type Exporter struct {
	clip   Clipboard
	logger *slog.Logger
}

// New returns an Exporter. A nil clip uses the system clipboard and a nil
// logger discards output.
func New(clip Clipboard, logger *slog.Logger) *Exporter {
	if clip == nil {
		clip = SystemClipboard{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exporter{clip: clip, logger: logger}
}

// Copy places the selected part of code on the clipboard.
func (e *Exporter) Copy(code generator.Code, part Part) error {
	text := part.Text(code)
	if err := e.clip.WriteAll(text); err != nil {
		e.logger.Warn("Copy to clipboard failed", "part", part, "error", err)
		return err
	}
	e.logger.Info("Copied to clipboard", "part", part, "bytes", len(text))
	return nil
}

// Download writes markup and stylesheet into dir and returns the paths.
func (e *Exporter) Download(dir string, t model.LayoutType, code generator.Code) ([]string, error) {
	paths, err := generator.WriteFiles(dir, t, code)
	if err != nil {
		e.logger.Error("Export failed", "dir", dir, "error", err)
		return paths, err
	}
	e.logger.Info("Exported layout files", "dir", dir, "files", paths)
	return paths, nil
}

// DownloadSaved writes a saved layout's code into a subdirectory of dir
// named after the layout.
func (e *Exporter) DownloadSaved(dir string, saved *model.SavedLayout) ([]string, error) {
	sub := fsutils.SanitizeFilename(saved.Name)
	if sub == "" || sub == "_" {
		sub = saved.ID
	}
	return e.Download(filepath.Join(dir, sub), saved.State.LayoutType, generator.Generate(saved.State))
}
