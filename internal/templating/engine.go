package templating

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"css-layout-builder/internal/generator"
	"css-layout-builder/internal/model"
	"css-layout-builder/internal/storage"
)

const previewDocument = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
<style>
body { margin: 0; padding: 1rem; font-family: system-ui, sans-serif; background: #f8f9fa; }
.preview-frame { margin: 0 auto; background: #fff; min-height: 200px; }
.preview-frame.mobile { width: 375px; border: 1px solid #ced4da; border-radius: 0.5rem; padding: 0.5rem; }
.preview-frame.desktop { width: 100%; }
{{ .CSS }}
</style>
</head>
<body>
<div class="preview-frame {{ .Mode }}">
{{ .Markup }}
</div>
</body>
</html>
`

// PageData is what the preview document template is executed with.
type PageData struct {
	Title  string
	Mode   model.PreviewMode
	CSS    template.CSS
	Markup template.HTML
}

// Engine renders generated code into a standalone preview page.
type Engine struct {
	store  storage.DataStore
	tmpl   *template.Template
	policy *bluemonday.Policy
}

// NewEngine creates a preview engine. store may be nil if RenderSaved is
// never called.
func NewEngine(store storage.DataStore) *Engine {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("div")
	policy.AllowAttrs("class").OnElements("div")

	return &Engine{
		store:  store,
		tmpl:   template.Must(template.New("preview").Parse(previewDocument)),
		policy: policy,
	}
}

// sanitizeCSS stops stylesheet text from closing the surrounding style
// element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// RenderDocument returns a full HTML page showing code at the given preview
// width. Markup is reduced to div elements with class attributes.
func (e *Engine) RenderDocument(title string, code generator.Code, mode model.PreviewMode) (string, error) {
	if !mode.Valid() {
		mode = model.PreviewDesktop
	}
	data := PageData{
		Title:  title,
		Mode:   mode,
		CSS:    template.CSS(sanitizeCSS(code.CSS)),
		Markup: template.HTML(e.policy.Sanitize(code.HTML)),
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.String(), nil
}

// RenderSaved loads a saved layout and renders its preview.
func (e *Engine) RenderSaved(id string, mode model.PreviewMode) (string, error) {
	if e.store == nil {
		return "", fmt.Errorf("no layout store configured")
	}
	saved, err := e.store.LoadLayout(id)
	if err != nil {
		return "", fmt.Errorf("failed to load layout %s: %w", id, err)
	}
	return e.RenderDocument(saved.Name, generator.Generate(saved.State), mode)
}
