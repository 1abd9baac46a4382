// Package catalog loads the read-only list of starting templates.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"css-layout-builder/internal/model"
)

//go:embed templates.yaml
var builtinYAML []byte

// ErrUnknownTemplate is returned by Get for an id not in the catalog.
var ErrUnknownTemplate = errors.New("unknown template")

// Catalog is an ordered, immutable template list.
type Catalog struct {
	templates []model.Template
	byID      map[string]int
}

// Load decodes a YAML sequence of templates. Unknown keys, duplicate ids and
// invalid layouts are errors.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var templates []model.Template
	if err := dec.Decode(&templates); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode templates: %w", err)
	}

	c := &Catalog{byID: make(map[string]int, len(templates))}
	for i, tpl := range templates {
		switch {
		case tpl.ID == "":
			return nil, fmt.Errorf("template %d: missing id", i+1)
		case tpl.Name == "":
			return nil, fmt.Errorf("template %s: missing name", tpl.ID)
		}
		if _, dup := c.byID[tpl.ID]; dup {
			return nil, fmt.Errorf("template %s: duplicate id", tpl.ID)
		}
		if err := tpl.State.Validate(); err != nil {
			return nil, fmt.Errorf("template %s: %w", tpl.ID, err)
		}
		if tpl.State.ActiveItemCount() == 0 {
			return nil, fmt.Errorf("template %s: no items for layout type %s", tpl.ID, tpl.State.LayoutType)
		}
		c.byID[tpl.ID] = len(c.templates)
		c.templates = append(c.templates, tpl)
	}
	return c, nil
}

// LoadFile reads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Open returns the catalog at path, or the built-in one when path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	return LoadFile(path)
}

// Builtin returns the catalog compiled into the binary.
func Builtin() *Catalog {
	c, err := Load(bytes.NewReader(builtinYAML))
	if err != nil {
		panic("catalog: embedded templates are invalid: " + err.Error())
	}
	return c
}

// List returns the templates in catalog order. Each call returns fresh
// slices the caller may keep.
func (c *Catalog) List() []model.Template {
	out := make([]model.Template, len(c.templates))
	for i, tpl := range c.templates {
		tpl.State = tpl.State.Clone()
		out[i] = tpl
	}
	return out
}

// Get returns the template with the given id.
func (c *Catalog) Get(id string) (model.Template, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	tpl := c.templates[i]
	tpl.State = tpl.State.Clone()
	return tpl, nil
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.templates) }
