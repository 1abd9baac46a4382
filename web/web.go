// Package web holds the editor's HTML templates and static assets.
package web

import "embed"

// Templates contains templates/*.html. layout.html is the shared frame;
// every other file defines a "content" block for it.
//
//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var Static embed.FS
