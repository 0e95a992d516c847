// Package template defines the renderer-agnostic template seam so HTML
// renderers can swap engines without touching render logic.
package template

import "io"

// TemplateRenderer resolves a named template against a data context and
// returns the rendered output, optionally teeing it to writers.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
