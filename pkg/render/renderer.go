// Package render defines the renderer contract and registry. Renderers
// consume an assembled FormModel read-only and produce a byte representation:
// HTML for browsers, or a collected answer payload for terminal sessions.
package render

import (
	"context"

	"github.com/goliatone/go-formclone/pkg/model"
)

// Renderer converts a FormModel into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options Options) ([]byte, error)
}

// Options carries per-request rendering instructions.
type Options struct {
	// Action is the URL the rendered form submits to.
	Action string

	// SubmitLabel overrides the submit button text.
	SubmitLabel string

	// ErrorMessage, when set, is surfaced as a banner above the form.
	ErrorMessage string
}
