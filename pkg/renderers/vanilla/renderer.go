// Package vanilla renders a reconstructed form as a standalone HTML page
// that mirrors the source site's input layout: one submittable page covering
// every question variant, including grid tables and other-escape inputs.
package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formclone/pkg/model"
	"github.com/goliatone/go-formclone/pkg/render"
	rendertemplate "github.com/goliatone/go-formclone/pkg/render/template"
	"github.com/goliatone/go-formclone/pkg/render/template/pongo"
)

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer implements render.Renderer for browser consumption.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template engine: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full form page. The model is consumed read-only.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.Options) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	action := options.Action
	if action == "" {
		action = "/submit"
	}
	submitLabel := options.SubmitLabel
	if submitLabel == "" {
		submitLabel = "Submit"
	}

	out, err := r.templates.Render("form", map[string]any{
		"form": form,
		"options": map[string]any{
			"action":       action,
			"submitLabel":  submitLabel,
			"errorMessage": options.ErrorMessage,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return []byte(out), nil
}
