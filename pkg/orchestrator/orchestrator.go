// Package orchestrator wires the pipeline front door: load a document,
// parse it into a form model, and optionally render the result with a named
// renderer.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalloader "github.com/goliatone/go-formclone/internal/loader"
	internalschema "github.com/goliatone/go-formclone/internal/schema"
	"github.com/goliatone/go-formclone/pkg/render"
	"github.com/goliatone/go-formclone/pkg/renderers/vanilla"
	"github.com/goliatone/go-formclone/pkg/schema"
	"github.com/goliatone/go-formclone/pkg/source"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader source.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom schema parser.
func WithParser(parser schema.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithParserOptions configures the default parser. Ignored when WithParser
// supplies one.
func WithParserOptions(options schema.ParserOptions) Option {
	return func(o *Orchestrator) {
		o.parserOptions = options
	}
}

// WithLoaderOptions configures the default loader. Ignored when WithLoader
// supplies one.
func WithLoaderOptions(options ...source.LoaderOption) Option {
	return func(o *Orchestrator) {
		o.loaderOptions = append(o.loaderOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// Request describes one pipeline run.
type Request struct {
	// Source locates the document; ignored when Document is supplied.
	Source source.Source

	// Document bypasses the loader with a pre-fetched snapshot.
	Document *source.Document

	// Renderer names the renderer for Clone; empty uses the default.
	Renderer string

	// RenderOptions carries per-request rendering instructions.
	RenderOptions render.Options
}

// Orchestrator runs the load, parse, render sequence.
type Orchestrator struct {
	loader          source.Loader
	loaderOptions   []source.LoaderOption
	parser          schema.Parser
	parserOptions   schema.ParserOptions
	registry        *render.Registry
	defaultRenderer string

	defaultsApplied bool
	initialiseErr   error
}

// New constructs an Orchestrator, wiring defaults lazily so options can
// replace any stage.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	o.defaultsApplied = true

	if o.loader == nil {
		o.loader = internalloader.New(o.loaderOptions...)
	}
	if o.parser == nil {
		o.parser = internalschema.New(o.parserOptions)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: construct default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
}

// Build loads and parses the requested document, returning the assembled
// model plus the per-item skip notes.
func (o *Orchestrator) Build(ctx context.Context, req Request) (schema.Result, error) {
	if ctx == nil {
		return schema.Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return schema.Result{}, err
	}

	o.applyDefaults()
	if err := o.initialiseErr; err != nil {
		return schema.Result{}, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return schema.Result{}, err
	}

	result, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return schema.Result{}, fmt.Errorf("orchestrator: parse document: %w", err)
	}
	return result, nil
}

// Clone runs Build and renders the model with the requested renderer.
func (o *Orchestrator) Clone(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, result.Form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (source.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return source.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return source.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}
