package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-regform/pkg/config"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/schema"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithConfig replaces the default configuration.
func WithConfig(cfg config.Config) Option {
	return func(o *Orchestrator) {
		o.cfg = cfg
	}
}

// WithLogger sets the logger handed to controllers and the submission sink.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
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

// WithPromptDriver sets the driver used by the built-in tui renderer.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(o *Orchestrator) {
		o.driver = driver
	}
}

// WithFormOptions appends controller options applied after the ones derived
// from configuration.
func WithFormOptions(options ...form.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, options...)
	}
}

// Orchestrator builds controllers from configuration and renders their views.
// It applies sensible defaults (vanilla and tui renderers, log sink) while
// remaining open to dependency injection.
type Orchestrator struct {
	cfg             config.Config
	logger          *slog.Logger
	registry        *render.Registry
	defaultRenderer string
	driver          tui.PromptDriver
	formOptions     []form.Option
	schema          *schema.Schema
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:             config.Default(),
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single render of the form.
type Request struct {
	// Record prefills the controller. Fields not present keep their defaults.
	Record schema.Record

	// TouchAll marks every field touched so all failing fields show errors.
	TouchAll bool

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request presentation overrides.
	RenderOptions render.RenderOptions
}

// Config returns the active configuration.
func (o *Orchestrator) Config() config.Config {
	return o.cfg
}

// Schema returns the rule table built from configuration.
func (o *Orchestrator) Schema() *schema.Schema {
	return o.schema
}

// Logger returns the configured logger.
func (o *Orchestrator) Logger() *slog.Logger {
	return o.logger
}

// NewController returns a controller wired to the configured policies and a
// log sink for submissions.
func (o *Orchestrator) NewController(extra ...form.Option) *form.Controller {
	options := append([]form.Option{}, o.cfg.FormOptions()...)
	options = append(options,
		form.WithLogger(o.logger),
		form.WithSink(form.NewLogSink(o.logger)),
	)
	options = append(options, o.formOptions...)
	options = append(options, extra...)
	return form.New(o.schema, options...)
}

// Validate checks record against the configured schema.
func (o *Orchestrator) Validate(record schema.Record) schema.Errors {
	return o.schema.Validate(record)
}

// Renderer resolves a renderer by name, falling back to the default.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	return o.rendererFor(name)
}

// Fill runs an interactive terminal session against a fresh controller.
func (o *Orchestrator) Fill(ctx context.Context) (form.Submission, []byte, error) {
	if err := o.initialiseErr; err != nil {
		return form.Submission{}, nil, err
	}
	renderer, err := o.rendererFor("tui")
	if err != nil {
		return form.Submission{}, nil, err
	}
	filler, ok := renderer.(interface {
		Fill(context.Context, *form.Controller) (form.Submission, []byte, error)
	})
	if !ok {
		return form.Submission{}, nil, fmt.Errorf("orchestrator: renderer %q is not interactive", renderer.Name())
	}
	return filler.Fill(ctx, o.NewController())
}

// Generate prefills a controller from the request and renders its view.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	c := o.NewController()
	if len(req.Record) > 0 {
		c.SetFieldValues(req.Record)
	}
	if req.TouchAll {
		c.TouchAll()
	}

	output, err := renderer.Render(ctx, c.View(), req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
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

func (o *Orchestrator) applyDefaults() {
	if err := o.cfg.Validate(); err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: %w", err)
	}
	if o.logger == nil {
		o.logger = o.cfg.Logger(io.Discard)
	}
	o.schema = o.cfg.Schema()

	if o.registry != nil {
		return
	}
	o.registry = render.NewRegistry()

	var vanillaOpts []vanilla.Option
	if o.cfg.BannerIcon != "" {
		vanillaOpts = append(vanillaOpts, vanilla.WithBannerIcon(o.cfg.BannerIcon))
	}
	html, err := vanilla.New(vanillaOpts...)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
	} else {
		o.registry.MustRegister(html)
	}

	tuiOpts := []tui.Option{tui.WithOutputFormat(tui.OutputFormat(o.cfg.Output))}
	if o.driver != nil {
		tuiOpts = append(tuiOpts, tui.WithPromptDriver(o.driver))
	}
	o.registry.MustRegister(tui.New(tuiOpts...))
}
