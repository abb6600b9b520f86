package regform

import (
	"context"

	"github.com/goliatone/go-regform/pkg/config"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/schema"
)

// Record aliases schema.Record, the field name to value map.
type Record = schema.Record

// RenderOptions describes per-request overrides that renderers can use to
// change the title, banner text or show form-level errors.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewController returns a controller using the default policies (touch on
// change, strict password).
func NewController(options ...form.Option) *form.Controller {
	return form.New(schema.New(), options...)
}

// Validate checks record against the default rule table.
func Validate(record Record) schema.Errors {
	return schema.New().Validate(record)
}

// GenerateHTML prefills a form with record and renders it with the vanilla
// renderer. It is the simplest entry point for callers that just want HTML.
func GenerateHTML(ctx context.Context, record Record, touchAll bool, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Record:   record,
		TouchAll: touchAll,
		Renderer: "vanilla",
	})
}

// WithConfigFile loads a YAML policy file and returns the matching
// orchestrator option.
func WithConfigFile(path string) (orchestrator.Option, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return orchestrator.WithConfig(cfg), nil
}
