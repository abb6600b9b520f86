// Package vanilla renders the registration form View as a self-contained HTML
// page: inline stylesheet, no scripts. Only errors the controller marks as
// visible are printed and the submit button is disabled while the record is
// invalid.
package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	"github.com/goliatone/go-regform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-regform/pkg/schema"
)

const (
	pageTemplate = "page"
	// secretFilter blanks a field value when its widget is in secretWidgets.
	secretFilter = "regform_secret"
)

var secretWidgets = map[string]bool{schema.WidgetPassword: true}

// Option customises the vanilla renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       *string
	icon             *string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The
// bundle must provide page.tpl and field.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
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

// WithStylesheet replaces the inline stylesheet. An empty string disables it.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

// WithBannerIcon replaces the success banner icon. The markup is sanitized
// down to a small SVG subset; anything else is stripped.
func WithBannerIcon(markup string) Option {
	return func(cfg *config) {
		cfg.icon = &markup
	}
}

// Renderer renders a form.View as a standalone HTML page.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}
	icon := sanitizeIconMarkup(DefaultBannerIcon)
	if cfg.icon != nil {
		icon = sanitizeIconMarkup(*cfg.icon)
	}
	globals := map[string]any{
		"stylesheet": stylesheet,
		"icon":       icon,
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
			gotemplate.WithGlobalData(globals),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	} else if err := templates.GlobalContext(globals); err != nil {
		return nil, fmt.Errorf("vanilla renderer: seed template globals: %w", err)
	}

	if err := templates.RegisterFilter(secretFilter, blankSecret); err != nil && !errors.Is(err, rendertemplate.ErrFilterExists) {
		return nil, fmt.Errorf("vanilla renderer: register %s filter: %w", secretFilter, err)
	}

	return &Renderer{templates: templates}, nil
}

// blankSecret returns "" for values rendered by a secret widget.
func blankSecret(input any, widget any) (any, error) {
	if name, _ := widget.(string); secretWidgets[name] {
		return "", nil
	}
	return input, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the HTML page for view.
func (r *Renderer) Render(ctx context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("vanilla renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()

	fields := make([]map[string]any, 0, len(view.Fields))
	for _, field := range view.Fields {
		fields = append(fields, fieldContext(field))
	}

	data := map[string]any{
		"title":           opts.Title,
		"success_message": opts.SuccessMessage,
		"form_errors":     opts.FormErrors,
		"banner":          view.Banner,
		"last_submission": view.LastSubmission,
		"can_submit":      view.CanSubmit,
		"fields":          fields,
	}

	out, err := r.templates.RenderTemplate(pageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	return []byte(out), nil
}

func fieldContext(field form.FieldView) map[string]any {
	text := ""
	if field.Value != nil {
		text = fmt.Sprint(field.Value)
	}
	checked, _ := field.Value.(bool)

	choices := make([]map[string]any, 0, len(field.Choices))
	for _, c := range field.Choices {
		choices = append(choices, map[string]any{"value": c.Value, "label": c.Label})
	}

	ctx := map[string]any{
		"name":        field.Name,
		"label":       field.Label,
		"widget":      field.Widget,
		"placeholder": field.Placeholder,
		"state":       field.State,
		"error":       field.Error,
		"value":       text,
		"checked":     checked,
		"choices":     choices,
	}
	return ctx
}
