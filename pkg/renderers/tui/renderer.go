package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/schema"
)

const maskedValue = "REDACTED"

// Renderer drives a form.Controller from the terminal and prints plain text
// snapshots of a form view.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	secrets      []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
		secrets:      []string{schema.FieldPassword},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}

	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render prints a read-only text snapshot of view. Only visible errors are
// printed, matching what a graphical renderer would show.
func (r *Renderer) Render(ctx context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()

	var b strings.Builder
	b.WriteString(opts.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len([]rune(opts.Title))))
	b.WriteString("\n")

	if view.Banner {
		fmt.Fprintf(&b, "%s%s\n", r.theme.InfoPrefix, opts.SuccessMessage)
	}
	for _, msg := range opts.FormErrors {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, msg)
	}

	for _, field := range view.Fields {
		fmt.Fprintf(&b, "%s: %s\n", field.Label, r.displayValue(field))
		if field.Error != "" {
			fmt.Fprintf(&b, "  %s%s\n", r.theme.ErrorPrefix, field.Error)
		}
	}

	if view.CanSubmit {
		b.WriteString("[Submit]\n")
	} else {
		b.WriteString("[Submit] (disabled)\n")
	}
	return []byte(b.String()), nil
}

// Fill prompts for every field in schema order, re-prompting while the
// controller reports a visible error for it, then submits. The returned
// payload is the serialized submission.
func (r *Renderer) Fill(ctx context.Context, c *form.Controller) (form.Submission, []byte, error) {
	if ctx == nil {
		return form.Submission{}, nil, errors.New("tui: context is required")
	}
	if c == nil {
		return form.Submission{}, nil, ErrNoController
	}

	for _, field := range c.Schema().Fields() {
		if err := r.promptField(ctx, c, field); err != nil {
			return form.Submission{}, nil, err
		}
	}

	sub, err := c.Submit(ctx)
	if err != nil {
		return form.Submission{}, nil, err
	}
	if err := r.driver.Info(ctx, r.theme.InfoPrefix+render.DefaultSuccessMessage); err != nil {
		return sub, nil, err
	}

	payload, err := r.serialize(sub)
	if err != nil {
		return sub, nil, err
	}
	return sub, payload, nil
}

func (r *Renderer) promptField(ctx context.Context, c *form.Controller, field schema.FieldRules) error {
	for {
		value, err := r.ask(ctx, field, c.Values()[field.Name])
		if err != nil {
			return err
		}

		c.SetFieldValue(field.Name, value)
		c.Blur(field.Name)

		msg, failing := c.VisibleErrors()[field.Name]
		if !failing {
			return nil
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
}

func (r *Renderer) ask(ctx context.Context, field schema.FieldRules, current any) (any, error) {
	switch field.Widget {
	case schema.WidgetPassword:
		return r.driver.Password(ctx, InputConfig{Message: field.Label})

	case schema.WidgetCheckbox:
		checked, _ := current.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{Message: field.Label, Default: checked})

	case schema.WidgetSelect, schema.WidgetRadio:
		options := make([]string, len(field.Choices))
		selected := -1
		for i, choice := range field.Choices {
			options[i] = choice.Label
			if choice.Value == current {
				selected = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      options,
			DefaultIndex: selected,
			Help:         field.Placeholder,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Choices) {
			return "", nil
		}
		return field.Choices[idx].Value, nil

	default:
		return r.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: textOf(current),
			Help:    field.Placeholder,
		})
	}
}

func (r *Renderer) serialize(sub form.Submission) ([]byte, error) {
	record := sub.Record.Clone()
	for _, name := range r.secrets {
		if _, ok := record[name]; ok {
			record[name] = maskedValue
		}
	}

	switch r.outputFormat {
	case OutputFormatPrettyText:
		keys := make([]string, 0, len(record))
		for key := range record {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var b strings.Builder
		fmt.Fprintf(&b, "id=%s\n", sub.ID)
		for _, key := range keys {
			fmt.Fprintf(&b, "%s=%s\n", key, textOf(record[key]))
		}
		return []byte(b.String()), nil
	default:
		sub.Record = record
		return json.MarshalIndent(sub, "", "  ")
	}
}

func (r *Renderer) displayValue(field form.FieldView) string {
	if field.Widget == schema.WidgetPassword {
		if textOf(field.Value) == "" {
			return ""
		}
		return "********"
	}
	if field.Widget == schema.WidgetCheckbox {
		if checked, _ := field.Value.(bool); checked {
			return "[x]"
		}
		return "[ ]"
	}
	for _, choice := range field.Choices {
		if choice.Value == field.Value {
			return choice.Label
		}
	}
	return textOf(field.Value)
}

func textOf(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
