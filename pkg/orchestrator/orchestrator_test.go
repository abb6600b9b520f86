package orchestrator_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/config"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

// answerDriver accepts every prompt with a value from the valid fixture.
type answerDriver struct{}

func (answerDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	switch cfg.Message {
	case "Email":
		return "a@b.com", nil
	case "Age":
		return "30", nil
	}
	return "", errors.New("unexpected input " + cfg.Message)
}

func (answerDriver) Password(context.Context, tui.InputConfig) (string, error) {
	return "abc123", nil
}

func (answerDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return true, nil
}

func (answerDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return 0, nil
}

func (answerDriver) Info(context.Context, string) error { return nil }

func TestOrchestrator_GenerateDefaultRenderer(t *testing.T) {
	gen := orchestrator.New()

	out, err := gen.Generate(testsupport.Context(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<form") {
		t.Fatalf("expected html form, got:\n%s", html)
	}
	if strings.Contains(html, `class="regform__error"`) {
		t.Fatalf("pristine form must not show errors")
	}
}

func TestOrchestrator_GenerateTouchAllShowsEveryError(t *testing.T) {
	gen := orchestrator.New()

	out, err := gen.Generate(testsupport.Context(), orchestrator.Request{
		Record:   testsupport.InvalidRecord(),
		TouchAll: true,
		Renderer: "tui",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	text := string(out)
	for _, msg := range []string{"Invalid email", "At least 6 characters", "Age must be a number", "City is required", "Gender is required", "Accept terms"} {
		if !strings.Contains(text, msg) {
			t.Fatalf("expected %q in output:\n%s", msg, text)
		}
	}
}

func TestOrchestrator_UnknownRenderer(t *testing.T) {
	gen := orchestrator.New()
	_, err := gen.Generate(testsupport.Context(), orchestrator.Request{Renderer: "pdf"})
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestOrchestrator_InvalidConfigSurfaces(t *testing.T) {
	cfg := config.Default()
	cfg.Touch = "hover"
	gen := orchestrator.New(orchestrator.WithConfig(cfg))

	_, err := gen.Generate(testsupport.Context(), orchestrator.Request{})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestOrchestrator_ValidateUsesPasswordPolicy(t *testing.T) {
	record := testsupport.ValidRecord()
	record[schema.FieldPassword] = "abc_defghijklmnop"

	strict := orchestrator.New()
	if errs := strict.Validate(record); !errs.Has(schema.FieldPassword) {
		t.Fatalf("strict policy should reject %q", record[schema.FieldPassword])
	}

	cfg := config.Default()
	cfg.Password = string(schema.PasswordRelaxed)
	relaxed := orchestrator.New(orchestrator.WithConfig(cfg))
	if errs := relaxed.Validate(record); !errs.Empty() {
		t.Fatalf("relaxed policy should accept, got %v", errs.Messages())
	}
}

func TestOrchestrator_NewControllerHonoursTouchPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Touch = string(form.TouchOnBlur)
	c := orchestrator.New(orchestrator.WithConfig(cfg)).NewController()

	c.SetFieldValue(schema.FieldEmail, "bad")
	if c.Touched(schema.FieldEmail) {
		t.Fatalf("blur policy must not touch on change")
	}
	c.Blur(schema.FieldEmail)
	if got := c.VisibleErrors()[schema.FieldEmail]; got != "Invalid email" {
		t.Fatalf("expected visible email error, got %q", got)
	}
}

func TestOrchestrator_FillLogsRedactedSubmission(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	gen := orchestrator.New(
		orchestrator.WithLogger(logger),
		orchestrator.WithPromptDriver(answerDriver{}),
		orchestrator.WithFormOptions(
			form.WithAfterFunc(testsupport.NeverFire),
			form.WithIDGenerator(func() string { return "sub-7" }),
		),
	)

	sub, payload, err := gen.Fill(testsupport.Context())
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if sub.ID != "sub-7" || len(payload) == 0 {
		t.Fatalf("unexpected submission %+v", sub)
	}
	if sub.Record[schema.FieldCity] != "qazvin" || sub.Record[schema.FieldGender] != "male" {
		t.Fatalf("unexpected choices %+v", sub.Record)
	}

	out := logs.String()
	if !strings.Contains(out, "form submitted") || !strings.Contains(out, "id=sub-7") {
		t.Fatalf("expected submission log, got:\n%s", out)
	}
	if strings.Contains(out, "abc123") {
		t.Fatalf("password leaked into logs:\n%s", out)
	}
}
