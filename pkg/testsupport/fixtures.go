package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/schema"
)

// ValidRecord returns a record that passes every registration rule.
func ValidRecord() schema.Record {
	return schema.Record{
		schema.FieldEmail:       "a@b.com",
		schema.FieldPassword:    "abc123",
		schema.FieldAge:         25,
		schema.FieldCity:        "tehran",
		schema.FieldGender:      "male",
		schema.FieldAcceptTerms: true,
	}
}

// InvalidRecord returns a record where every field fails.
func InvalidRecord() schema.Record {
	return schema.Record{
		schema.FieldEmail:       "bad",
		schema.FieldPassword:    "ab",
		schema.FieldAge:         "x",
		schema.FieldCity:        "",
		schema.FieldGender:      "",
		schema.FieldAcceptTerms: false,
	}
}

// StoppedTimer is a form.Timer that never fires.
type StoppedTimer struct{}

// Stop implements form.Timer.
func (StoppedTimer) Stop() bool { return true }

// NeverFire is a form.AfterFunc that never schedules its callback, keeping
// the success banner visible for the duration of a test.
func NeverFire(time.Duration, func()) form.Timer {
	return StoppedTimer{}
}

// NewController builds a controller with deterministic ids and no timers.
// Extra options are applied after the defaults.
func NewController(t *testing.T, s *schema.Schema, opts ...form.Option) *form.Controller {
	t.Helper()

	base := []form.Option{
		form.WithAfterFunc(NeverFire),
		form.WithIDGenerator(func() string { return "sub-test" }),
		form.WithClock(func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }),
	}
	return form.New(s, append(base, opts...)...)
}

// LoadRecord reads a YAML or JSON record fixture.
func LoadRecord(path string) (schema.Record, error) {
	if path == "" {
		return nil, errors.New("testsupport: record path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read record: %w", err)
	}
	record, err := schema.DecodeRecord(data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode record: %w", err)
	}
	return record, nil
}

// MustLoadRecord is LoadRecord for tests.
func MustLoadRecord(t *testing.T, path string) schema.Record {
	t.Helper()

	record, err := LoadRecord(path)
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	return record
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
