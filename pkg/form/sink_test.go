package form

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-regform/pkg/schema"
)

func TestLogSink_RedactsPassword(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewTextHandler(&buf, nil)))

	err := sink.Accept(context.Background(), Submission{
		ID: "abc",
		Record: schema.Record{
			schema.FieldEmail:    "a@b.com",
			schema.FieldPassword: "abc123",
		},
		SubmittedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "abc123") {
		t.Fatalf("password leaked into log: %s", out)
	}
	for _, want := range []string{"form submitted", "id=abc", "record.email=a@b.com", "record.password=" + redactedValue} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output: %s", want, out)
		}
	}
}

func TestSinkFunc(t *testing.T) {
	var got string
	sink := SinkFunc(func(_ context.Context, sub Submission) error {
		got = sub.ID
		return nil
	})
	if err := sink.Accept(context.Background(), Submission{ID: "x"}); err != nil || got != "x" {
		t.Fatalf("expected sink func to be called, got %q (%v)", got, err)
	}
}
