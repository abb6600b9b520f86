package schema_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/schema"
)

func TestDecodeRecord_YAML(t *testing.T) {
	data := []byte(`
email: a@b.com
password: abc123
age: 25
city: tehran
gender: male
acceptTerms: true
`)
	record, err := schema.DecodeRecord(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := schema.Record{
		"email":       "a@b.com",
		"password":    "abc123",
		"age":         25,
		"city":        "tehran",
		"gender":      "male",
		"acceptTerms": true,
	}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if errs := schema.New().Validate(record); !errs.Empty() {
		t.Fatalf("expected decoded record to be valid, got %v", errs.Messages())
	}
}

func TestDecodeRecord_JSON(t *testing.T) {
	record, err := schema.DecodeRecord([]byte(`{"email":"bad","age":"x","acceptTerms":false}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	errs := schema.New().Validate(record)
	if got := errs[schema.FieldAge].Category; got != schema.CategoryType {
		t.Fatalf("expected type error for age, got %s", got)
	}
}

func TestDecodeRecord_RejectsNested(t *testing.T) {
	if _, err := schema.DecodeRecord([]byte("email:\n  nested: true\n")); err == nil {
		t.Fatalf("expected error for nested value")
	}
}

func TestDecodeForm(t *testing.T) {
	values := url.Values{
		"email":    {"a@b.com"},
		"password": {"abc123"},
		"age":      {"25"},
		"city":     {"tehran"},
		"gender":   {"male"},
		"csrf":     {"token"},
	}

	record := schema.DecodeForm(nil, values)
	want := schema.Record{
		"email":       "a@b.com",
		"password":    "abc123",
		"age":         "25",
		"city":        "tehran",
		"gender":      "male",
		"acceptTerms": false,
	}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	values.Set("acceptTerms", "true")
	record = schema.DecodeForm(nil, values)
	if errs := schema.New().Validate(record); !errs.Empty() {
		t.Fatalf("expected valid submission, got %v", errs.Messages())
	}
}
