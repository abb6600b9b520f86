package parser

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"

	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/schema"
)

func exportedDocument(t *testing.T, asYAML bool) pkgopenapi.Document {
	t.Helper()

	spec := pkgopenapi.ExportDocument(schema.New(), "1.0.0")
	var (
		data []byte
		err  error
	)
	if asYAML {
		data, err = yaml.Marshal(spec)
	} else {
		data, err = json.Marshal(spec)
	}
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("registration.json"), data)
}

func validRecord() schema.Record {
	return schema.Record{
		schema.FieldEmail:       "a@b.com",
		schema.FieldPassword:    "abc123",
		schema.FieldAge:         25,
		schema.FieldCity:        "tehran",
		schema.FieldGender:      "male",
		schema.FieldAcceptTerms: true,
	}
}

func TestParser_ContractRoundTrip(t *testing.T) {
	for _, asYAML := range []bool{false, true} {
		contract, err := New(pkgopenapi.NewParserOptions()).Contract(context.Background(), exportedDocument(t, asYAML))
		if err != nil {
			t.Fatalf("contract (yaml=%v): %v", asYAML, err)
		}

		if err := pkgopenapi.CheckRecord(contract, validRecord()); err != nil {
			t.Fatalf("valid record rejected (yaml=%v): %v", asYAML, err)
		}

		bad := validRecord()
		bad[schema.FieldAge] = 61
		if err := pkgopenapi.CheckRecord(contract, bad); !errors.Is(err, pkgopenapi.ErrContractViolation) {
			t.Fatalf("expected violation (yaml=%v), got %v", asYAML, err)
		}
	}
}

func TestParser_MissingSchema(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions(pkgopenapi.WithSchemaName("Signup")))
	_, err := p.Contract(context.Background(), exportedDocument(t, false))
	if !errors.Is(err, pkgopenapi.ErrContractNotFound) {
		t.Fatalf("expected ErrContractNotFound, got %v", err)
	}
}

func TestParser_RejectsGarbage(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("x.json"), []byte("{not json"))
	if _, err := New(pkgopenapi.NewParserOptions()).Contract(context.Background(), doc); err == nil {
		t.Fatalf("expected load error")
	}
}
