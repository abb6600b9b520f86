package openapi

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/schema"
)

func scenarioA() map[string]any {
	return map[string]any{
		"email":       "a@b.com",
		"password":    "abc123",
		"age":         float64(25),
		"city":        "tehran",
		"gender":      "male",
		"acceptTerms": true,
	}
}

func TestExport_AcceptsValidRecord(t *testing.T) {
	exported := Export(schema.New())
	if err := exported.VisitJSON(scenarioA()); err != nil {
		t.Fatalf("expected exported schema to accept valid record: %v", err)
	}
}

func TestExport_RejectsViolations(t *testing.T) {
	exported := Export(schema.New())
	cases := map[string]func(map[string]any){
		"age below minimum": func(m map[string]any) { m["age"] = float64(18) },
		"age above maximum": func(m map[string]any) { m["age"] = float64(61) },
		"fractional age":    func(m map[string]any) { m["age"] = 25.5 },
		"short password":    func(m map[string]any) { m["password"] = "ab" },
		"long password":     func(m map[string]any) { m["password"] = "abcdefghijklm" },
		"password charset":  func(m map[string]any) { m["password"] = "abc-123" },
		"unknown city":      func(m map[string]any) { m["city"] = "paris" },
		"terms declined":    func(m map[string]any) { m["acceptTerms"] = false },
		"missing gender":    func(m map[string]any) { delete(m, "gender") },
		"invalid email":     func(m map[string]any) { m["email"] = "not-an-email" },
		"padded email":      func(m map[string]any) { m["email"] = " a@b.com " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			record := scenarioA()
			mutate(record)
			if err := exported.VisitJSON(record); err == nil {
				t.Fatalf("expected exported schema to reject record")
			}
		})
	}
}

func TestExport_RelaxedPasswordDropsMaxAndPattern(t *testing.T) {
	exported := Export(schema.New(schema.WithPasswordPolicy(schema.PasswordRelaxed)))
	password := exported.Properties["password"].Value
	if password.MaxLength != nil || password.Pattern != "" {
		t.Fatalf("relaxed policy must not export max length or pattern: %#v", password)
	}
	if password.MinLength != 6 {
		t.Fatalf("expected min length 6, got %d", password.MinLength)
	}
}

func TestExport_RequiredAndWidgets(t *testing.T) {
	exported := Export(schema.New())
	want := []string{"email", "password", "age", "city", "gender", "acceptTerms"}
	if diff := cmp.Diff(want, exported.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if got := exported.Properties["city"].Value.Extensions[ExtensionWidget]; got != schema.WidgetSelect {
		t.Fatalf("expected select widget for city, got %v", got)
	}
	if got := exported.Properties["email"].Value.Format; got != "email" {
		t.Fatalf("expected email format, got %q", got)
	}
}

func TestExportDocument_Validates(t *testing.T) {
	doc := ExportDocument(schema.New(), "")
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("document invalid: %v", err)
	}
	if _, err := json.Marshal(doc); err != nil {
		t.Fatalf("marshal document: %v", err)
	}
}
