package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/schema"
)

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

func categories(errs schema.Errors) map[string]schema.Category {
	out := make(map[string]schema.Category, len(errs))
	for field, fe := range errs {
		out[field] = fe.Category
	}
	return out
}

func TestValidate_ValidRecord(t *testing.T) {
	s := schema.New()
	errs := s.Validate(validRecord())
	if !errs.Empty() {
		t.Fatalf("expected no errors, got %v", errs.Messages())
	}
	if errs == nil {
		t.Fatalf("expected non-nil error map")
	}
}

func TestValidate_InvalidRecord(t *testing.T) {
	s := schema.New()
	record := schema.Record{
		schema.FieldEmail:       "bad",
		schema.FieldPassword:    "ab",
		schema.FieldAge:         "x",
		schema.FieldCity:        "",
		schema.FieldGender:      "",
		schema.FieldAcceptTerms: false,
	}

	errs := s.Validate(record)

	want := map[string]schema.Category{
		schema.FieldEmail:       schema.CategoryFormat,
		schema.FieldPassword:    schema.CategoryRange,
		schema.FieldAge:         schema.CategoryType,
		schema.FieldCity:        schema.CategoryRequired,
		schema.FieldGender:      schema.CategoryRequired,
		schema.FieldAcceptTerms: schema.CategoryMembership,
	}
	if diff := cmp.Diff(want, categories(errs)); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}

	wantMessages := map[string]string{
		schema.FieldEmail:       "Invalid email",
		schema.FieldPassword:    "At least 6 characters",
		schema.FieldAge:         "Age must be a number",
		schema.FieldCity:        "City is required",
		schema.FieldGender:      "Gender is required",
		schema.FieldAcceptTerms: "Accept terms",
	}
	if diff := cmp.Diff(wantMessages, errs.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DefaultRecordReportsEveryField(t *testing.T) {
	errs := schema.New().Validate(schema.DefaultRecord())

	want := map[string]string{
		schema.FieldEmail:       "Email is required",
		schema.FieldPassword:    "Password is required",
		schema.FieldAge:         "Age is required",
		schema.FieldCity:        "City is required",
		schema.FieldGender:      "Gender is required",
		schema.FieldAcceptTerms: "Accept terms",
	}
	if diff := cmp.Diff(want, errs.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_OnlyViolatingFieldsReported(t *testing.T) {
	s := schema.New()
	for _, field := range []string{
		schema.FieldEmail,
		schema.FieldPassword,
		schema.FieldAge,
		schema.FieldCity,
		schema.FieldGender,
	} {
		record := validRecord()
		delete(record, field)

		errs := s.Validate(record)
		if len(errs) != 1 || !errs.Has(field) {
			t.Fatalf("missing %s: expected exactly one error for it, got %v", field, errs.Messages())
		}
		if got := errs[field].Category; got != schema.CategoryRequired {
			t.Fatalf("missing %s: expected required category, got %s", field, got)
		}
	}
}

func TestValidate_AgeBounds(t *testing.T) {
	s := schema.New()
	cases := []struct {
		age     any
		message string
	}{
		{age: 18, message: "Minimum age is 19"},
		{age: 61, message: "Maximum age is 60"},
		{age: 19},
		{age: 60},
		{age: "19"},
		{age: " 60 "},
		{age: 25.0},
		{age: 25.5, message: "Age must be an integer"},
		{age: 0, message: "Age must be positive"},
		{age: -4, message: "Age must be positive"},
		{age: "", message: "Age is required"},
		{age: nil, message: "Age is required"},
		{age: "NaN", message: "Age must be a number"},
		{age: true, message: "Age must be a number"},
		{age: "1_9", message: "Age must be a number"},
		{age: "0x13p0", message: "Age must be a number"},
		{age: "1e1", message: "Age must be a number"},
		{age: "Inf", message: "Age must be a number"},
		{age: "+25"},
	}

	for _, tc := range cases {
		record := validRecord()
		record[schema.FieldAge] = tc.age
		errs := s.Validate(record)

		fe, ok := errs.Get(schema.FieldAge)
		if tc.message == "" {
			if ok {
				t.Fatalf("age %#v: unexpected error %q", tc.age, fe.Message)
			}
			continue
		}
		if !ok {
			t.Fatalf("age %#v: expected %q, got no error", tc.age, tc.message)
		}
		if fe.Message != tc.message {
			t.Fatalf("age %#v: expected %q, got %q", tc.age, tc.message, fe.Message)
		}
	}
}

func TestValidate_AgeRangeCategory(t *testing.T) {
	record := validRecord()
	record[schema.FieldAge] = 18
	fe, ok := schema.New().Validate(record).Get(schema.FieldAge)
	if !ok || fe.Category != schema.CategoryRange || fe.Kind != schema.RuleMin {
		t.Fatalf("expected range/min error, got %#v", fe)
	}
}

func TestValidate_PasswordPolicies(t *testing.T) {
	cases := []struct {
		name     string
		policy   schema.PasswordPolicy
		password string
		message  string
	}{
		{name: "strict ok", policy: schema.PasswordStrict, password: "abc.123"},
		{name: "strict too long", policy: schema.PasswordStrict, password: "abcdefghijklm", message: "At most 12 characters"},
		{name: "strict charset", policy: schema.PasswordStrict, password: "abc-123", message: "Only letters, numbers, and dot (.) allowed"},
		{name: "strict exact max", policy: schema.PasswordStrict, password: "abcdefghijkl"},
		{name: "relaxed long", policy: schema.PasswordRelaxed, password: "abcdefghijklmnop"},
		{name: "relaxed charset", policy: schema.PasswordRelaxed, password: "abc-123!"},
		{name: "relaxed short", policy: schema.PasswordRelaxed, password: "abc", message: "At least 6 characters"},
		{name: "relaxed empty", policy: schema.PasswordRelaxed, password: "", message: "Password is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := schema.New(schema.WithPasswordPolicy(tc.policy))
			if s.PasswordPolicy() != tc.policy {
				t.Fatalf("expected policy %s, got %s", tc.policy, s.PasswordPolicy())
			}
			fe := s.ValidateField(schema.FieldPassword, tc.password)
			got := ""
			if fe != nil {
				got = fe.Message
			}
			if got != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, got)
			}
		})
	}
}

func TestValidate_Membership(t *testing.T) {
	s := schema.New()
	if fe := s.ValidateField(schema.FieldCity, "paris"); fe == nil || fe.Category != schema.CategoryMembership {
		t.Fatalf("expected membership error for unknown city, got %#v", fe)
	}
	if fe := s.ValidateField(schema.FieldGender, "other"); fe == nil || fe.Category != schema.CategoryMembership {
		t.Fatalf("expected membership error for unknown gender, got %#v", fe)
	}
	for _, city := range schema.Cities() {
		if fe := s.ValidateField(schema.FieldCity, city.Value); fe != nil {
			t.Fatalf("city %s: unexpected error %v", city.Value, fe)
		}
	}
}

func TestValidate_Idempotent(t *testing.T) {
	s := schema.New()
	record := validRecord()
	record[schema.FieldEmail] = "nope"
	record[schema.FieldAge] = 70

	first := s.Validate(record)
	second := s.Validate(record)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validate not idempotent (-first +second):\n%s", diff)
	}
}

func TestErrors_ErrJoinsFieldErrors(t *testing.T) {
	record := validRecord()
	record[schema.FieldGender] = ""
	errs := schema.New().Validate(record)

	err := errs.Err()
	if err == nil {
		t.Fatalf("expected joined error")
	}
	var fe *schema.FieldError
	if !errors.As(err, &fe) || fe.Field != schema.FieldGender {
		t.Fatalf("expected gender field error, got %v", err)
	}
	if schema.New().Validate(validRecord()).Err() != nil {
		t.Fatalf("expected nil error for valid record")
	}
}

func TestSchema_FieldOrder(t *testing.T) {
	var names []string
	for _, f := range schema.New().Fields() {
		names = append(names, f.Name)
	}
	want := []string{"email", "password", "age", "city", "gender", "acceptTerms"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_EmailChecksStoredText(t *testing.T) {
	s := schema.New()
	cases := map[string]string{
		"a@b.com":      "",
		" a@b.com ":    "Invalid email",
		"a@b.com\n":    "Invalid email",
		"not-an-email": "Invalid email",
		"   ":          "Email is required",
	}
	for email, want := range cases {
		got := ""
		if fe := s.ValidateField(schema.FieldEmail, email); fe != nil {
			got = fe.Message
		}
		if got != want {
			t.Fatalf("email %q: expected %q, got %q", email, want, got)
		}
	}
	if !schema.IsEmail("a@b.com") || schema.IsEmail(" a@b.com") {
		t.Fatalf("IsEmail must accept bare addresses only")
	}
}
