package schema

import (
	"errors"
	"sort"
)

// Category classifies the kind of rule a value violated.
type Category string

const (
	CategoryRequired   Category = "required"
	CategoryFormat     Category = "format"
	CategoryRange      Category = "range"
	CategoryType       Category = "type"
	CategoryMembership Category = "membership"
)

// FieldError reports the first rule a field violated.
type FieldError struct {
	Field    string   `json:"field"`
	Category Category `json:"category"`
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	return e.Field + ": " + e.Message
}

// Errors maps field names to their violation. A missing key means the field
// currently satisfies every rule.
type Errors map[string]*FieldError

// Empty reports whether no field is in error.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Has reports whether field currently violates a rule.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the violation recorded for field, if any.
func (e Errors) Get(field string) (*FieldError, bool) {
	fe, ok := e[field]
	return fe, ok
}

// Messages flattens the errors into field -> message.
func (e Errors) Messages() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for field, fe := range e {
		out[field] = fe.Message
	}
	return out
}

// Sorted returns the violations ordered by field name.
func (e Errors) Sorted() []*FieldError {
	if len(e) == 0 {
		return nil
	}
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*FieldError, 0, len(names))
	for _, name := range names {
		out = append(out, e[name])
	}
	return out
}

// Err joins the violations into a single error, or nil when empty. Each
// joined error is a *FieldError so callers can use errors.As.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	errs := make([]error, 0, len(e))
	for _, fe := range e.Sorted() {
		errs = append(errs, fe)
	}
	return errors.Join(errs...)
}
