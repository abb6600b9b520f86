package form

import "github.com/goliatone/go-regform/pkg/schema"

// FieldState is the per-field position in the touched/valid state machine.
type FieldState int

const (
	Untouched FieldState = iota
	TouchedValid
	TouchedInvalid
)

func (s FieldState) String() string {
	switch s {
	case TouchedValid:
		return "touched-valid"
	case TouchedInvalid:
		return "touched-invalid"
	default:
		return "untouched"
	}
}

// FieldView is everything a presentation layer needs to draw one field.
// Error is only populated when the field is touched and failing.
type FieldView struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	Widget      string          `json:"widget"`
	Placeholder string          `json:"placeholder,omitempty"`
	Choices     []schema.Choice `json:"choices,omitempty"`
	Value       any             `json:"value"`
	Touched     bool            `json:"touched"`
	State       string          `json:"state"`
	Error       string          `json:"error,omitempty"`
}

// View is a point-in-time snapshot of the form for rendering.
type View struct {
	Fields         []FieldView `json:"fields"`
	CanSubmit      bool        `json:"canSubmit"`
	Banner         bool        `json:"banner"`
	LastSubmission string      `json:"lastSubmission,omitempty"`
}

// Field returns the view of a single field.
func (v View) Field(name string) (FieldView, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldView{}, false
}
