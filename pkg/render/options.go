package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching controller state.
type RenderOptions struct {
	// Title overrides the heading printed above the form.
	Title string
	// SuccessMessage overrides the text shown in the success banner.
	SuccessMessage string
	// FormErrors lists form-level messages rendered above the fields. They
	// are normalised (trimmed, de-duplicated) before use.
	FormErrors []string
}

const (
	DefaultTitle          = "Registration Form"
	DefaultSuccessMessage = "Form submitted successfully!"
)

// WithDefaults fills empty fields with the package defaults.
func (o RenderOptions) WithDefaults() RenderOptions {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.SuccessMessage == "" {
		o.SuccessMessage = DefaultSuccessMessage
	}
	o.FormErrors = NormalizeMessages(o.FormErrors)
	return o
}
