package schema

import "fmt"

// PasswordPolicy selects which password rule chain the schema enforces.
type PasswordPolicy string

const (
	// PasswordStrict requires 6-12 characters drawn from letters, digits
	// and dot.
	PasswordStrict PasswordPolicy = "strict"
	// PasswordRelaxed only requires a non-empty value of 6+ characters.
	PasswordRelaxed PasswordPolicy = "relaxed"
)

const (
	MinAge            = 19
	MaxAge            = 60
	MinPasswordLength = 6
	MaxPasswordLength = 12
	PasswordCharset   = `^[A-Za-z0-9.]+$`
)

// Choice is a selectable value with its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldRules is the ordered rule chain for one field plus the hints a
// presentation layer needs to draw it.
type FieldRules struct {
	Name        string
	Label       string
	Type        FieldType
	Widget      string
	Placeholder string
	Choices     []Choice
	Rules       []Rule
}

// Schema is the immutable rule table. It is safe for concurrent use.
type Schema struct {
	password PasswordPolicy
	fields   []FieldRules
	index    map[string]int
}

// Option configures the schema at construction time.
type Option func(*Schema)

// WithPasswordPolicy picks the password rule chain. Unknown policies are
// ignored.
func WithPasswordPolicy(policy PasswordPolicy) Option {
	return func(s *Schema) {
		switch policy {
		case PasswordStrict, PasswordRelaxed:
			s.password = policy
		}
	}
}

// New builds the registration schema.
func New(options ...Option) *Schema {
	s := &Schema{password: PasswordStrict}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	s.fields = registrationFields(s.password)
	s.index = make(map[string]int, len(s.fields))
	for i, field := range s.fields {
		s.index[field.Name] = i
	}
	return s
}

// PasswordPolicy reports the active password rule chain.
func (s *Schema) PasswordPolicy() PasswordPolicy {
	return s.password
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []FieldRules {
	out := make([]FieldRules, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a single field.
func (s *Schema) Field(name string) (FieldRules, bool) {
	idx, ok := s.index[name]
	if !ok {
		return FieldRules{}, false
	}
	return s.fields[idx], true
}

// Has reports whether name is a field of the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Validate evaluates every field of record and returns the violations. The
// result is never nil; an empty map means the record is valid.
func (s *Schema) Validate(record Record) Errors {
	errs := make(Errors)
	for _, field := range s.fields {
		if fe := checkField(field, record[field.Name]); fe != nil {
			errs[field.Name] = fe
		}
	}
	return errs
}

// ValidateField evaluates a single field, returning nil when it passes.
func (s *Schema) ValidateField(name string, value any) *FieldError {
	field, ok := s.Field(name)
	if !ok {
		return nil
	}
	return checkField(field, value)
}

func checkField(field FieldRules, value any) *FieldError {
	for _, rule := range field.Rules {
		if rule.Check(value) {
			continue
		}
		return &FieldError{
			Field:    field.Name,
			Category: rule.Category,
			Kind:     rule.Kind,
			Message:  rule.Message,
		}
	}
	return nil
}

// Cities lists the selectable cities.
func Cities() []Choice {
	return []Choice{
		{Value: "qazvin", Label: "Qazvin"},
		{Value: "tehran", Label: "Tehran"},
		{Value: "rasht", Label: "Rasht"},
		{Value: "esfahan", Label: "Esfahan"},
	}
}

// Genders lists the selectable genders.
func Genders() []Choice {
	return []Choice{
		{Value: "male", Label: "Male"},
		{Value: "female", Label: "Female"},
	}
}

func choiceValues(choices []Choice) []string {
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		out = append(out, c.Value)
	}
	return out
}

func registrationFields(password PasswordPolicy) []FieldRules {
	cities := Cities()
	genders := Genders()

	return []FieldRules{
		{
			Name:        FieldEmail,
			Label:       "Email",
			Type:        FieldTypeString,
			Widget:      WidgetEmail,
			Placeholder: "Email",
			Rules: []Rule{
				Required("Email is required"),
				Email("Invalid email"),
			},
		},
		{
			Name:        FieldPassword,
			Label:       "Password",
			Type:        FieldTypeString,
			Widget:      WidgetPassword,
			Placeholder: "Password",
			Rules:       passwordRules(password),
		},
		{
			Name:        FieldAge,
			Label:       "Age",
			Type:        FieldTypeInteger,
			Widget:      WidgetNumber,
			Placeholder: fmt.Sprintf("%d to %d", MinAge, MaxAge),
			Rules: []Rule{
				Number("Age must be a number"),
				RequiredNumber("Age is required"),
				Integer("Age must be an integer"),
				Positive("Age must be positive"),
				Min(MinAge, fmt.Sprintf("Minimum age is %d", MinAge)),
				Max(MaxAge, fmt.Sprintf("Maximum age is %d", MaxAge)),
			},
		},
		{
			Name:        FieldCity,
			Label:       "City",
			Type:        FieldTypeString,
			Widget:      WidgetSelect,
			Placeholder: "Select city",
			Choices:     cities,
			Rules: []Rule{
				Required("City is required"),
				OneOf(choiceValues(cities), "Select a city from the list"),
			},
		},
		{
			Name:    FieldGender,
			Label:   "Select gender",
			Type:    FieldTypeString,
			Widget:  WidgetRadio,
			Choices: genders,
			Rules: []Rule{
				Required("Gender is required"),
				OneOf(choiceValues(genders), "Gender must be male or female"),
			},
		},
		{
			Name:   FieldAcceptTerms,
			Label:  "I accept the terms and conditions",
			Type:   FieldTypeBoolean,
			Widget: WidgetCheckbox,
			Rules: []Rule{
				Accepted("Accept terms"),
			},
		},
	}
}

func passwordRules(policy PasswordPolicy) []Rule {
	rules := []Rule{
		Required("Password is required"),
		MinLength(MinPasswordLength, fmt.Sprintf("At least %d characters", MinPasswordLength)),
	}
	if policy == PasswordRelaxed {
		return rules
	}
	return append(rules,
		MaxLength(MaxPasswordLength, fmt.Sprintf("At most %d characters", MaxPasswordLength)),
		Pattern(PasswordCharset, "Only letters, numbers, and dot (.) allowed"),
	)
}
