package schema

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Canonical rule identifiers.
const (
	RuleRequired  = "required"
	RuleEmail     = "email"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleNumber    = "number"
	RuleInteger   = "integer"
	RulePositive  = "positive"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleEnum      = "enum"
	RuleConst     = "const"
)

// Rule is a single predicate/message pair. Check reports true when the value
// satisfies the rule. Numeric thresholds are encoded in Params["value"],
// patterns in Params["pattern"] and enumerations in Params["values"]
// (comma separated).
type Rule struct {
	Kind     string
	Params   map[string]string
	Category Category
	Message  string
	Check    func(value any) bool
}

var syntax = validator.New()

// Required rejects nil and whitespace-only text.
func Required(message string) Rule {
	return Rule{
		Kind:     RuleRequired,
		Category: CategoryRequired,
		Message:  message,
		Check: func(value any) bool {
			return strings.TrimSpace(textValue(value)) != ""
		},
	}
}

// IsEmail reports whether text is a well-formed address. Surrounding
// whitespace is not stripped.
func IsEmail(text string) bool {
	return syntax.Var(text, "email") == nil
}

// Email checks address syntax on the stored text.
func Email(message string) Rule {
	return Rule{
		Kind:     RuleEmail,
		Category: CategoryFormat,
		Message:  message,
		Check: func(value any) bool {
			return IsEmail(textValue(value))
		},
	}
}

// MinLength requires at least n characters.
func MinLength(n int, message string) Rule {
	return Rule{
		Kind:     RuleMinLength,
		Params:   map[string]string{"value": strconv.Itoa(n)},
		Category: CategoryRange,
		Message:  message,
		Check: func(value any) bool {
			return utf8.RuneCountInString(textValue(value)) >= n
		},
	}
}

// MaxLength allows at most n characters.
func MaxLength(n int, message string) Rule {
	return Rule{
		Kind:     RuleMaxLength,
		Params:   map[string]string{"value": strconv.Itoa(n)},
		Category: CategoryRange,
		Message:  message,
		Check: func(value any) bool {
			return utf8.RuneCountInString(textValue(value)) <= n
		},
	}
}

// Pattern requires the text to match expr. The expression must compile.
func Pattern(expr, message string) Rule {
	re := regexp.MustCompile(expr)
	return Rule{
		Kind:     RulePattern,
		Params:   map[string]string{"pattern": expr},
		Category: CategoryFormat,
		Message:  message,
		Check: func(value any) bool {
			return re.MatchString(textValue(value))
		},
	}
}

// Number rejects values that cannot be read as a number. Unset values pass;
// pair it with RequiredNumber to demand presence.
func Number(message string) Rule {
	return Rule{
		Kind:     RuleNumber,
		Category: CategoryType,
		Message:  message,
		Check: func(value any) bool {
			_, state := numberValue(value)
			return state != numberInvalid
		},
	}
}

// RequiredNumber rejects an unset numeric value.
func RequiredNumber(message string) Rule {
	return Rule{
		Kind:     RuleRequired,
		Category: CategoryRequired,
		Message:  message,
		Check: func(value any) bool {
			_, state := numberValue(value)
			return state != numberUnset
		},
	}
}

// Integer rejects fractional numbers.
func Integer(message string) Rule {
	return Rule{
		Kind:     RuleInteger,
		Category: CategoryType,
		Message:  message,
		Check: numeric(func(f float64) bool {
			return math.Trunc(f) == f
		}),
	}
}

// Positive requires a number strictly greater than zero.
func Positive(message string) Rule {
	return Rule{
		Kind:     RulePositive,
		Category: CategoryRange,
		Message:  message,
		Check: numeric(func(f float64) bool {
			return f > 0
		}),
	}
}

// Min is an inclusive lower bound.
func Min(bound float64, message string) Rule {
	return Rule{
		Kind:     RuleMin,
		Params:   map[string]string{"value": formatFloat(bound)},
		Category: CategoryRange,
		Message:  message,
		Check: numeric(func(f float64) bool {
			return f >= bound
		}),
	}
}

// Max is an inclusive upper bound.
func Max(bound float64, message string) Rule {
	return Rule{
		Kind:     RuleMax,
		Params:   map[string]string{"value": formatFloat(bound)},
		Category: CategoryRange,
		Message:  message,
		Check: numeric(func(f float64) bool {
			return f <= bound
		}),
	}
}

// OneOf restricts text to a fixed set of values.
func OneOf(values []string, message string) Rule {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return Rule{
		Kind:     RuleEnum,
		Params:   map[string]string{"values": strings.Join(values, ",")},
		Category: CategoryMembership,
		Message:  message,
		Check: func(value any) bool {
			_, ok := allowed[textValue(value)]
			return ok
		},
	}
}

// Accepted requires a boolean true.
func Accepted(message string) Rule {
	return Rule{
		Kind:     RuleConst,
		Params:   map[string]string{"value": "true"},
		Category: CategoryMembership,
		Message:  message,
		Check:    boolValue,
	}
}

// numeric lifts a number predicate into a rule check. Values that are unset
// or unreadable are left to the required/type rules that precede it.
func numeric(fn func(float64) bool) func(any) bool {
	return func(value any) bool {
		f, state := numberValue(value)
		if state != numberOK {
			return true
		}
		return fn(f)
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
