package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field names understood by the registration schema.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldAge         = "age"
	FieldCity        = "city"
	FieldGender      = "gender"
	FieldAcceptTerms = "acceptTerms"
)

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeBoolean FieldType = "boolean"
)

// Widget hints tell presentation layers which control to draw.
const (
	WidgetEmail    = "email"
	WidgetPassword = "password"
	WidgetNumber   = "number"
	WidgetSelect   = "select"
	WidgetRadio    = "radio"
	WidgetCheckbox = "checkbox"
)

// Record maps field names to their current value. Values are strings,
// numbers, booleans or nil for an unset field.
type Record map[string]any

// DefaultRecord returns the pristine form state.
func DefaultRecord() Record {
	return Record{
		FieldEmail:       "",
		FieldPassword:    "",
		FieldAge:         nil,
		FieldCity:        "",
		FieldGender:      "",
		FieldAcceptTerms: false,
	}
}

// Clone returns a shallow copy; values are scalars so this is a full copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

type numberState int

const (
	numberUnset numberState = iota
	numberOK
	numberInvalid
)

func textValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func numberValue(value any) (float64, numberState) {
	var f float64
	switch v := value.(type) {
	case nil:
		return 0, numberUnset
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, numberUnset
		}
		// plain decimals only; ParseFloat alone would take 1_9 or 0x13p0
		if syntax.Var(trimmed, "numeric") != nil {
			return 0, numberInvalid
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, numberInvalid
		}
		f = parsed
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, numberInvalid
		}
		f = parsed
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	default:
		return 0, numberInvalid
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, numberInvalid
	}
	return f, numberOK
}

func boolValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && parsed
	default:
		return false
	}
}
