// Package schema holds the declarative rule table for the registration form
// and the pure validator that evaluates a Record against it.
//
// Every field owns an ordered list of rules. Validate walks each list in the
// declared order and stops at the first failing rule, so a field reports at
// most one FieldError. Rules carry canonical identifiers in Kind/Params
// (required, email, minLength, maxLength, pattern, number, integer, positive,
// min, max, enum, const) so exporters can translate the table into other
// schema dialects without re-deriving thresholds from messages.
//
// Validate is total: malformed input such as non-numeric age text becomes a
// type error in the result instead of a returned error or panic.
package schema
