package form

import "errors"

var (
	// ErrFormInvalid is returned by Submit when at least one field violates
	// its rules. The controller state is left untouched.
	ErrFormInvalid = errors.New("form: record is invalid")
	// ErrUnknownTouchPolicy signals an unrecognised touch policy name.
	ErrUnknownTouchPolicy = errors.New("form: unknown touch policy")
)
