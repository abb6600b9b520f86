package openapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/schema"
)

// ContractSchemaName is the components/schemas key written by ExportDocument.
const ContractSchemaName = "Registration"

var (
	// ErrContractNotFound is returned when a document lacks the contract schema.
	ErrContractNotFound = errors.New("openapi: contract schema not found")
	// ErrContractViolation wraps records rejected by a contract.
	ErrContractViolation = errors.New("openapi: record violates contract")
)

// kin-openapi leaves "email" unchecked until a validator is registered.
func init() {
	openapi3.DefineStringFormatValidator("email", openapi3.NewCallbackValidator(func(value string) error {
		if !schema.IsEmail(value) {
			return &openapi3.SchemaError{Value: value, Reason: "not a valid email address"}
		}
		return nil
	}))
}

// CheckRecord validates record against contract in its JSON wire form, so
// numeric strings are rejected where the contract expects numbers.
func CheckRecord(contract *openapi3.Schema, record schema.Record) error {
	if contract == nil {
		return ErrContractNotFound
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("openapi: encode record: %w", err)
	}
	var value map[string]any
	if err := json.Unmarshal(payload, &value); err != nil {
		return fmt.Errorf("openapi: decode record: %w", err)
	}
	if err := contract.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %w", ErrContractViolation, err)
	}
	return nil
}
