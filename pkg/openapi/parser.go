package openapi

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
)

// Parser extracts the registration contract from a loaded document.
type Parser interface {
	Contract(ctx context.Context, doc Document) (*openapi3.Schema, error)
}

// ParserOptions tunes contract extraction.
type ParserOptions struct {
	// SchemaName is the components/schemas key holding the contract.
	SchemaName string

	// ValidateDocument runs kin-openapi document validation before lookup.
	ValidateDocument bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithSchemaName selects a contract other than Registration.
func WithSchemaName(name string) ParserOption {
	return func(opts *ParserOptions) {
		if name != "" {
			opts.SchemaName = name
		}
	}
}

// WithDocumentValidation toggles full document validation.
func WithDocumentValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		SchemaName:       ContractSchemaName,
		ValidateDocument: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
