package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	if options.SchemaName == "" {
		options.SchemaName = pkgopenapi.ContractSchemaName
	}
	return &Parser{options: options}
}

// Contract loads doc (JSON or YAML) and returns the named component schema.
func (p *Parser) Contract(ctx context.Context, doc pkgopenapi.Document) (*openapi3.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if p.options.ValidateDocument {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	if spec.Components == nil {
		return nil, fmt.Errorf("%w: %q", pkgopenapi.ErrContractNotFound, p.options.SchemaName)
	}
	ref, ok := spec.Components.Schemas[p.options.SchemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", pkgopenapi.ErrContractNotFound, p.options.SchemaName)
	}
	return ref.Value, nil
}
