package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	sdk "github.com/lousa-ai/sdk"
)

// schemaURL is the resource name the embedded contract compiles under.
const schemaURL = "https://lousa.ai/schemas/risk_note/v1.json"

//go:embed risk_note.schema.json
var embeddedSchema []byte

// Schema is a compiled Risk Note document contract.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile compiles a Draft 2020-12 schema document. Format assertions
// (date-time) are enabled; the contract relies on them for timestamps.
func Compile(data []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		return nil, sdk.NewConfigurationError("schema.Compile", fmt.Errorf("add schema resource: %w", err))
	}
	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, sdk.NewConfigurationError("schema.Compile", fmt.Errorf("compile schema: %w", err))
	}
	return &Schema{compiled: compiled}, nil
}

var defaultOnce = sync.OnceValues(func() (*Schema, error) {
	return Compile(embeddedSchema)
})

// Default returns the embedded v1 Risk Note schema. The embedded document
// is compiled once; it is part of the binary, so failure to compile is a
// build defect and panics.
func Default() *Schema {
	s, err := defaultOnce()
	if err != nil {
		panic(fmt.Sprintf("embedded risk note schema is invalid: %v", err))
	}
	return s
}

// Validate checks a decoded document (JSON-compatible maps, slices, and
// scalars) against the schema. On failure it returns a schema error
// wrapping a ViolationList with every defect found.
func (s *Schema) Validate(doc any) error {
	err := s.compiled.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return sdk.NewInternalError("schema.Validate", err)
	}
	return sdk.NewSchemaError("schema.Validate", violations(ve))
}

// violations flattens the validator's cause tree into a path-qualified
// list, keeping only leaf causes (the inner assertions that actually
// failed).
func violations(ve *jsonschema.ValidationError) sdk.ViolationList {
	var list sdk.ViolationList
	collectViolations(ve, &list)
	return list
}

func collectViolations(ve *jsonschema.ValidationError, list *sdk.ViolationList) {
	if len(ve.Causes) == 0 {
		path := ve.InstanceLocation
		if path == "" {
			path = "/"
		}
		list.Add(path, "%s", ve.Message)
		return
	}
	for _, cause := range ve.Causes {
		collectViolations(cause, list)
	}
}
