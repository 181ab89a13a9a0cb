package note

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/schema"
)

// Parse validates a raw Risk Note document against the schema contract,
// decodes it, and runs semantic validation. The returned note is ready for
// every downstream engine operation: a note that parses successfully never
// fails classification, freshness checking, or prioritization due to type
// errors.
//
// All failures are schema errors wrapping a complete sdk.ViolationList.
func Parse(doc []byte, sch *schema.Schema) (*RiskNote, error) {
	tree, err := normalize(doc)
	if err != nil {
		return nil, sdk.NewSchemaError("note.Parse", err)
	}
	if err := sch.Validate(tree); err != nil {
		return nil, err
	}

	var d Document
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	// Unknown fields were already rejected by the schema; KnownFields keeps
	// the typed decode equally strict in case the caller's schema marks a
	// subtree as open.
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, sdk.NewSchemaError("note.Parse", fmt.Errorf("decode document: %w", err))
	}

	n := d.RiskNote
	if err := n.Validate(); err != nil {
		return nil, sdk.NewSchemaError("note.Parse", err)
	}
	return &n, nil
}

// normalize converts a YAML document into the JSON-compatible value tree
// the schema validator expects. YAML-native scalars such as timestamps are
// round-tripped through JSON so they validate as RFC 3339 strings.
func normalize(doc []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	return tree, nil
}
