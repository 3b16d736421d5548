// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

// Package schema validates message bodies against the JSON schemas embedded in
// this package.
package schema

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// TelemetryID is the $id of the telemetry sample schema
	TelemetryID = "https://relabs.tech/hubsim/schemas/telemetry.json"
	// MethodRequestID is the $id of the direct method request schema
	MethodRequestID = "https://relabs.tech/hubsim/schemas/method_request.json"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator validates JSON documents against a set of compiled schemas, keyed by $id
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// New compiles all embedded schemas
func New() (*Validator, error) {
	files, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("cannot read embedded schemas: %w", err)
	}
	var docs []string
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		b, err := schemaFS.ReadFile("schemas/" + f.Name())
		if err != nil {
			return nil, fmt.Errorf("cannot read schema '%s': %w", f.Name(), err)
		}
		docs = append(docs, string(b))
	}
	return NewValidator(docs)
}

// MustNew is New but panics on error. The embedded schemas are part of the
// binary, so an error here is a programming error.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// NewValidator compiles the given schema documents. Every document must carry an $id.
func NewValidator(docs []string) (*Validator, error) {
	type header struct {
		ID string `json:"$id"`
	}
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema)}
	for _, doc := range docs {
		h := header{}
		if err := json.Unmarshal([]byte(doc), &h); err != nil {
			return nil, fmt.Errorf("parse error in schema: %w", err)
		}
		if h.ID == "" {
			return nil, fmt.Errorf("schema does not contain $id: '%s'", doc)
		}
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s: %w", h.ID, err)
		}
		v.schemas[h.ID] = compiled
	}
	return v, nil
}

// HasSchema returns true if schemaID is known
func (v *Validator) HasSchema(schemaID string) bool {
	_, ok := v.schemas[schemaID]
	return ok
}

// ValidateBytes validates a serialized JSON document against schemaID
func (v *Validator) ValidateBytes(body []byte, schemaID string) error {
	return v.validate(gojsonschema.NewBytesLoader(body), schemaID)
}

// ValidateStruct validates a Go value, as it would be serialized, against schemaID
func (v *Validator) ValidateStruct(value interface{}, schemaID string) error {
	return v.validate(gojsonschema.NewGoLoader(value), schemaID)
}

func (v *Validator) validate(loader gojsonschema.JSONLoader, schemaID string) error {
	s, ok := v.schemas[schemaID]
	if !ok {
		return fmt.Errorf("there is no schema %s", schemaID)
	}

	result, err := s.Validate(loader)
	if err != nil {
		return fmt.Errorf("cannot validate with schema %s: %w", schemaID, err)
	}

	if !result.Valid() {
		var sb strings.Builder
		sb.WriteString("the document is not valid:\n")
		for _, e := range result.Errors() {
			sb.WriteString(fmt.Sprintf("- %s\n", e))
		}
		return errors.New(sb.String())
	}
	return nil
}
