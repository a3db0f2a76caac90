// SPDX-License-Identifier: Apache-2.0

// Package schema wraps JSON-Schema compilation and document validation for
// resource descriptors and the token API.
//
// A failed validation is reported as a [models.APIError] with err_code
// "errors.validationError" and a context echoing the schema's required fields
// and properties, so clients can see exactly which parts of the contract were
// violated.
package schema

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/restgen/restgen/models"
	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON-Schema validator. It is immutable after
// compilation and safe for concurrent use by all generated handlers sharing
// a resource descriptor.
type Schema struct {
	compiled *gojsonschema.Schema

	// raw keeps the source schema document so validation errors can echo
	// its "required" and "properties" sections back to the client.
	raw map[string]any
}

// Compile parses and compiles a JSON-Schema source document.
func Compile(source string) (*Schema, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(source), &raw); err != nil {
		return nil, fmt.Errorf("error parsing schema source: %w", err)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		return nil, fmt.Errorf("error compiling schema: %w", err)
	}

	return &Schema{compiled: compiled, raw: raw}, nil
}

// MustCompile is like [Compile] but panics on error. Intended for
// package-level schema constants registered at startup.
func MustCompile(source string) *Schema {
	s, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks document (raw JSON bytes) against the schema.
//
// Returns nil when the document conforms. A non-conforming document yields a
// *models.APIError with status 400, err_code "errors.validationError", the
// first violation as err_msg, and the schema's required/properties echoed in
// the context. A document that is not valid JSON at all yields a 400
// "errors.badRequest".
func (s *Schema) Validate(document []byte) error {
	result, err := s.compiled.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return models.NewAPIError(
			"errors.badRequest",
			"Invalid json provided",
			http.StatusBadRequest,
		)
	}

	if result.Valid() {
		return nil
	}

	apiErr := models.NewAPIError(
		"errors.validationError",
		result.Errors()[0].Description(),
		http.StatusBadRequest,
	)
	return apiErr.WithContext(map[string]any{
		"required":   s.required(),
		"properties": s.properties(),
	})
}

func (s *Schema) required() []any {
	required, _ := s.raw["required"].([]any)
	if required == nil {
		return []any{}
	}
	return required
}

func (s *Schema) properties() map[string]any {
	properties, _ := s.raw["properties"].(map[string]any)
	if properties == nil {
		return map[string]any{}
	}
	return properties
}
