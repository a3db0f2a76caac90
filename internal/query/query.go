// SPDX-License-Identifier: Apache-2.0

// Package query parses query specifications from _query request bodies.
//
// A specification is a JSON document of the form:
//
//	{
//	  "where":  {"status": "published", "votes": 3},
//	  "select": ["title", "status"],
//	  "limit":  20,
//	  "skip":   40,
//	  "sort":   ["-sys_created_at", "title"]
//	}
//
// where holds equality filters on document fields, select projects top-level
// fields, and sort entries are field names with an optional "-" prefix for
// descending order. A specification is constructed per request and discarded
// after the resource service call.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidSpec is returned when the request body cannot be parsed into a
// query specification.
var ErrInvalidSpec = errors.New("invalid query specification")

// Spec is a parsed query specification.
type Spec struct {
	// Where maps document fields to the values they must equal.
	Where map[string]any

	// Select lists the top-level fields to project. Empty means all fields.
	Select []string

	// Limit caps the number of returned documents. Zero means no limit.
	Limit uint64

	// Skip is the number of matching documents to pass over.
	Skip uint64

	// Sort is the ordered list of sort fields.
	Sort []SortField
}

// SortField is one entry of a sort order.
type SortField struct {
	Field      string
	Descending bool
}

// rawSpec mirrors the wire shape of a query body.
type rawSpec struct {
	Where  map[string]any `json:"where"`
	Select []string       `json:"select"`
	Limit  uint64         `json:"limit"`
	Skip   uint64         `json:"skip"`
	Sort   []string       `json:"sort"`
}

// Parse reads a query specification from r.
//
// An empty body is a valid specification matching everything. Returns
// [ErrInvalidSpec] (wrapped with the decoding failure) when the body is not
// a well-formed specification document.
func Parse(r io.Reader) (Spec, error) {
	var raw rawSpec

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Spec{}, nil
		}
		return Spec{}, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}

	spec := Spec{
		Where:  raw.Where,
		Select: raw.Select,
		Limit:  raw.Limit,
		Skip:   raw.Skip,
	}

	for _, field := range raw.Sort {
		descending := strings.HasPrefix(field, "-")
		name := strings.TrimPrefix(field, "-")
		if name == "" {
			return Spec{}, fmt.Errorf("%w: empty sort field", ErrInvalidSpec)
		}
		spec.Sort = append(spec.Sort, SortField{Field: name, Descending: descending})
	}

	return spec, nil
}

// Project returns a copy of document restricted to the spec's select fields.
// With no projection configured the document is returned unchanged.
func (s Spec) Project(document map[string]any) map[string]any {
	if len(s.Select) == 0 {
		return document
	}

	projected := make(map[string]any, len(s.Select))
	for _, field := range s.Select {
		if value, ok := document[field]; ok {
			projected[field] = value
		}
	}

	return projected
}
