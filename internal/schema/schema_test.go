package schema

import (
	"errors"
	"net/http"
	"testing"

	"github.com/restgen/restgen/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"body": {"type": "string"}
	},
	"required": ["title", "body"]
}`

func TestCompile_InvalidSource(t *testing.T) {
	_, err := Compile("{not json")
	require.Error(t, err)
}

func TestValidate_OK(t *testing.T) {
	s := MustCompile(articleSchema)

	err := s.Validate([]byte(`{"title": "hello", "body": "world"}`))
	assert.NoError(t, err)
}

// TestValidate_MissingRequired verifies that a document violating the schema
// produces an APIError carrying the schema's required fields in its context.
func TestValidate_MissingRequired(t *testing.T) {
	s := MustCompile(articleSchema)

	err := s.Validate([]byte(`{"title": "hello"}`))
	require.Error(t, err)

	var apiErr *models.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "errors.validationError", apiErr.ErrCode)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, []any{"title", "body"}, apiErr.Context["required"])
	assert.Contains(t, apiErr.Context["properties"], "title")
}

func TestValidate_WrongType(t *testing.T) {
	s := MustCompile(articleSchema)

	err := s.Validate([]byte(`{"title": 1, "body": "world"}`))
	require.Error(t, err)

	var apiErr *models.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "errors.validationError", apiErr.ErrCode)
}

func TestValidate_NotJSON(t *testing.T) {
	s := MustCompile(articleSchema)

	err := s.Validate([]byte("{broken"))
	require.Error(t, err)

	var apiErr *models.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "errors.badRequest", apiErr.ErrCode)
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("{broken") })
}
