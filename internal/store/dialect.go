// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"
)

// dialect abstracts the SQL differences between the supported drivers:
// placeholder style, JSON field extraction, and how a JSON document value is
// bound as a statement argument.
type dialect interface {
	// placeholder returns the squirrel placeholder format for the driver.
	placeholder() sq.PlaceholderFormat

	// jsonField returns a SQL expression extracting the named top-level field
	// of the body column as a comparable value. Fails with
	// [ErrInvalidFilterField] when field is not a plain identifier, since the
	// expression is interpolated into the statement text.
	jsonField(field string) (string, error)

	// jsonValue wraps serialized document bytes so they bind to the body
	// column's type.
	jsonValue(body []byte) any

	// filterArg converts a decoded JSON where-value into the argument form
	// the jsonField expression compares against.
	filterArg(value any) any
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "pgx":
		return postgresDialect{}, nil
	case "sqlite3":
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// fieldNamePattern accepts plain identifiers only. Anything else is rejected
// before it can reach statement text.
var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkFieldName(field string) error {
	if !fieldNamePattern.MatchString(field) {
		return fmt.Errorf("%w: %q", ErrInvalidFilterField, field)
	}
	return nil
}

type postgresDialect struct{}

func (postgresDialect) placeholder() sq.PlaceholderFormat { return sq.Dollar }

func (postgresDialect) jsonField(field string) (string, error) {
	if err := checkFieldName(field); err != nil {
		return "", err
	}
	return fmt.Sprintf("body ->> '%s'", field), nil
}

func (postgresDialect) jsonValue(body []byte) any {
	return sq.Expr("?::jsonb", string(body))
}

// filterArg renders the value as text because the ->> operator yields text.
func (postgresDialect) filterArg(value any) any {
	return fmt.Sprint(value)
}

type sqliteDialect struct{}

func (sqliteDialect) placeholder() sq.PlaceholderFormat { return sq.Question }

func (sqliteDialect) jsonField(field string) (string, error) {
	if err := checkFieldName(field); err != nil {
		return "", err
	}
	return fmt.Sprintf("json_extract(body, '$.%s')", field), nil
}

func (sqliteDialect) jsonValue(body []byte) any {
	return string(body)
}

// filterArg passes the value through; json_extract preserves JSON types.
func (sqliteDialect) filterArg(value any) any {
	return value
}
