// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/query"
	"github.com/restgen/restgen/models"
)

// resourceRepository is the SQL-backed implementation of
// [ResourceRepository]. Documents of every resource live in a single
// "documents" table, partitioned by the resource column, with the payload
// stored as JSON in the body column. Filter statements are built dynamically
// with squirrel from the parsed query specification.
type resourceRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewResourceRepository constructs a [ResourceRepository] backed by the
// provided database connection and logger.
func NewResourceRepository(db *DB, logger *logger.Logger) ResourceRepository {
	logger.Debug().Msg("creating resource repository")
	return &resourceRepository{
		db:     db,
		logger: logger,
	}
}

// Filter returns the documents of resource matching spec, in the spec's sort
// order (insertion order when no sort is given), honoring limit and skip.
// The spec's select projection is applied after decoding.
func (r *resourceRepository) Filter(ctx context.Context, resource string, spec query.Spec) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select("body").
		From("documents").
		Where(sq.Eq{"resource": resource}).
		PlaceholderFormat(r.db.dialect.placeholder())

	// Conjunction order does not affect semantics; fields are sorted so the
	// generated statement is deterministic.
	for _, field := range sortedFields(spec.Where) {
		expr, err := r.db.dialect.jsonField(field)
		if err != nil {
			return nil, err
		}
		builder = builder.Where(expr+" = ?", r.db.dialect.filterArg(spec.Where[field]))
	}

	if len(spec.Sort) == 0 {
		builder = builder.OrderBy("created_at ASC")
	}
	for _, sortField := range spec.Sort {
		expr, err := r.db.dialect.jsonField(sortField.Field)
		if err != nil {
			return nil, err
		}
		direction := " ASC"
		if sortField.Descending {
			direction = " DESC"
		}
		builder = builder.OrderBy(expr + direction)
	}

	if spec.Limit > 0 {
		builder = builder.Limit(spec.Limit)
	}
	if spec.Skip > 0 {
		builder = builder.Offset(spec.Skip)
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("resource", resource).Msg("error building filter query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).Str("resource", resource).Msg("error executing filter query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	documents := make([]models.Document, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		var document models.Document
		if err := json.Unmarshal(body, &document); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		documents = append(documents, spec.Project(document))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return documents, nil
}

// Get retrieves a single document by id. Returns [ErrResourceNotFound] when
// no document with that id exists for the resource.
func (r *resourceRepository) Get(ctx context.Context, resource, id string) (models.Document, error) {
	sqlQuery, args, err := sq.Select("body").
		From("documents").
		Where(sq.Eq{"resource": resource, "id": id}).
		PlaceholderFormat(r.db.dialect.placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var body []byte
	err = r.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&body)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrResourceNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var document models.Document
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return document, nil
}

// Insert persists a new document. The document's _id field supplies the row
// id. Returns [ErrResourceAlreadyExists] on an id collision.
func (r *resourceRepository) Insert(ctx context.Context, resource string, document models.Document) error {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	now := time.Now().UTC()
	sqlQuery, args, err := sq.Insert("documents").
		Columns("resource", "id", "body", "created_at", "updated_at").
		Values(resource, document.ID(), r.db.dialect.jsonValue(body), now, now).
		PlaceholderFormat(r.db.dialect.placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, sqlQuery, args...); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrResourceAlreadyExists
		}
		log.Err(err).Str("resource", resource).Msg("error inserting document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Update replaces the stored body of the document with the given id.
// Returns [ErrResourceNotFound] when the id does not exist.
func (r *resourceRepository) Update(ctx context.Context, resource, id string, document models.Document) error {
	body, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	sqlQuery, args, err := sq.Update("documents").
		Set("body", r.db.dialect.jsonValue(body)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"resource": resource, "id": id}).
		PlaceholderFormat(r.db.dialect.placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingRow(ctx, sqlQuery, args)
}

// Delete removes the document with the given id. Returns
// [ErrResourceNotFound] when the id does not exist.
func (r *resourceRepository) Delete(ctx context.Context, resource, id string) error {
	sqlQuery, args, err := sq.Delete("documents").
		Where(sq.Eq{"resource": resource, "id": id}).
		PlaceholderFormat(r.db.dialect.placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingRow(ctx, sqlQuery, args)
}

// execExpectingRow runs a statement that must affect exactly one row and
// normalises "no rows affected" to [ErrResourceNotFound].
func (r *resourceRepository) execExpectingRow(ctx context.Context, sqlQuery string, args []any) error {
	result, err := r.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

func sortedFields(where map[string]any) []string {
	fields := make([]string, 0, len(where))
	for field := range where {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
