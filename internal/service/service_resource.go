// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/query"
	"github.com/restgen/restgen/internal/schema"
	"github.com/restgen/restgen/internal/store"
	"github.com/restgen/restgen/models"
)

// resourceService is the generic ResourceService implementation backing
// descriptors that do not bring their own. It validates incoming bodies
// against the descriptor's JSON-Schema, stamps system fields, runs the
// descriptor's pipeline hooks, and persists documents through a
// ResourceRepository under the resource's name.
type resourceService struct {
	// resource is the name documents are stored under.
	resource string

	documents store.ResourceRepository
	logger    *logger.Logger
}

// NewResourceService constructs the generic ResourceService for one resource.
// One instance is created per descriptor at startup and shared read-only by
// all of its generated handlers.
func NewResourceService(resource string, documents store.ResourceRepository, logger *logger.Logger) ResourceService {
	return &resourceService{
		resource:  resource,
		documents: documents,
		logger:    logger,
	}
}

func (s *resourceService) Filter(ctx context.Context, spec query.Spec) ([]models.Document, error) {
	found, err := s.documents.Filter(ctx, s.resource, spec)
	if err != nil {
		return nil, fmt.Errorf("filtering %s documents failed: %w", s.resource, err)
	}

	return found, nil
}

func (s *resourceService) Get(ctx context.Context, id string) (models.Document, error) {
	return s.documents.Get(ctx, s.resource, id)
}

// Create validates body against createSchema, decodes it, stamps the id and
// creation bookkeeping fields, runs the create hooks around the insert, and
// returns the stored document.
func (s *resourceService) Create(ctx context.Context, user models.User, body []byte, createSchema *schema.Schema, pipeline Pipeline) (models.Document, error) {
	log := logger.FromContext(ctx)

	if createSchema != nil {
		if err := createSchema.Validate(body); err != nil {
			return nil, err
		}
	}

	document, err := decodeDocument(body)
	if err != nil {
		return nil, err
	}

	if document.ID() == "" {
		document[models.DocumentFieldID] = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	document[models.DocumentFieldCreatedAt] = now
	document[models.DocumentFieldCreatedBy] = user.Email

	document, err = run(ctx, pipeline.BeforeCreate, user, document)
	if err != nil {
		return nil, fmt.Errorf("before-create hook failed: %w", err)
	}

	if err = s.documents.Insert(ctx, s.resource, document); err != nil {
		log.Err(err).Str("resource", s.resource).Str("id", document.ID()).Msg("document insert failed")
		return nil, err
	}

	document, err = run(ctx, pipeline.AfterCreate, user, document)
	if err != nil {
		return nil, fmt.Errorf("after-create hook failed: %w", err)
	}

	return document, nil
}

// Update validates body against updateSchema, merges the provided fields over
// the stored document, stamps the modification bookkeeping fields, and runs
// the update hooks around the write. Fields absent from body keep their
// stored values; the document id cannot be changed.
func (s *resourceService) Update(ctx context.Context, user models.User, id string, body []byte, updateSchema *schema.Schema, pipeline Pipeline) (models.Document, error) {
	log := logger.FromContext(ctx)

	if updateSchema != nil {
		if err := updateSchema.Validate(body); err != nil {
			return nil, err
		}
	}

	changes, err := decodeDocument(body)
	if err != nil {
		return nil, err
	}

	document, err := s.documents.Get(ctx, s.resource, id)
	if err != nil {
		return nil, err
	}

	for field, value := range changes {
		document[field] = value
	}
	document[models.DocumentFieldID] = id
	document[models.DocumentFieldModifiedAt] = time.Now().UTC().Format(time.RFC3339)
	document[models.DocumentFieldModifiedBy] = user.Email

	document, err = run(ctx, pipeline.BeforeUpdate, user, document)
	if err != nil {
		return nil, fmt.Errorf("before-update hook failed: %w", err)
	}

	if err = s.documents.Update(ctx, s.resource, id, document); err != nil {
		log.Err(err).Str("resource", s.resource).Str("id", id).Msg("document update failed")
		return nil, err
	}

	document, err = run(ctx, pipeline.AfterUpdate, user, document)
	if err != nil {
		return nil, fmt.Errorf("after-update hook failed: %w", err)
	}

	return document, nil
}

// Delete removes the document with the given id, running the delete hooks
// with the stored document so they can inspect what is being removed.
func (s *resourceService) Delete(ctx context.Context, id string, pipeline Pipeline) error {
	document, err := s.documents.Get(ctx, s.resource, id)
	if err != nil {
		return err
	}

	if _, err = run(ctx, pipeline.BeforeDelete, models.User{}, document); err != nil {
		return fmt.Errorf("before-delete hook failed: %w", err)
	}

	if err = s.documents.Delete(ctx, s.resource, id); err != nil {
		return err
	}

	if _, err = run(ctx, pipeline.AfterDelete, models.User{}, document); err != nil {
		return fmt.Errorf("after-delete hook failed: %w", err)
	}

	return nil
}

func decodeDocument(body []byte) (models.Document, error) {
	var document models.Document
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if document == nil {
		document = models.Document{}
	}

	return document, nil
}
