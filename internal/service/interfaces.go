// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/restgen/restgen/internal/query"
	"github.com/restgen/restgen/internal/schema"
	"github.com/restgen/restgen/models"
)

// TokenService issues and refreshes bearer tokens.
type TokenService interface {
	// Craft exchanges credentials for a signed token. Fails with
	// ErrInvalidCredentials when the email is unknown or the password does
	// not match the stored hash.
	Craft(ctx context.Context, credentials models.Credentials) (string, error)

	// Refresh issues a brand-new token for an already-authenticated user,
	// with a fresh expiry. The prior token stays valid until it expires.
	Refresh(ctx context.Context, user models.User) (string, error)
}

// ResourceService is the delegate behind a set of generated resource
// endpoints. The generic implementation persists documents through a
// ResourceRepository; descriptors may supply any other implementation.
type ResourceService interface {
	Filter(ctx context.Context, spec query.Spec) ([]models.Document, error)
	Get(ctx context.Context, id string) (models.Document, error)
	Create(ctx context.Context, user models.User, body []byte, createSchema *schema.Schema, pipeline Pipeline) (models.Document, error)
	Update(ctx context.Context, user models.User, id string, body []byte, updateSchema *schema.Schema, pipeline Pipeline) (models.Document, error)
	Delete(ctx context.Context, id string, pipeline Pipeline) error
}
