package store

import (
	"context"

	"github.com/restgen/restgen/internal/query"
	"github.com/restgen/restgen/models"
)

// UserRepository is the read-only view of the external identity store. The
// framework resolves token subjects and login credentials through it; it
// never creates or mutates accounts.
type UserRepository interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// ResourceRepository persists generic resource documents. One repository
// serves all resources; rows are partitioned by resource name.
type ResourceRepository interface {
	Filter(ctx context.Context, resource string, spec query.Spec) ([]models.Document, error)
	Get(ctx context.Context, resource, id string) (models.Document, error)
	Insert(ctx context.Context, resource string, document models.Document) error
	Update(ctx context.Context, resource, id string, document models.Document) error
	Delete(ctx context.Context, resource, id string) error
}
