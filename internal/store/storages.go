package store

import "github.com/restgen/restgen/internal/logger"

// Storages bundles the repositories the service layer depends on.
type Storages struct {
	UserRepository     UserRepository
	ResourceRepository ResourceRepository
}

// NewStorages constructs all repositories over a single database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, logger),
		ResourceRepository: NewResourceRepository(db, logger),
	}
}
