package repomanager

import (
	"context"

	"github.com/legalchicks/lcen-portal/internal/server/repositories/business"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/users"
)

// RepositoryManager hands out the single shared instance of each store.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// SeedUsers inserts the members that are not stored yet and returns
	// how many were added.
	SeedUsers(ctx context.Context, hasher users.PasswordHasher, members []users.SeedMember) (int, error)
	Users() users.Repository
	Business() business.Repository
	Close() error
}
