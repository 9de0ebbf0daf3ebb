package repomanager

import (
	"context"

	"github.com/legalchicks/lcen-portal/internal/server/repositories/business"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps every store in process memory. Data is lost
// on restart.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	business *business.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		business: business.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) SeedUsers(ctx context.Context, hasher users.PasswordHasher, members []users.SeedMember) (int, error) {
	return users.Seed(ctx, m.users, hasher, members)
}

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) Business() business.Repository { return m.business }

func (m *MemoryRepositoryManager) Close() error { return nil }
