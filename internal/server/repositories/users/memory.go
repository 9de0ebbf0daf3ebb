package users

import (
	"context"
	"sync"
	"time"

	"github.com/legalchicks/lcen-portal/internal/common"
	"github.com/legalchicks/lcen-portal/internal/server/models"
)

// MemoryRepository keeps users for the lifetime of the process.
type MemoryRepository struct {
	mu    sync.RWMutex
	users []*models.User
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func clone(u *models.User) *models.User {
	cp := *u
	return &cp
}

func (r *MemoryRepository) indexByID(id string) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) indexByEmail(email string) int {
	for i, u := range r.users {
		if u.Email == email {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexByEmail(email)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	return clone(r.users[i]), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexByID(id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	return clone(r.users[i]), nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, clone(u))
	}
	return out, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexByEmail(user.Email) >= 0 || r.indexByID(user.ID) >= 0 {
		return nil, common.ErrEmailExists
	}

	stored := clone(user)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now().UTC()
	}
	r.users = append(r.users, stored)
	return clone(stored), nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByID(id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	if upd.Email != nil {
		if j := r.indexByEmail(*upd.Email); j >= 0 && j != i {
			return nil, common.ErrEmailExists
		}
	}

	r.users[i].Apply(upd)
	return clone(r.users[i]), nil
}
