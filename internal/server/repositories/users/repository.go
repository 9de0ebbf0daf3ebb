// Package users declares the credential store contract and its memory and
// PostgreSQL implementations.
package users

import (
	"context"

	"github.com/legalchicks/lcen-portal/internal/server/models"
)

// Repository is the credential store. Email matching is exact
// (case-sensitive). Implementations return common.ErrorNotFound for missing
// records and common.ErrEmailExists when an insert or update would duplicate
// an email. Returned users are copies; mutating them does not touch the store.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)

	// Insert adds user unless its email is taken. The existence check and
	// the insert are one atomic step.
	Insert(ctx context.Context, user *models.User) (*models.User, error)

	Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
}
