package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/legalchicks/lcen-portal/internal/common"
	"github.com/legalchicks/lcen-portal/internal/server/models"
)

// SeedMember is a demo account created at startup. Password is the
// plaintext demo password; only its hash is stored.
type SeedMember struct {
	ID         string
	Name       string
	Email      string
	Password   string
	Role       common.Role
	Visibility common.Visibility
}

// DefaultSeed is the demo membership the portal ships with.
var DefaultSeed = []SeedMember{
	{ID: "1", Name: "Admin User", Email: "admin@legalchicks.vip", Password: "admin", Role: common.RoleAdmin, Visibility: common.VisibilityPublic},
	{ID: "2", Name: "Alice Johnson", Email: "alice.j@example.com", Password: "password", Role: common.RoleMember, Visibility: common.VisibilityPublic},
	{ID: "3", Name: "Brenda Smith", Email: "brenda.s@example.com", Password: "password", Role: common.RoleMember, Visibility: common.VisibilityPublic},
	{ID: "4", Name: "Carla Davis", Email: "carla.d@example.com", Password: "password", Role: common.RoleMember, Visibility: common.VisibilityPrivate},
	{ID: "5", Name: "Diana Miller", Email: "diana.m@example.com", Password: "password", Role: common.RoleMember, Visibility: common.VisibilityPublic},
	{ID: "6", Name: "Eva Wilson", Email: "eva.w@example.com", Password: "password", Role: common.RoleMember, Visibility: common.VisibilityPrivate},
}

// PasswordHasher is the part of cryptox.Hasher seeding needs.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Seed inserts members that are not present yet. Existing accounts are left
// untouched, so seeding a persistent store twice is harmless.
// It returns the number of members inserted.
func Seed(ctx context.Context, repo Repository, hasher PasswordHasher, members []SeedMember) (int, error) {
	inserted := 0
	for _, m := range members {
		if _, err := repo.FindByEmail(ctx, m.Email); err == nil {
			continue
		} else if !errors.Is(err, common.ErrorNotFound) {
			return inserted, fmt.Errorf("seed %s: %w", m.Email, err)
		}

		hash, err := hasher.Hash(m.Password)
		if err != nil {
			return inserted, fmt.Errorf("seed %s: hash: %w", m.Email, err)
		}

		_, err = repo.Insert(ctx, &models.User{
			ID:           m.ID,
			Name:         m.Name,
			Email:        m.Email,
			PasswordHash: hash,
			Role:         m.Role,
			Visibility:   m.Visibility,
		})
		if err != nil {
			if errors.Is(err, common.ErrEmailExists) {
				continue
			}
			return inserted, fmt.Errorf("seed %s: %w", m.Email, err)
		}
		inserted++
	}
	return inserted, nil
}
