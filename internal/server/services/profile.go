package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/legalchicks/lcen-portal/internal/common"
	"github.com/legalchicks/lcen-portal/internal/server/models"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/users"
)

// ProfileChanges is a partial profile update. Empty strings mean "keep".
type ProfileChanges struct {
	Name       string
	Email      string
	Visibility string
}

type ProfileService struct {
	users users.Repository
}

func NewProfileService(repo users.Repository) *ProfileService {
	return &ProfileService{users: repo}
}

// Members lists every member without password hashes.
func (s *ProfileService) Members(ctx context.Context) ([]models.PublicUser, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", common.ErrorInternal, err)
	}
	out := make([]models.PublicUser, 0, len(all))
	for _, u := range all {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *ProfileService) Profile(ctx context.Context, id string) (*models.PublicUser, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

func (s *ProfileService) find(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", common.ErrorInternal, err)
	}
	return u, nil
}

// UpdateProfile applies changes to targetID on behalf of actorID. Only the
// owner or an admin may update; a rejected request leaves the record as is.
func (s *ProfileService) UpdateProfile(ctx context.Context, actorID, targetID string, changes ProfileChanges) (*models.PublicUser, error) {
	if _, err := s.find(ctx, targetID); err != nil {
		return nil, err
	}

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: find actor: %v", common.ErrorInternal, err)
	}
	if actor == nil || (actor.Role != common.RoleAdmin && actor.ID != targetID) {
		return nil, common.ErrForbidden
	}

	var upd models.UserUpdate
	if changes.Name != "" {
		upd.Name = &changes.Name
	}
	if changes.Email != "" {
		upd.Email = &changes.Email
	}
	if changes.Visibility != "" {
		v := common.Visibility(changes.Visibility)
		if !v.IsValid() {
			return nil, fmt.Errorf("%w: visibility must be public or private", common.ErrValidation)
		}
		upd.Visibility = &v
	}

	u, err := s.users.Update(ctx, targetID, upd)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmailExists):
			return nil, common.ErrEmailExists
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: update user: %v", common.ErrorInternal, err)
	}
	pub := u.Public()
	return &pub, nil
}
