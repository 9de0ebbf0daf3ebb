// Package models defines the server-side records of the portal.
package models

import (
	"time"

	"github.com/legalchicks/lcen-portal/internal/common"
)

// User is a member record as held by the credential store. PasswordHash is
// an argon2id PHC string and never leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         common.Role
	Visibility   common.Visibility
	CreatedAt    time.Time
}

// PublicUser is the wire form of a user: everything except the password.
type PublicUser struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Role       common.Role       `json:"role"`
	Visibility common.Visibility `json:"visibility"`
}

// Public strips the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Visibility: u.Visibility,
	}
}

// UserUpdate carries the profile fields a member may change. Nil fields are
// left alone.
type UserUpdate struct {
	Name       *string
	Email      *string
	Visibility *common.Visibility
}

// Apply copies the set fields of upd onto u.
func (u *User) Apply(upd UserUpdate) {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Visibility != nil {
		u.Visibility = *upd.Visibility
	}
}
