// Package models defines the data the portal client receives from the API
// and keeps in local storage.
package models

import "github.com/legalchicks/lcen-portal/internal/common"

// User is the server's sanitized user object, as held in the session and
// persisted under the currentUser key.
type User struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Role       common.Role       `json:"role"`
	Visibility common.Visibility `json:"visibility"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == common.RoleAdmin
}

// AuthResponse is the body of login and register.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// VerifyResponse is the body of a successful token verification.
type VerifyResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user,omitempty"`
}

// ProfileUpdate lists the profile fields to change. Empty fields are left
// as they are.
type ProfileUpdate struct {
	Name       string            `json:"name,omitempty"`
	Email      string            `json:"email,omitempty"`
	Visibility common.Visibility `json:"visibility,omitempty"`
}
