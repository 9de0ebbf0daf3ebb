// Package services holds the portal's server-side use cases: authentication,
// member profiles, the business ledger and flock analytics.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/legalchicks/lcen-portal/internal/common"
	"github.com/legalchicks/lcen-portal/internal/logging"
	"github.com/legalchicks/lcen-portal/internal/server/audit"
	"github.com/legalchicks/lcen-portal/internal/server/auth"
	"github.com/legalchicks/lcen-portal/internal/server/models"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/users"
)

// PasswordHasher is satisfied by *cryptox.Hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(encoded, password string) (bool, error)
	CompareDummy(password string)
}

// TokenCodec is satisfied by *auth.TokenCodec.
type TokenCodec interface {
	Issue(s auth.Subject) (string, error)
	Verify(token string) (*auth.Subject, error)
}

// AuthResult is returned by a successful login or registration.
type AuthResult struct {
	Token string
	User  models.PublicUser
}

type AuthService struct {
	users  users.Repository
	codec  TokenCodec
	hasher PasswordHasher
	sink   audit.Sink
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

func NewAuthService(repo users.Repository, codec TokenCodec, hasher PasswordHasher, sink audit.Sink, logger logging.Logger) *AuthService {
	return &AuthService{
		users:  repo,
		codec:  codec,
		hasher: hasher,
		sink:   sink,
		logger: logger.With("module", "auth"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *AuthService) record(ctx context.Context, action audit.Action, email string, code audit.Code, userID string, cause error) {
	if email == "" {
		email = audit.EmailNotProvided
	}
	e := audit.Event{
		Timestamp: s.now().UTC(),
		Action:    action,
		Email:     email,
		IP:        audit.ClientIP(ctx),
		Code:      code,
		UserID:    userID,
	}
	if cause != nil {
		e.Error = cause.Error()
	}
	s.sink.Emit(ctx, e)
}

func (s *AuthService) issue(u *models.User) (string, error) {
	return s.codec.Issue(auth.Subject{UserID: u.ID, Email: u.Email, Role: u.Role})
}

// Login checks email and password. Unknown email and wrong password both
// yield common.ErrInvalidCredentials after equivalent hashing work.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		s.record(ctx, audit.ActionLogin, email, audit.CodeMissingFields, "", nil)
		return nil, common.ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			s.record(ctx, audit.ActionLogin, email, audit.CodeUserNotFound, "", nil)
			return nil, common.ErrInvalidCredentials
		}
		s.record(ctx, audit.ActionLogin, email, audit.CodeServerError, "", err)
		return nil, fmt.Errorf("%w: find user: %v", common.ErrorInternal, err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		s.record(ctx, audit.ActionLogin, email, audit.CodeServerError, user.ID, err)
		return nil, fmt.Errorf("%w: compare password: %v", common.ErrorInternal, err)
	}
	if !ok {
		s.record(ctx, audit.ActionLogin, email, audit.CodeInvalidPassword, user.ID, nil)
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		s.record(ctx, audit.ActionLogin, email, audit.CodeServerError, user.ID, err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.record(ctx, audit.ActionLogin, email, audit.CodeLoginSuccess, user.ID, nil)
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Register creates a member account with public visibility and logs it in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		s.record(ctx, audit.ActionRegister, email, audit.CodeMissingFields, "", nil)
		return nil, common.ErrMissingFields
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.record(ctx, audit.ActionRegister, email, audit.CodeServerError, "", err)
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	user, err := s.users.Insert(ctx, &models.User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         common.RoleMember,
		Visibility:   common.VisibilityPublic,
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailExists) {
			s.record(ctx, audit.ActionRegister, email, audit.CodeEmailExists, "", nil)
			return nil, common.ErrEmailExists
		}
		s.record(ctx, audit.ActionRegister, email, audit.CodeServerError, "", err)
		return nil, fmt.Errorf("%w: insert user: %v", common.ErrorInternal, err)
	}

	token, err := s.issue(user)
	if err != nil {
		s.record(ctx, audit.ActionRegister, email, audit.CodeServerError, user.ID, err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "member registered", "user_id", user.ID)
	s.record(ctx, audit.ActionRegister, email, audit.CodeRegisterSuccess, user.ID, nil)
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Verify resolves token to the current user record. Unlike the request
// gate it also requires the subject to still exist.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.PublicUser, error) {
	if token == "" {
		s.record(ctx, audit.ActionVerify, "", audit.CodeNoToken, "", nil)
		return nil, common.ErrNoToken
	}

	subject, err := s.codec.Verify(token)
	if err != nil {
		code := audit.CodeInvalidToken
		if errors.Is(err, common.ErrTokenExpired) {
			code = audit.CodeTokenExpired
		}
		s.record(ctx, audit.ActionVerify, "", code, "", err)
		return nil, err
	}

	user, err := s.users.FindByID(ctx, subject.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.record(ctx, audit.ActionVerify, subject.Email, audit.CodeUserNotFound, subject.UserID, nil)
			return nil, common.ErrUserNotFound
		}
		s.record(ctx, audit.ActionVerify, subject.Email, audit.CodeServerError, subject.UserID, err)
		return nil, fmt.Errorf("%w: find user: %v", common.ErrorInternal, err)
	}

	s.record(ctx, audit.ActionVerify, user.Email, audit.CodeVerifySuccess, user.ID, nil)
	pub := user.Public()
	return &pub, nil
}
