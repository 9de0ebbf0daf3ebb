package services

import (
	"context"
	"testing"
	"time"

	"github.com/legalchicks/lcen-portal/internal/cryptox"
	"github.com/legalchicks/lcen-portal/internal/logging"
	"github.com/legalchicks/lcen-portal/internal/server/audit"
	"github.com/legalchicks/lcen-portal/internal/server/auth"
	"github.com/legalchicks/lcen-portal/internal/server/models"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var cheapParams = cryptox.Params{Time: 1, MemoryKiB: 64, Threads: 1, SaltLen: 16, KeyLen: 32}

type fixture struct {
	repo   *users.MemoryRepository
	codec  *auth.TokenCodec
	hasher *cryptox.Hasher
	rec    *audit.Recorder
	auth   *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hasher, err := cryptox.NewHasher(cheapParams)
	require.NoError(t, err)
	codec, err := auth.NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	repo := users.NewMemoryRepository()
	_, err = users.Seed(context.Background(), repo, hasher, users.DefaultSeed)
	require.NoError(t, err)

	rec := &audit.Recorder{}
	return &fixture{
		repo:   repo,
		codec:  codec,
		hasher: hasher,
		rec:    rec,
		auth:   NewAuthService(repo, codec, hasher, rec, logging.Nop{}),
	}
}

// failingRepo fails every call with err.
type failingRepo struct {
	err error
}

func (f failingRepo) FindByEmail(context.Context, string) (*models.User, error) { return nil, f.err }
func (f failingRepo) FindByID(context.Context, string) (*models.User, error)    { return nil, f.err }
func (f failingRepo) List(context.Context) ([]*models.User, error)              { return nil, f.err }
func (f failingRepo) Insert(context.Context, *models.User) (*models.User, error) {
	return nil, f.err
}
func (f failingRepo) Update(context.Context, string, models.UserUpdate) (*models.User, error) {
	return nil, f.err
}
