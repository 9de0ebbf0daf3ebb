package session

import (
	"context"
	"sync"

	"github.com/legalchicks/lcen-portal/internal/client/client"
	"github.com/legalchicks/lcen-portal/internal/client/models"
)

// fakeAPI implements client.Client; unset funcs panic if called.
type fakeAPI struct {
	client.Client

	login    func(ctx context.Context, email, password string) (*models.AuthResponse, error)
	register func(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
	verify   func(ctx context.Context, token string) (*models.User, error)
	update   func(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)

	mu          sync.Mutex
	verifyCalls int
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	return f.register(ctx, name, email, password)
}

func (f *fakeAPI) Verify(ctx context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	f.verifyCalls++
	f.mu.Unlock()
	return f.verify(ctx, token)
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	return f.update(ctx, id, upd)
}

type recordingNav struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNav) Navigate(path string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
	return nil
}

func (n *recordingNav) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}
