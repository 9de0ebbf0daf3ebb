package client

import (
	"context"

	"github.com/legalchicks/lcen-portal/internal/client/models"
)

// Client is the portal API as seen by the client.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
	Verify(ctx context.Context, token string) (*models.User, error)

	Members(ctx context.Context) ([]models.User, error)
	Profile(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)

	Invoices(ctx context.Context) ([]models.Invoice, error)
	Expenses(ctx context.Context) ([]models.Expense, error)
	AddExpense(ctx context.Context, e models.NewExpense) (*models.Expense, error)
	Profitability(ctx context.Context) (*models.Profitability, error)
	Analytics(ctx context.Context) (*models.Analytics, error)

	Health(ctx context.Context) error
}

// TokenSource returns the bearer token to attach, or "" for none.
type TokenSource func(ctx context.Context) string
