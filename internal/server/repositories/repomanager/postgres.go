// Package repomanager selects and wires the storage backend: in-memory or
// PostgreSQL with goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/legalchicks/lcen-portal/internal/dbx"
	"github.com/legalchicks/lcen-portal/internal/server/migrations"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/business"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// PostgresRepositoryManager keeps users in PostgreSQL. The business ledger
// is demo data and stays in memory.
type PostgresRepositoryManager struct {
	db       *sql.DB
	users    *users.PostgresRepository
	business *business.MemoryRepository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{
		db:       db,
		users:    users.NewPostgresRepository(db),
		business: business.NewMemoryRepository(),
	}
}

// RunMigrations applies the embedded migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SeedUsers runs the whole seed in one transaction.
func (m *PostgresRepositoryManager) SeedUsers(ctx context.Context, hasher users.PasswordHasher, members []users.SeedMember) (int, error) {
	var n int
	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		n, err = users.Seed(ctx, users.NewPostgresRepository(tx), hasher, members)
		return err
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (m *PostgresRepositoryManager) Users() users.Repository { return m.users }

func (m *PostgresRepositoryManager) Business() business.Repository { return m.business }

func (m *PostgresRepositoryManager) Close() error { return m.db.Close() }

// New builds the manager for backend. For postgres it opens and pings dsn.
func New(ctx context.Context, backend, dsn string) (RepositoryManager, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryRepositoryManager(), nil
	case BackendPostgres:
		db, err := sqlOpen("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping db: %w", err)
		}
		return NewPostgresRepositoryManager(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
