package db

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v4/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

const databaseName = "PostgreSQL"

// ApplyMigrations brings the schema at connString up to date.
func ApplyMigrations(connString string) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("could not read migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, connString)
	if err != nil {
		return fmt.Errorf("could not connect to DB for applying migrations: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply DB migrations: %w", err)
	}
	return nil
}

func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	return pgxpool.Connect(ctx, connString)
}

// Pinger reports the health of a pgx pool.
type Pinger struct {
	pool *pgxpool.Pool
}

func NewPinger(pool *pgxpool.Pool) *Pinger {
	if pool == nil {
		panic("Argument pool must not be nil.")
	}
	return &Pinger{pool: pool}
}

func (p *Pinger) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Pinger) Name() string {
	return databaseName
}
