package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DatabaseConfig holds postgres connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// NewDB opens and pings a postgres connection.
func NewDB(cfg DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

type postgresAdapter struct {
	db *sqlx.DB
}

// NewPostgresAdapter stores each collection as a JSONB row in a single
// key/value table, matching the load/save contract.
func NewPostgresAdapter(db *sqlx.DB) (Adapter, error) {
	schema := `
		CREATE TABLE IF NOT EXISTS collections (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure collections table: %w", err)
	}
	return &postgresAdapter{db: db}, nil
}

func (a *postgresAdapter) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	query := `SELECT data FROM collections WHERE key = $1`
	err := a.db.GetContext(ctx, &data, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", key, err)
	}
	return data, nil
}

func (a *postgresAdapter) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO collections (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`
	if _, err := a.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to save collection %s: %w", key, err)
	}
	return nil
}
