package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateName     = errors.New("a provider configuration with this name already exists for this user")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Users interface {
		Create(context.Context, *User) error
		GetByToken(context.Context, string) (*User, error)
	}
	Providers interface {
		Create(context.Context, *ProviderConfig) error
		ListByUser(context.Context, int64) ([]ProviderConfig, error)
		GetActive(context.Context, int64) (*ProviderConfig, error)
		SetActive(ctx context.Context, userID, configID int64) error
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Users:     &UsersStore{db},
		Providers: &ProvidersStore{db},
	}
}

// Migrate creates the schema on startup when it does not exist yet, so a
// fresh database (or a serverless cold start) is usable without a separate
// migration step.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*30)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			auth_token VARCHAR(255) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS provider_configs (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users (id),
			name VARCHAR(255) NOT NULL,
			type VARCHAR(255) NOT NULL,
			public_key TEXT NOT NULL DEFAULT '',
			secret_key TEXT NOT NULL DEFAULT '',
			token TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE (user_id, name)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
