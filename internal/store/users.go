package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	// AuthToken is the opaque bearer token handed out at registration.
	AuthToken string `json:"-"`
}

type UsersStore struct {
	db *pgxpool.Pool
}

func (s *UsersStore) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (username, auth_token) VALUES ($1, $2) RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := s.db.QueryRow(ctx, query, user.Username, user.AuthToken).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (s *UsersStore) GetByToken(ctx context.Context, token string) (*User, error) {
	query := `
		SELECT id, username FROM users WHERE auth_token = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	user := &User{AuthToken: token}
	err := s.db.QueryRow(ctx, query, token).Scan(&user.ID, &user.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
