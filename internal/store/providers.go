package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres unique_violation.
const pgerrUniqueViolation = "23505"

type ProviderType string

const (
	ProviderOasyfy    ProviderType = "oasyfy"
	ProviderPushinPay ProviderType = "pushinpay"
	ProviderGhostPay  ProviderType = "ghostpay"
)

// ProviderConfig holds one named set of gateway credentials for a user.
// Which credential columns are populated depends on the provider type; the
// others stay empty and are never validated.
type ProviderConfig struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"-"`
	Name      string       `json:"name"`
	Type      ProviderType `json:"type"`
	PublicKey string       `json:"-"`
	SecretKey string       `json:"-"`
	Token     string       `json:"-"`
	IsActive  bool         `json:"is_active"`
}

type ProvidersStore struct {
	db *pgxpool.Pool
}

func (s *ProvidersStore) Create(ctx context.Context, cfg *ProviderConfig) error {
	query := `
		INSERT INTO provider_configs (user_id, name, type, public_key, secret_key, token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := s.db.QueryRow(
		ctx, query, cfg.UserID, cfg.Name, cfg.Type, cfg.PublicKey, cfg.SecretKey, cfg.Token,
	).Scan(&cfg.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}

func (s *ProvidersStore) ListByUser(ctx context.Context, userID int64) ([]ProviderConfig, error) {
	query := `
		SELECT id, name, type, is_active
		FROM provider_configs
		WHERE user_id = $1
		ORDER BY id ASC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configs := []ProviderConfig{}
	for rows.Next() {
		cfg := ProviderConfig{UserID: userID}
		if err := rows.Scan(&cfg.ID, &cfg.Name, &cfg.Type, &cfg.IsActive); err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}

// GetActive returns the single configuration currently flagged active for
// the user, or ErrNotFound when none is. Callers must not cache the result:
// activation can change between payment calls.
func (s *ProvidersStore) GetActive(ctx context.Context, userID int64) (*ProviderConfig, error) {
	query := `
		SELECT id, name, type, public_key, secret_key, token
		FROM provider_configs
		WHERE user_id = $1 AND is_active = TRUE
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cfg := &ProviderConfig{UserID: userID, IsActive: true}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&cfg.ID, &cfg.Name, &cfg.Type, &cfg.PublicKey, &cfg.SecretKey, &cfg.Token,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cfg, nil
}

// SetActive deactivates every configuration the user owns and activates the
// one identified by configID, in a single transaction. Concurrent calls for
// the same user serialize on the row locks, so readers never see zero or two
// active rows persist. When configID does not belong to the user nothing is
// committed and ErrNotFound is returned.
func (s *ProvidersStore) SetActive(ctx context.Context, userID, configID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE provider_configs SET is_active = FALSE WHERE user_id = $1`, userID,
	); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE provider_configs SET is_active = TRUE WHERE id = $1 AND user_id = $2`,
		configID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
