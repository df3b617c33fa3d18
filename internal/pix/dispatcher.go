// Package pix routes payment operations to whichever gateway the caller has
// marked active. It is the only place that knows about the "active
// configuration" concept; handlers and adapters stay ignorant of it.
package pix

import (
	"context"
	"errors"
	"strings"

	"pixgate/internal/gateway"
	"pixgate/internal/store"

	"go.uber.org/zap"
)

var (
	ErrNoActiveProvider     = errors.New("no active payment provider configured")
	ErrMissingTransactionID = errors.New("transaction id is required")
)

// ConfigSource yields the caller's active provider configuration. Satisfied
// by store.ProvidersStore.
type ConfigSource interface {
	GetActive(ctx context.Context, userID int64) (*store.ProviderConfig, error)
}

type Dispatcher struct {
	configs  ConfigSource
	gateways *gateway.Manager
	logger   *zap.SugaredLogger
}

func NewDispatcher(configs ConfigSource, gateways *gateway.Manager, logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		configs:  configs,
		gateways: gateways,
		logger:   logger,
	}
}

// resolve re-reads the active configuration on every call and picks its
// adapter. No caching: activation may change between calls.
func (d *Dispatcher) resolve(ctx context.Context, userID int64) (gateway.Gateway, *store.ProviderConfig, error) {
	cfg, err := d.configs.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrNoActiveProvider
		}
		return nil, nil, err
	}

	gw, err := d.gateways.Gateway(string(cfg.Type))
	if err != nil {
		return nil, nil, err
	}
	return gw, cfg, nil
}

func (d *Dispatcher) CreatePayment(ctx context.Context, userID int64, amount float64) (gateway.Charge, error) {
	gw, cfg, err := d.resolve(ctx, userID)
	if err != nil {
		return gateway.Charge{}, err
	}

	charge, err := gw.CreateCharge(ctx, credentialsOf(cfg), gateway.ChargeRequest{
		UserID: userID,
		Amount: amount,
	})
	if err != nil {
		d.logger.Errorw("create charge failed", "provider", cfg.Type, "user_id", userID, "error", err)
		return gateway.Charge{}, err
	}
	return charge, nil
}

func (d *Dispatcher) CheckPayment(ctx context.Context, userID int64, transactionID string) (gateway.ChargeStatus, error) {
	if strings.TrimSpace(transactionID) == "" {
		return gateway.ChargeStatus{}, ErrMissingTransactionID
	}

	gw, cfg, err := d.resolve(ctx, userID)
	if err != nil {
		return gateway.ChargeStatus{}, err
	}

	status, err := gw.ChargeStatus(ctx, credentialsOf(cfg), transactionID)
	if err != nil {
		d.logger.Errorw("charge status failed", "provider", cfg.Type, "user_id", userID, "error", err)
		return gateway.ChargeStatus{}, err
	}
	return status, nil
}

func credentialsOf(cfg *store.ProviderConfig) gateway.Credentials {
	return gateway.Credentials{
		PublicKey: cfg.PublicKey,
		SecretKey: cfg.SecretKey,
		Token:     cfg.Token,
	}
}
