package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"pixgate/internal/gateway"
	"pixgate/internal/pix"
	"pixgate/internal/ratelimiter"
	"pixgate/internal/store"

	"go.uber.org/zap"
)

type fakeUsersStore struct {
	mu    sync.Mutex
	seq   int64
	users []*store.User
}

func (f *fakeUsersStore) Create(ctx context.Context, user *store.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Username == user.Username {
			return store.ErrDuplicateUsername
		}
	}
	f.seq++
	user.ID = f.seq
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUsersStore) GetByToken(ctx context.Context, token string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.AuthToken == token {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeProvidersStore struct {
	mu      sync.Mutex
	seq     int64
	configs []*store.ProviderConfig
}

func (f *fakeProvidersStore) Create(ctx context.Context, cfg *store.ProviderConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.configs {
		if c.UserID == cfg.UserID && c.Name == cfg.Name {
			return store.ErrDuplicateName
		}
	}
	f.seq++
	cfg.ID = f.seq
	f.configs = append(f.configs, cfg)
	return nil
}

func (f *fakeProvidersStore) ListByUser(ctx context.Context, userID int64) ([]store.ProviderConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []store.ProviderConfig{}
	for _, c := range f.configs {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeProvidersStore) GetActive(ctx context.Context, userID int64) (*store.ProviderConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.configs {
		if c.UserID == userID && c.IsActive {
			cp := *c
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

// SetActive mirrors the store contract: the deactivate/activate pair is one
// atomic unit, scoped to the user, and an unowned id changes nothing.
func (f *fakeProvidersStore) SetActive(ctx context.Context, userID, configID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var target *store.ProviderConfig
	for _, c := range f.configs {
		if c.ID == configID && c.UserID == userID {
			target = c
			break
		}
	}
	if target == nil {
		return store.ErrNotFound
	}

	for _, c := range f.configs {
		if c.UserID == userID {
			c.IsActive = false
		}
	}
	target.IsActive = true
	return nil
}

func newTestApplication(gw gateway.Gateway) (*application, *fakeProvidersStore, *fakeUsersStore) {
	users := &fakeUsersStore{}
	providers := &fakeProvidersStore{}
	logger := zap.NewNop().Sugar()

	gateways := gateway.NewManager()
	if gw != nil {
		gateways.Register(string(store.ProviderOasyfy), gw)
	}

	app := &application{
		config: config{
			env: "test",
			rateLimiter: ratelimiter.Config{
				RequestsPerTimeFrame: 100,
				TimeFrame:            time.Minute,
				Enabled:              false,
			},
		},
		store:       store.Storage{Users: users, Providers: providers},
		dispatcher:  pix.NewDispatcher(providers, gateways, logger),
		logger:      logger,
		rateLimiter: ratelimiter.NewFixedWindowLimiter(100, time.Minute),
	}
	return app, providers, users
}

type stubGateway struct {
	charge gateway.Charge
	status gateway.ChargeStatus
	err    error
}

func (s *stubGateway) CreateCharge(ctx context.Context, creds gateway.Credentials, req gateway.ChargeRequest) (gateway.Charge, error) {
	return s.charge, s.err
}

func (s *stubGateway) ChargeStatus(ctx context.Context, creds gateway.Credentials, transactionID string) (gateway.ChargeStatus, error) {
	return s.status, s.err
}

func registerTestUser(users *fakeUsersStore, username, token string) *store.User {
	user := &store.User{Username: username, AuthToken: token}
	users.Create(context.Background(), user)
	return user
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
