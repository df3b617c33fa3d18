package gateway

import (
	"errors"
	"fmt"
)

var ErrUnsupportedProvider = errors.New("unsupported payment provider")

// Manager maps provider type tags to their adapters. Adding a provider means
// registering a new Gateway here, nothing else.
type Manager struct {
	gateways map[string]Gateway
}

func NewManager() *Manager {
	return &Manager{gateways: make(map[string]Gateway)}
}

func (m *Manager) Register(name string, gw Gateway) {
	m.gateways[name] = gw
}

func (m *Manager) Gateway(name string) (Gateway, error) {
	gw, ok := m.gateways[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, name)
	}
	return gw, nil
}
