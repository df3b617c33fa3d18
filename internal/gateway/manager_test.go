package gateway

import (
	"context"
	"errors"
	"testing"
)

type stubGateway struct{}

func (stubGateway) CreateCharge(context.Context, Credentials, ChargeRequest) (Charge, error) {
	return Charge{}, nil
}

func (stubGateway) ChargeStatus(context.Context, Credentials, string) (ChargeStatus, error) {
	return ChargeStatus{}, nil
}

func TestManagerGateway(t *testing.T) {
	m := NewManager()
	m.Register("oasyfy", stubGateway{})

	t.Run("returns the registered adapter", func(t *testing.T) {
		if _, err := m.Gateway("oasyfy"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown type is ErrUnsupportedProvider", func(t *testing.T) {
		_, err := m.Gateway("stripe")
		if !errors.Is(err, ErrUnsupportedProvider) {
			t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
		}
	})
}
