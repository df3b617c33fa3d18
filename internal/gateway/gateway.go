package gateway

import "context"

// Gateway defines a common interface for all PIX payment providers.
type Gateway interface {
	CreateCharge(ctx context.Context, creds Credentials, req ChargeRequest) (Charge, error)
	ChargeStatus(ctx context.Context, creds Credentials, transactionID string) (ChargeStatus, error)
}
