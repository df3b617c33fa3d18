package gateway

import "fmt"

// Credentials carries the per-user secrets for one provider configuration.
// Each provider reads only the fields it needs and ignores the rest.
type Credentials struct {
	PublicKey string
	SecretKey string
	Token     string
}

type ChargeRequest struct {
	UserID int64
	Amount float64
}

// Charge is the normalized result of a create call: the copy-paste/QR
// payload plus the provider's transaction id for later status lookups.
type Charge struct {
	PixCode       string
	TransactionID string
}

type ChargeStatus struct {
	Status string
}

// Error wraps any transport or non-2xx failure from a provider so callers
// can tell which gateway failed without parsing message strings. Credential
// values never end up in here.
type Error struct {
	Provider string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
