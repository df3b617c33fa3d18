package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
)

const (
	pushinPayBaseURL = "https://api.pushinpay.com.br/api/v1"

	// Pushinpay and Ghostpay answer status lookups on the same host; only
	// the request construction differs per adapter.
	sharedStatusBaseURL = "https://example.com.br/api/v1"
)

// PushinPayAdapter talks to Pushinpay, which authenticates with a single
// bearer token and takes amounts in centavos.
type PushinPayAdapter struct {
	cashinURL  string
	statusURL  string
	httpClient *http.Client
	ids        RequestIDSource
}

func NewPushinPayAdapter(client *http.Client, ids RequestIDSource) *PushinPayAdapter {
	return &PushinPayAdapter{
		cashinURL:  pushinPayBaseURL + "/pix/cashin",
		statusURL:  sharedStatusBaseURL + "/transaction.getPayment",
		httpClient: client,
		ids:        ids,
	}
}

func (p *PushinPayAdapter) CreateCharge(ctx context.Context, creds Credentials, req ChargeRequest) (Charge, error) {
	// Round, don't truncate: 19.99*100 is 1998.99… in float64.
	amountCents := int(math.Round(req.Amount * 100))

	payload := map[string]any{
		"name":          "Cliente Checkout",
		"email":         fmt.Sprintf("checkout-%s@example.com", p.ids.Stamp()),
		"cpf":           "12345678901",
		"phone":         "16977777777",
		"paymentMethod": "PIX",
		"amount":        amountCents,
		"traceable":     true,
		"items": []map[string]any{
			{"unitPrice": amountCents, "title": "Compra de Produto", "quantity": 1, "tangible": false},
		},
		"postbackUrl": callbackPlaceholderURL,
	}

	body, _ := json.Marshal(payload)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cashinURL, bytes.NewBuffer(body))
	if err != nil {
		return Charge{}, &Error{Provider: "pushinpay", Op: "create", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", creds.Token)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return Charge{}, &Error{Provider: "pushinpay", Op: "create", Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Charge{}, &Error{Provider: "pushinpay", Op: "create", Err: fmt.Errorf("http=%d body=%s", resp.StatusCode, string(raw))}
	}

	var res struct {
		ID     string `json:"id"`
		QRCode string `json:"qr_code"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return Charge{}, &Error{Provider: "pushinpay", Op: "create", Err: fmt.Errorf("decode: %w body=%s", err, string(raw))}
	}

	return Charge{PixCode: res.QRCode, TransactionID: res.ID}, nil
}

func (p *PushinPayAdapter) ChargeStatus(ctx context.Context, creds Credentials, transactionID string) (ChargeStatus, error) {
	return bearerChargeStatus(ctx, p.httpClient, "pushinpay", p.statusURL, creds.Token, transactionID)
}

// bearerChargeStatus performs the status lookup shared by the bearer-token
// providers: GET <statusURL>?id=<transactionID> with the stored token as the
// Authorization header.
func bearerChargeStatus(ctx context.Context, client *http.Client, provider, statusURL, token, transactionID string) (ChargeStatus, error) {
	url := fmt.Sprintf("%s?id=%s", statusURL, transactionID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ChargeStatus{}, &Error{Provider: provider, Op: "status", Err: err}
	}
	httpReq.Header.Set("Authorization", token)

	resp, err := client.Do(httpReq)
	if err != nil {
		return ChargeStatus{}, &Error{Provider: provider, Op: "status", Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ChargeStatus{}, &Error{Provider: provider, Op: "status", Err: fmt.Errorf("http=%d body=%s", resp.StatusCode, string(raw))}
	}

	var res struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return ChargeStatus{}, &Error{Provider: provider, Op: "status", Err: fmt.Errorf("decode: %w body=%s", err, string(raw))}
	}

	return ChargeStatus{Status: res.Status}, nil
}
