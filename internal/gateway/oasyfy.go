package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const oasyfyBaseURL = "https://app.oasyfy.com/api/v1"

// Confirmation webhooks are not ingested anywhere; providers require the
// field, so a placeholder is sent.
const callbackPlaceholderURL = "https://seu_webhook_de_confirmacoes"

// OasyfyAdapter talks to Oasyfy, which authenticates with a public/secret
// key pair and takes amounts in major currency units.
type OasyfyAdapter struct {
	baseURL    string
	httpClient *http.Client
	ids        RequestIDSource
}

func NewOasyfyAdapter(client *http.Client, ids RequestIDSource) *OasyfyAdapter {
	return &OasyfyAdapter{
		baseURL:    oasyfyBaseURL,
		httpClient: client,
		ids:        ids,
	}
}

func (o *OasyfyAdapter) CreateCharge(ctx context.Context, creds Credentials, req ChargeRequest) (Charge, error) {
	stamp := o.ids.Stamp()

	payload := map[string]any{
		"identifier": fmt.Sprintf("checkout-%s-%d", stamp, req.UserID),
		"amount":     req.Amount,
		"client": map[string]string{
			"name":     "Cliente Checkout",
			"email":    fmt.Sprintf("checkout-%s@example.com", stamp),
			"phone":    "00000000000",
			"document": "12345678900",
		},
		"products": []map[string]any{
			{"id": "1", "name": "Produto", "quantity": 1, "price": req.Amount},
		},
		"callbackUrl": callbackPlaceholderURL,
	}

	body, _ := json.Marshal(payload)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/gateway/pix/receive", bytes.NewBuffer(body))
	if err != nil {
		return Charge{}, &Error{Provider: "oasyfy", Op: "create", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-public-key", creds.PublicKey)
	httpReq.Header.Set("x-secret-key", creds.SecretKey)

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return Charge{}, &Error{Provider: "oasyfy", Op: "create", Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Charge{}, &Error{Provider: "oasyfy", Op: "create", Err: fmt.Errorf("http=%d body=%s", resp.StatusCode, string(raw))}
	}

	var res struct {
		ID  string `json:"id"`
		Pix struct {
			Code string `json:"code"`
		} `json:"pix"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return Charge{}, &Error{Provider: "oasyfy", Op: "create", Err: fmt.Errorf("decode: %w body=%s", err, string(raw))}
	}

	return Charge{PixCode: res.Pix.Code, TransactionID: res.ID}, nil
}

func (o *OasyfyAdapter) ChargeStatus(ctx context.Context, creds Credentials, transactionID string) (ChargeStatus, error) {
	url := fmt.Sprintf("%s/gateway/payments/%s", o.baseURL, transactionID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ChargeStatus{}, &Error{Provider: "oasyfy", Op: "status", Err: err}
	}
	httpReq.Header.Set("x-public-key", creds.PublicKey)
	httpReq.Header.Set("x-secret-key", creds.SecretKey)

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return ChargeStatus{}, &Error{Provider: "oasyfy", Op: "status", Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ChargeStatus{}, &Error{Provider: "oasyfy", Op: "status", Err: fmt.Errorf("http=%d body=%s", resp.StatusCode, string(raw))}
	}

	var res struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return ChargeStatus{}, &Error{Provider: "oasyfy", Op: "status", Err: fmt.Errorf("decode: %w body=%s", err, string(raw))}
	}

	return ChargeStatus{Status: res.Status}, nil
}
