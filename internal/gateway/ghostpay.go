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

// GhostPayAdapter is the second bearer-token provider. Same request shape as
// Pushinpay apart from the fixed phone/product text, and the pix payload
// comes back under a differently named field.
type GhostPayAdapter struct {
	purchaseURL string
	statusURL   string
	httpClient  *http.Client
	ids         RequestIDSource
}

func NewGhostPayAdapter(client *http.Client, ids RequestIDSource) *GhostPayAdapter {
	return &GhostPayAdapter{
		purchaseURL: sharedStatusBaseURL + "/transaction.purchase",
		statusURL:   sharedStatusBaseURL + "/transaction.getPayment",
		httpClient:  client,
		ids:         ids,
	}
}

func (g *GhostPayAdapter) CreateCharge(ctx context.Context, creds Credentials, req ChargeRequest) (Charge, error) {
	amountCents := int(math.Round(req.Amount * 100))

	payload := map[string]any{
		"name":          "Cliente Checkout",
		"email":         fmt.Sprintf("checkout-%s@example.com", g.ids.Stamp()),
		"cpf":           "12345678901",
		"phone":         "+5516999999999",
		"paymentMethod": "PIX",
		"amount":        amountCents,
		"traceable":     true,
		"items": []map[string]any{
			{"unitPrice": amountCents, "title": "Acesso a Curso Online", "quantity": 1, "tangible": false},
		},
		"postbackUrl": callbackPlaceholderURL,
	}

	body, _ := json.Marshal(payload)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.purchaseURL, bytes.NewBuffer(body))
	if err != nil {
		return Charge{}, &Error{Provider: "ghostpay", Op: "create", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", creds.Token)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return Charge{}, &Error{Provider: "ghostpay", Op: "create", Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Charge{}, &Error{Provider: "ghostpay", Op: "create", Err: fmt.Errorf("http=%d body=%s", resp.StatusCode, string(raw))}
	}

	var res struct {
		ID      string `json:"id"`
		PixCode string `json:"pixCode"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return Charge{}, &Error{Provider: "ghostpay", Op: "create", Err: fmt.Errorf("decode: %w body=%s", err, string(raw))}
	}

	return Charge{PixCode: res.PixCode, TransactionID: res.ID}, nil
}

func (g *GhostPayAdapter) ChargeStatus(ctx context.Context, creds Credentials, transactionID string) (ChargeStatus, error) {
	return bearerChargeStatus(ctx, g.httpClient, "ghostpay", g.statusURL, creds.Token, transactionID)
}
