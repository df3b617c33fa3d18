package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pixgate/internal/gateway"
	"pixgate/internal/store"
)

func TestCreatePixHandler(t *testing.T) {
	createPix := func(mux http.Handler, token, body string) *httptest.ResponseRecorder {
		req := authed(httptest.NewRequest(http.MethodPost, "/v1/pix", bytes.NewBufferString(body)), token)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		return rr
	}

	t.Run("no active configuration is a caller error", func(t *testing.T) {
		app, _, users := newTestApplication(&stubGateway{})
		registerTestUser(users, "alice", "tok-alice")

		rr := createPix(app.mount(), "tok-alice", `{"amount":10.00}`)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, body = %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("active configuration with no adapter is a caller error", func(t *testing.T) {
		app, providers, users := newTestApplication(nil)
		alice := registerTestUser(users, "alice", "tok-alice")
		providers.Create(context.Background(), &store.ProviderConfig{
			UserID: alice.ID, Name: "main", Type: "unknown-gateway", IsActive: true,
		})

		rr := createPix(app.mount(), "tok-alice", `{"amount":10.00}`)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, body = %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("returns the normalized charge", func(t *testing.T) {
		gw := &stubGateway{charge: gateway.Charge{PixCode: "pix-code", TransactionID: "tx-1"}}
		app, providers, users := newTestApplication(gw)
		alice := registerTestUser(users, "alice", "tok-alice")
		providers.Create(context.Background(), &store.ProviderConfig{
			UserID: alice.ID, Name: "main", Type: store.ProviderOasyfy, IsActive: true,
		})

		rr := createPix(app.mount(), "tok-alice", `{"amount":10.00}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
		}

		var resp struct {
			Data PixChargeResponse `json:"data"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Data.PixCode != "pix-code" || resp.Data.TransactionID != "tx-1" {
			t.Errorf("response = %+v", resp.Data)
		}
	})

	t.Run("gateway failure surfaces as a server error", func(t *testing.T) {
		gw := &stubGateway{err: &gateway.Error{Provider: "oasyfy", Op: "create", Err: errors.New("http=500")}}
		app, providers, users := newTestApplication(gw)
		alice := registerTestUser(users, "alice", "tok-alice")
		providers.Create(context.Background(), &store.ProviderConfig{
			UserID: alice.ID, Name: "main", Type: store.ProviderOasyfy, IsActive: true,
		})

		rr := createPix(app.mount(), "tok-alice", `{"amount":10.00}`)
		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status = %d", rr.Code)
		}
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		app, _, users := newTestApplication(&stubGateway{})
		registerTestUser(users, "alice", "tok-alice")

		rr := createPix(app.mount(), "tok-alice", `{"amount":0}`)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rr.Code)
		}
	})
}

func TestCheckPixHandler(t *testing.T) {
	t.Run("missing transaction id is rejected before any lookup", func(t *testing.T) {
		app, _, users := newTestApplication(&stubGateway{})
		registerTestUser(users, "alice", "tok-alice")

		req := authed(httptest.NewRequest(http.MethodGet, "/v1/pix/status", nil), "tok-alice")
		rr := httptest.NewRecorder()
		app.mount().ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rr.Code)
		}
	})

	t.Run("returns the provider status", func(t *testing.T) {
		gw := &stubGateway{status: gateway.ChargeStatus{Status: "paid"}}
		app, providers, users := newTestApplication(gw)
		alice := registerTestUser(users, "alice", "tok-alice")
		providers.Create(context.Background(), &store.ProviderConfig{
			UserID: alice.ID, Name: "main", Type: store.ProviderOasyfy, IsActive: true,
		})

		req := authed(httptest.NewRequest(http.MethodGet, "/v1/pix/status?transaction_id=tx-1", nil), "tok-alice")
		rr := httptest.NewRecorder()
		app.mount().ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
		}

		var resp struct {
			Data PixStatusResponse `json:"data"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Data.Status != "paid" {
			t.Errorf("status = %q", resp.Data.Status)
		}
	})
}
