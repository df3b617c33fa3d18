package main

import (
	"errors"
	"net/http"

	"pixgate/internal/gateway"
	"pixgate/internal/pix"
)

type CreatePixPayload struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type PixChargeResponse struct {
	PixCode       string `json:"pix_code"`
	TransactionID string `json:"transaction_id"`
}

type PixStatusResponse struct {
	Status string `json:"status"`
}

func (app *application) createPixHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload CreatePixPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	charge, err := app.dispatcher.CreatePayment(r.Context(), user.ID, payload.Amount)
	if err != nil {
		app.paymentErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, PixChargeResponse{
		PixCode:       charge.PixCode,
		TransactionID: charge.TransactionID,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) checkPixHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	status, err := app.dispatcher.CheckPayment(r.Context(), user.ID, r.URL.Query().Get("transaction_id"))
	if err != nil {
		app.paymentErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, PixStatusResponse{Status: status.Status}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// paymentErrorResponse maps dispatcher failures onto the error taxonomy:
// caller mistakes are 400s, provider-side failures are 500s.
func (app *application) paymentErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var gwErr *gateway.Error

	switch {
	case errors.Is(err, pix.ErrNoActiveProvider),
		errors.Is(err, pix.ErrMissingTransactionID),
		errors.Is(err, gateway.ErrUnsupportedProvider):
		app.badRequestResponse(w, r, err)
	case errors.As(err, &gwErr):
		app.gatewayErrorResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
