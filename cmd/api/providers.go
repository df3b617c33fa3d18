package main

import (
	"fmt"
	"net/http"
	"strconv"

	"pixgate/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateProviderConfigPayload struct {
	Name string `json:"name" validate:"required,max=255"`
	Type string `json:"type" validate:"required,max=255"`
	// Which of these a provider consumes depends on its type; unused ones
	// may stay empty and are stored as-is.
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey"`
	Token     string `json:"token"`
}

func (app *application) createProviderConfigHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload CreateProviderConfigPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cfg := &store.ProviderConfig{
		UserID:    user.ID,
		Name:      payload.Name,
		Type:      store.ProviderType(payload.Type),
		PublicKey: payload.PublicKey,
		SecretKey: payload.SecretKey,
		Token:     payload.Token,
	}

	if err := app.store.Providers.Create(r.Context(), cfg); err != nil {
		switch err {
		case store.ErrDuplicateName:
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, cfg); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listProviderConfigsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	configs, err := app.store.Providers.ListByUser(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, configs); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) setActiveProviderConfigHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	configID, err := strconv.ParseInt(chi.URLParam(r, "apiID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid configuration id"))
		return
	}

	if err := app.store.Providers.SetActive(r.Context(), user.ID, configID); err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, fmt.Errorf("configuration not found or not owned by user"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("configuration %d activated", configID),
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}
