package main

import (
	"net/http"

	"pixgate/internal/store"

	"github.com/google/uuid"
)

type RegisterUserPayload struct {
	Username string `json:"username" validate:"required,max=255"`
}

type RegisteredUser struct {
	Username  string `json:"username"`
	AuthToken string `json:"auth_token"`
}

// registerUserHandler creates a user and hands back the opaque token used as
// the bearer credential on every other endpoint.
func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload RegisterUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := &store.User{
		Username:  payload.Username,
		AuthToken: uuid.New().String(),
	}

	if err := app.store.Users.Create(r.Context(), user); err != nil {
		switch err {
		case store.ErrDuplicateUsername:
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, RegisteredUser{
		Username:  user.Username,
		AuthToken: user.AuthToken,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}
