package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ecom-labs/storefront/internal/cart"
	"github.com/ecom-labs/storefront/internal/catalog"
	"github.com/ecom-labs/storefront/internal/checkout"
	"github.com/ecom-labs/storefront/internal/discount"
)

// userCookie carries the shopper's identity, set by the storefront frontend.
const userCookie = "userId"

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to marshal response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("handler: failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrInvalidCode):
		return http.StatusBadRequest
	case errors.Is(err, discount.ErrCodeExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// requireUser pulls the user identity from the request cookie. A missing
// identity is answered with 401 and a false return.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, err := r.Cookie(userCookie)
	if err != nil || c.Value == "" {
		respondWithError(w, http.StatusUnauthorized, "user not found")
		return "", false
	}
	return c.Value, true
}
