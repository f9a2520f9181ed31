package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ecom-labs/storefront/internal/discount"
	"github.com/ecom-labs/storefront/internal/order"
)

// AdminHandler serves the back-office endpoints: code generation, code
// listing, and the aggregate stats dashboard.
type AdminHandler struct {
	orders    *order.Ledger
	discounts *discount.Ledger
}

func NewAdminHandler(orders *order.Ledger, discounts *discount.Ledger) *AdminHandler {
	return &AdminHandler{orders: orders, discounts: discounts}
}

type generateDiscountRequest struct {
	Code string `json:"code"`
}

// GenerateDiscount handles POST /admin/generate-discount. Admin codes carry
// no owner, so any user can redeem them.
func (h *AdminHandler) GenerateDiscount(w http.ResponseWriter, r *http.Request) {
	var req generateDiscountRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	dc, err := h.discounts.Generate(req.Code, "")
	if err != nil {
		log.Warn().Err(err).Str("code", req.Code).Msg("handler: discount generation failed")
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, dc)
}

// ListDiscountCodes handles GET /admin/discount-codes, newest first.
func (h *AdminHandler) ListDiscountCodes(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.discounts.ListAll())
}

type adminStatsResponse struct {
	order.Stats
	DiscountCodes []discount.Code `json:"discount_codes"`
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, adminStatsResponse{
		Stats:         h.orders.Stats(),
		DiscountCodes: h.discounts.ListAll(),
	})
}
