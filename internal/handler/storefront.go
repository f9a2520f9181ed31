package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ecom-labs/storefront/internal/cart"
	"github.com/ecom-labs/storefront/internal/catalog"
	"github.com/ecom-labs/storefront/internal/checkout"
)

// StorefrontHandler serves the shopper-facing endpoints: product listing,
// cart access, discount preview, and checkout.
type StorefrontHandler struct {
	catalog  *catalog.Catalog
	carts    *cart.Store
	checkout *checkout.Service
}

func NewStorefrontHandler(cat *catalog.Catalog, carts *cart.Store, svc *checkout.Service) *StorefrontHandler {
	return &StorefrontHandler{catalog: cat, carts: carts, checkout: svc}
}

type cartResponse struct {
	Items       []cart.Item     `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ListProducts handles GET /products.
func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.List())
}

// GetCart handles GET /cart.
func (h *StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	c := h.carts.GetOrCreate(userID)
	respondWithJSON(w, http.StatusOK, cartResponse{Items: c.Items, TotalAmount: c.TotalAmount})
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddToCart handles POST /cart/add.
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	c, err := h.carts.AddItem(userID, req.ProductID, req.Quantity)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("product_id", req.ProductID).Msg("handler: add to cart failed")
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, cartResponse{Items: c.Items, TotalAmount: c.TotalAmount})
}

type validateDiscountRequest struct {
	Code string `json:"code"`
}

// ValidateDiscount handles POST /discount/validate, the dry-run preview.
func (h *StorefrontHandler) ValidateDiscount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req validateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		respondWithError(w, http.StatusBadRequest, "no discount code provided")
		return
	}

	preview, err := h.checkout.PreviewDiscount(userID, req.Code)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, preview)
}

type checkoutRequest struct {
	DiscountCode string `json:"discount_code"`
}

// Checkout handles POST /checkout.
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	res, err := h.checkout.Checkout(userID, req.DiscountCode)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, res)
}
