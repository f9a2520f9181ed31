package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecom-labs/storefront/internal/handler"
)

func NewRouter(storefront *handler.StorefrontHandler, admin *handler.AdminHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/products", storefront.ListProducts)
	r.Get("/cart", storefront.GetCart)
	r.Post("/cart/add", storefront.AddToCart)
	r.Post("/discount/validate", storefront.ValidateDiscount)
	r.Post("/checkout", storefront.Checkout)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/generate-discount", admin.GenerateDiscount)
		r.Get("/discount-codes", admin.ListDiscountCodes)
		r.Get("/stats", admin.Stats)
	})

	return r
}
