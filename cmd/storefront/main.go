package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ecom-labs/storefront/internal/cart"
	"github.com/ecom-labs/storefront/internal/catalog"
	"github.com/ecom-labs/storefront/internal/checkout"
	"github.com/ecom-labs/storefront/internal/config"
	"github.com/ecom-labs/storefront/internal/discount"
	"github.com/ecom-labs/storefront/internal/handler"
	"github.com/ecom-labs/storefront/internal/order"
	"github.com/ecom-labs/storefront/internal/transport"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront").Logger()

	log.Info().Msg("Storefront starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	cat := catalog.Default()
	carts := cart.NewStore(cat)
	orders := order.NewLedger()
	discounts := discount.NewLedger()
	checkoutSvc := checkout.NewService(carts, orders, discounts, cfg.Discount.Percent, cfg.Discount.RewardEveryNOrders)

	storefrontHandler := handler.NewStorefrontHandler(cat, carts, checkoutSvc)
	adminHandler := handler.NewAdminHandler(orders, discounts)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      transport.NewRouter(storefrontHandler, adminHandler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
