package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portal-service/internal/backend"
	"portal-service/internal/config"
	"portal-service/internal/handler"
	"portal-service/internal/repository"
	"portal-service/internal/router"
	"portal-service/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	// db connection
	dbpool, err := pgxpool.New(context.Background(), cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer dbpool.Close()

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr, Password: cfg.RedisPass,
	})
	defer rdb.Close()

	// backend API client
	api := backend.NewClient(cfg.BackendBaseURL, cfg.BackendAPIKey, cfg.BackendTimeout)

	// repos & services
	quotes := repository.NewRedisQuoteStore(rdb)
	sessions := repository.NewSessionRepo(dbpool)
	resolver := service.NewResolver(quotes, api)

	wizardSvc := service.NewWizardService(resolver, sessions, quotes, api)
	catalogSvc := service.NewCatalogService(api, quotes)
	paymentSvc := service.NewPaymentService(api)
	managerSvc := service.NewManagerService(api)

	wizardHandler := handler.NewWizardHandler(wizardSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	managerHandler := handler.NewManagerHandler(managerSvc)

	// chi router
	r := chi.NewRouter()
	router.SetupRoutes(r, wizardHandler, catalogHandler, paymentHandler, managerHandler, rdb)

	// HTTP server
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	// run server in goroutine
	go func() {
		log.Printf("Portal REST server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
}
