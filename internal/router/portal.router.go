package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"portal-service/internal/handler"
	"portal-service/pkg/middleware"
)

func SetupRoutes(
	r chi.Router,
	wh *handler.WizardHandler,
	ch *handler.CatalogHandler,
	ph *handler.PaymentHandler,
	mh *handler.ManagerHandler,
	rdb *redis.Client,
) chi.Router {
	// ---- Global Middleware ----
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID", "X-User-Role"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.RateLimiter(rdb, 100, time.Minute, 10*time.Minute, "global"))

	// ============================================================
	// Public Endpoints (catalog browsing needs no identity)
	// ============================================================
	r.Group(func(pub chi.Router) {
		pub.Get("/api/v1/portal/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})

		pub.Get("/api/v1/portal/products", ch.Products)
		pub.Get("/api/v1/portal/products/{productID}", ch.Product)
		pub.Get("/api/v1/portal/products/{productID}/plans", ch.Plans)
	})

	// ============================================================
	// Authenticated Endpoints (customer portal)
	// ============================================================
	r.Route("/api/v1/portal/svc", func(pr chi.Router) {
		pr.Use(middleware.RequireIdentity("user", "manager"))
		pr.Use(middleware.RateLimiter(rdb, 30, time.Minute, 5*time.Minute, "portal"))

		pr.Post("/calculator", ch.Calculate)
		pr.Get("/calculator/params", ch.CalculatorParams)

		pr.Post("/wizard/{line}", wh.StartWizard)
		pr.Get("/wizard/session/{sessionID}", wh.GetWizard)
		pr.Patch("/wizard/session/{sessionID}/step", wh.MergeStep)
		pr.Post("/wizard/session/{sessionID}/advance", wh.Advance)
		pr.Post("/wizard/session/{sessionID}/retreat", wh.Retreat)
		pr.Post("/wizard/session/{sessionID}/quote", wh.Quote)
		pr.Post("/wizard/session/{sessionID}/submit", wh.Submit)

		pr.Get("/applications", wh.Applications)
		pr.Get("/applications/{applicationID}", wh.Application)
		pr.Post("/applications/{applicationID}/pay", ph.Pay)
	})

	// ============================================================
	// Manager Endpoints (approval queue)
	// ============================================================
	r.Route("/api/v1/portal/manager", func(mr chi.Router) {
		mr.Use(middleware.RequireIdentity("manager"))
		mr.Use(middleware.RateLimiter(rdb, 60, time.Minute, 5*time.Minute, "manager"))

		mr.Get("/applications", mh.Queue)
		mr.Get("/applications/{applicationID}", mh.Detail)
		mr.Post("/applications/{applicationID}/decision", mh.Decide)
	})

	return r
}
