package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/croc-pos/api/internal/config"
	"github.com/croc-pos/api/internal/handler"
	mw "github.com/croc-pos/api/internal/middleware"
	"github.com/croc-pos/api/internal/service"
	"github.com/croc-pos/api/internal/storage"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, store *storage.Store) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // Dashboard dev server
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(store, cfg.JWTSecret, cfg.AllowedEmails)
	authHandler.RegisterRoutes(r)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Products
		productHandler := handler.NewProductHandler(store)
		r.Route("/products", productHandler.RegisterRoutes)

		// Customers
		customerHandler := handler.NewCustomerHandler(store)
		r.Route("/customers", customerHandler.RegisterRoutes)

		// Orders
		orderService := service.NewOrderService(store)
		orderHandler := handler.NewOrderHandler(orderService, store)
		r.Route("/orders", orderHandler.RegisterRoutes)

		// Expenses
		expenseHandler := handler.NewExpenseHandler(store)
		r.Route("/expenses", expenseHandler.RegisterRoutes)

		// Reports
		reportsHandler := handler.NewReportsHandler(store)
		r.Route("/reports", reportsHandler.RegisterRoutes)
	})

	log.Println("Router initialized with all handlers")
	return r
}
