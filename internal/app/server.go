package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/electronix/assistant/internal/api/handlers"
	appMiddleware "github.com/electronix/assistant/internal/api/middlewares"
	"github.com/electronix/assistant/internal/config"
	"github.com/electronix/assistant/internal/core"
	"github.com/electronix/assistant/internal/core/chatbot"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, db core.DbClient, obj core.ObjectClient, engine *chatbot.Engine, logger zerolog.Logger) *Server {
	authHandler := handlers.NewAuthHandler(db)
	chatHandler := handlers.NewChatHandler(db, engine)
	productHandler := handlers.NewProductHandler(db, obj)
	faqHandler := handlers.NewFaqHandler(db)
	socialHandler := handlers.NewSocialHandler(db)
	orderHandler := handlers.NewOrderHandler(db)
	cartHandler := handlers.NewCartHandler(db)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Post("/signup", authHandler.Signup)
		api.Post("/login", authHandler.Login)
		api.Get("/products", productHandler.List)
		api.Get("/products/category", productHandler.ListByCategory)
		api.Get("/products/popular", productHandler.Popular)
		api.Get("/products/new-arrivals", productHandler.NewArrivals)
		api.Get("/products/{id}", productHandler.GetByID)
		api.Get("/faqs", faqHandler.List)
		api.Get("/social-links", socialHandler.List)

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWTMiddleware)
			protected.Get("/verify-token", authHandler.VerifyToken)

			protected.Post("/chat", chatHandler.Chat)
			protected.Get("/chat/history", chatHandler.History)
			protected.Delete("/chat/history", chatHandler.ClearHistory)
			protected.Delete("/chat/history/{id}", chatHandler.DeleteExchange)

			protected.Post("/orders", orderHandler.PlaceOrder)
			protected.Get("/orders", orderHandler.MyOrders)

			protected.Get("/cart", cartHandler.GetCart)
			protected.Put("/cart", cartHandler.UpdateCart)
		})

		// admin endpoints
		api.Group(func(admin chi.Router) {
			admin.Use(appMiddleware.JWTMiddleware)
			admin.Use(appMiddleware.AdminOnly)

			admin.Post("/products", productHandler.Create)
			admin.Put("/products/{id}", productHandler.Update)
			admin.Delete("/products/{id}", productHandler.Delete)
			admin.Put("/products/{id}/availability", productHandler.SetAvailability)
			admin.Post("/products/image", productHandler.UploadImage)

			admin.Post("/faqs", faqHandler.Create)
			admin.Put("/faqs/{id}", faqHandler.Update)
			admin.Delete("/faqs/{id}", faqHandler.Delete)

			admin.Post("/social-links", socialHandler.Upsert)
			admin.Delete("/social-links/{id}", socialHandler.Delete)

			admin.Get("/orders/all", orderHandler.AllOrders)
			admin.Post("/orders/status", orderHandler.UpdateStatus)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv, log: logger}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.log.Fatal().Err(err).Msg("server error")
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
