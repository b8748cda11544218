// Package apiserver provides the JSON API HTTP server implementation
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mealwise/v1/internal/infrastructure/config"
	"github.com/mealwise/v1/internal/infrastructure/http/handlers"
	"github.com/mealwise/v1/internal/infrastructure/http/middleware"
	"github.com/mealwise/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// Server represents the JSON API HTTP server
type Server struct {
	config           *config.Config
	logger           *zap.Logger
	server           *http.Server
	router           *chi.Mux
	nutritionService inbound.NutritionService
	menuService      inbound.MenuService
}

// NewServer creates a new API server instance
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	nutritionService inbound.NutritionService,
	menuService inbound.MenuService,
) *Server {
	server := &Server{
		config:           cfg,
		logger:           log,
		nutritionService: nutritionService,
		menuService:      menuService,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the JSON API routes
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())

	r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.JSONOnly())

	// Photo uploads arrive base64-encoded in the JSON body.
	if s.config.Server.MaxBodyBytes > 0 {
		r.Use(chimiddleware.RequestSize(s.config.Server.MaxBodyBytes))
	}

	// Health check endpoint
	r.Get("/health", s.handleHealthCheck)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *Server) setupAPIV1Routes(r chi.Router) {
	nutritionH := handlers.NewNutritionAPIHandlers(s.nutritionService, s.logger)
	menuH := handlers.NewMenuAPIHandlers(s.menuService, s.logger)

	// Meal analysis routes
	r.Route("/analyses", func(r chi.Router) {
		r.Post("/", nutritionH.AnalyzeMeal)
		r.Put("/{id}", nutritionH.UpdateAnalysis)
	})

	// Menu routes
	r.Route("/menus", func(r chi.Router) {
		r.Post("/personalized", menuH.GeneratePersonalized)
		r.Post("/custom", menuH.GenerateCustom)
		r.Post("/{menuID}/meals/{mealID}/replace", menuH.ReplaceMeal)
		r.Get("/{menuID}/shopping-list", menuH.ShoppingList)
	})
}

// Start starts the API HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting JSON API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance
func (s *Server) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the API server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}

// handleHealthCheck provides health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, `{"status":"healthy","service":"%s","version":"%s","timestamp":%d}`,
		s.config.App.Name, s.config.App.Version, time.Now().Unix())
}
