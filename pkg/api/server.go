// Package api provides the HTTP surface of the customer service.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dj/customer-service/pkg/config"
	"github.com/dj/customer-service/pkg/database"
	"github.com/dj/customer-service/pkg/masking"
	"github.com/dj/customer-service/pkg/services"
)

// Server is the HTTP API server.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server

	cfg             *config.Config
	dbClient        *database.Client
	customerService *services.CustomerService
	maskingService  *masking.Service
	gatherer        prometheus.Gatherer
}

// NewServer creates a new API server and registers all routes.
// dbClient and gatherer may be nil; the health check and /metrics are then
// reduced accordingly.
func NewServer(
	cfg *config.Config,
	dbClient *database.Client,
	customerService *services.CustomerService,
	maskingService *masking.Service,
	gatherer prometheus.Gatherer,
) *Server {
	engine := gin.New()

	s := &Server{
		engine:          engine,
		cfg:             cfg,
		dbClient:        dbClient,
		customerService: customerService,
		maskingService:  maskingService,
		gatherer:        gatherer,
	}

	engine.Use(recovery(), correlationID(), requestLogger(), securityHeaders())
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.healthHandler)
	if s.gatherer != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	v1 := s.engine.Group("/api/v1")
	customers := v1.Group("/customers")
	customers.GET("", s.searchCustomersHandler)
	customers.POST("", s.createCustomerHandler)
	customers.GET("/:id", s.getCustomerHandler)
	customers.PUT("/:id", s.updateCustomerHandler)
	customers.PATCH("/:id", s.patchCustomerHandler)
	customers.DELETE("/:id", s.deleteCustomerHandler)
}

// Handler returns the router, for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start starts the HTTP server on the given address (blocking).
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
