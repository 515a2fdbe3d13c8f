package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tazkara/internal/cart"
	"tazkara/internal/config"
	"tazkara/internal/external"
	"tazkara/internal/handlers"
	"tazkara/internal/logger"
	"tazkara/internal/middleware"
	"tazkara/internal/service"
	"tazkara/internal/session"
)

// Server is the storefront HTTP API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	client   *external.Client
	sessions *session.Manager
	carts    *cart.Manager
	services *service.Services
	store    session.Store
}

// NewServer wires the upstream client, the session store and the cart
// registry into a gin router. Redis being down is not fatal: sessions fall
// back to process memory and survive only until restart.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	var store session.Store
	redisStore, err := session.NewRedisStore(cfg.Redis)
	if err != nil {
		logger.Get().Warn("redis unavailable, sessions will not survive restarts", "error", err)
		store = session.NewMemoryStore()
	} else {
		store = redisStore
	}

	client := external.NewClient(cfg.Upstream)
	sessions := session.NewManager(store)
	carts := cart.NewManager()
	services := service.NewServices(client, sessions, carts)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.BearerToken())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		client:   client,
		sessions: sessions,
		carts:    carts,
		services: services,
		store:    store,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.client, s.carts)

	api := s.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
			auth.POST("/register", h.Register)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", h.Me)
		}

		events := api.Group("/events")
		{
			events.GET("/active", h.ActiveEvents)
			events.GET("/upcoming", h.UpcomingEvents)
			events.GET("/active/category/:id", h.EventsByCategory)
			events.GET("/:id", h.EventByID)
		}

		api.GET("/categories", h.Categories)
		api.GET("/banners", h.Banners)

		carts := api.Group("/carts")
		{
			carts.POST("", h.OpenCart)
			carts.GET("/:id", h.GetCart)
			carts.DELETE("/:id", h.DeleteCart)
			carts.PUT("/:id/quantities", h.SetQuantity)
			carts.PATCH("/:id/holders/:index", h.UpdateHolder)
			carts.POST("/:id/checkout", h.Checkout)
		}

		api.POST("/order", h.CreateOrder)

		wallet := api.Group("/wallet")
		{
			wallet.GET("", h.WalletBalance)
			wallet.POST("/deposit", h.WalletDeposit)
			wallet.GET("/transactions", h.WalletTransactions)
		}

		api.GET("/my-tickets", h.MyTickets)

		api.GET("/status", h.Status)
		api.GET("/docs", h.Docs)
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "tazkara-api",
		"degraded": s.client.Degraded(),
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes external connections
func (s *Server) Cleanup() error {
	if closer, ok := s.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
