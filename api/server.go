package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Inshalc/battery-soh-chatbot/app"
	"github.com/Inshalc/battery-soh-chatbot/internal"
	"github.com/Inshalc/battery-soh-chatbot/internal/config"
	"github.com/Inshalc/battery-soh-chatbot/internal/usage"
	"github.com/Inshalc/battery-soh-chatbot/ports"
)

// Server is the JSON API consumed by the mobile app
type Server struct {
	router      *gin.Engine
	predictions *app.PredictionService
	chat        *app.ChatOrchestrator
	usage       *usage.Service
	history     ports.PredictionRepository // nil when persistence is disabled
	config      *config.Config
}

// NewServer creates the API server and registers its routes
func NewServer(cfg *config.Config, predictions *app.PredictionService, chat *app.ChatOrchestrator, usageSvc *usage.Service, history ports.PredictionRepository) *Server {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	s := &Server{
		router:      gin.Default(),
		predictions: predictions,
		chat:        chat,
		usage:       usageSvc,
		history:     history,
		config:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/predict", s.handlePredict)
	s.router.POST("/health-status", s.handleHealthStatus)
	s.router.POST("/chat/message", s.handleChatMessage)
	s.router.GET("/usage/summary", s.handleUsageSummary)
	s.router.GET("/predictions/recent", s.handleRecentPredictions)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Server.Port)
	internal.DefaultLogger.Info("API server listening on %s", addr)
	return s.router.Run(addr)
}
