// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"climatework_backend/internal/config"
	"climatework_backend/internal/jobs"
	"climatework_backend/internal/middleware"
	"climatework_backend/internal/onboarding"
	"climatework_backend/internal/platform/database"
	"climatework_backend/internal/shared"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	onboardingHandler *onboarding.Handler
	inviteExpiryJob   *jobs.InviteExpiryJob

	authMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	onboardingHandler *onboarding.Handler,
	inviteExpiryJob *jobs.InviteExpiryJob,
	db *gorm.DB,
	verifier shared.TokenVerifier,
) (*Server, error) {
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run schema migration: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()

	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(verifier, logger.Named("AuthMiddleware"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "ClimateWork API is healthy!"})
	})

	v1 := router.Group("/api/v1")
	onboardingHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:        httpServer,
		router:            router,
		cfg:               cfg,
		logger:            logger,
		onboardingHandler: onboardingHandler,
		inviteExpiryJob:   inviteExpiryJob,
		authMW:            authMW,
	}, nil
}

func (s *Server) Start() error {
	if s.inviteExpiryJob != nil {
		if err := s.inviteExpiryJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start invite expiry job", zap.Error(err))
		}
	} else {
		s.logger.Info("Invite expiry job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.inviteExpiryJob != nil {
		s.inviteExpiryJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
