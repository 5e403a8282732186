// Package server is a local stand-in for the skating backend. It serves the
// same REST surface the client talks to, over gin and an SQLite database.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/auth"
	"github.com/rinkside/rinkside/internal/config"
	"github.com/rinkside/rinkside/internal/models"
)

// maxUploadSize bounds a single music or educational file
const maxUploadSize = 32 << 20

// Server represents the HTTP server
type Server struct {
	router    *gin.Engine
	db        *gorm.DB
	config    config.DevServerConfig
	logger    zerolog.Logger
	validator *validator.Validate
	tokens    *auth.Issuer
	version   string
}

// New creates a new server instance with a migrated and seeded database
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	db, err := initDatabase(cfg.DevServer.DatabaseURL, zlog)
	if err != nil {
		return nil, err
	}

	// Run database migrations
	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := models.Seed(db); err != nil {
		return nil, err
	}

	tokens, err := auth.NewIssuer(cfg.DevServer.JWTSecret)
	if err != nil {
		return nil, err
	}
	if cfg.DevServer.JWTSecret == "" {
		zlog.Info().Msg("JWT_SECRET not set - tokens will not survive a restart")
	}

	server := &Server{
		db:        db,
		config:    cfg.DevServer,
		logger:    zlog,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		tokens:    tokens,
		version:   version,
	}

	server.setupRouter()

	return server, nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// initDatabase opens the SQLite database and applies pragmas
func initDatabase(dsn string, zlog zerolog.Logger) (*gorm.DB, error) {
	const (
		maxOpenConns    = 8
		maxIdleConns    = 4
		connMaxLifetime = 5 * time.Minute
		busyTimeout     = 5000 // 5 seconds
		cacheSize       = 10000
	)

	gormLog := zlog.With().Str("component", "gorm").Logger()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(
			&gormLog,
			logger.Config{
				LogLevel:                  logger.Error,
				IgnoreRecordNotFoundError: true,
				SlowThreshold:             200 * time.Millisecond,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Get underlying sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	memory := isMemoryDSN(dsn)
	if memory {
		// An in-memory database lives as long as its last connection
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
	}

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout),
		fmt.Sprintf("PRAGMA cache_size=-%d", cacheSize),
		"PRAGMA foreign_keys=1",
		"PRAGMA temp_store=2",
	}
	if !memory {
		pragmas = append([]string{"PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL"}, pragmas...)
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			zlog.Warn().Str("pragma", pragma).Err(err).Msg("Failed to apply pragma")
		}
	}

	return db, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()
	s.router.MaxMultipartMemory = maxUploadSize

	// Add middleware
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// Public endpoints used before login
	s.router.POST("/Account/login", s.login)
	s.router.POST("/Account/register", s.register)
	s.router.GET("/Category", s.listCategories)
	s.router.GET("/Coach", s.listCoaches)

	// Files are opened by a media player, which cannot send a bearer token
	s.router.GET("/files/:id", s.serveFile)

	api := s.router.Group("")
	api.Use(JWTAuthMiddleware(s.db, s.tokens, s.logger))
	{
		skaters := api.Group("/Skaters", RequireCapability(access.ManageSkaters, s.logger))
		{
			skaters.GET("", s.listSkaters)
			skaters.POST("", s.createSkater)
			skaters.GET("/:id", s.getSkater)
			skaters.PUT("/:id", s.updateSkater)
			skaters.DELETE("/:id", s.deleteSkater)
		}

		viewPrograms := RequireCapability(access.ViewPrograms, s.logger)
		managePrograms := RequireCapability(access.ManagePrograms, s.logger)
		api.GET("/Program", viewPrograms, s.listPrograms)
		api.GET("/Program/:id", viewPrograms, s.getProgram)
		api.GET("/Program/:id/details", viewPrograms, s.getProgramDetails)
		api.POST("/Program", managePrograms, s.createProgram)
		api.PUT("/Program/:id", managePrograms, s.updateProgram)
		api.DELETE("/Program/:id", managePrograms, s.deleteProgram)
		api.POST("/Program/:id/comments", RequireCapability(access.CommentOnProgram, s.logger), s.addComment)

		training := api.Group("/Training", RequireCapability(access.LogTraining, s.logger))
		{
			training.GET("", s.listTrainings)
			training.GET("/elements", s.listElements)
			training.POST("", s.createTraining)
			training.GET("/:id", s.getTraining)
			training.PUT("/:id", s.updateTraining)
			training.DELETE("/:id", s.deleteTraining)
		}

		viewEducation := RequireCapability(access.ViewEducation, s.logger)
		manageEducation := RequireCapability(access.ManageEducation, s.logger)
		api.GET("/Education", viewEducation, s.listMaterials)
		api.GET("/Education/:id", viewEducation, s.getMaterial)
		api.POST("/Education", manageEducation, s.createMaterial)
		api.DELETE("/Education/:id", manageEducation, s.deleteMaterial)
		api.POST("/EducationalFile/material/:id/upload", manageEducation, s.uploadEducationalFile)
		api.DELETE("/EducationalFile/:id", manageEducation, s.deleteEducationalFile)

		api.GET("/Music/program/:id", viewPrograms, s.listMusic)
		api.POST("/Music/program/:id/upload", RequireCapability(access.UploadMusic, s.logger), s.uploadMusic)

		profile := api.Group("/Profile", RequireCapability(access.EditProfile, s.logger))
		{
			profile.GET("", s.getProfile)
			profile.PUT("", s.updateProfile)
		}
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetHeader("X-Request-ID")).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "rinkside-devserver",
		"version":   s.version,
	})
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// GetDB returns the database connection
func (s *Server) GetDB() *gorm.DB {
	return s.db
}

// Close releases the database
func (s *Server) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.config.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	if err := s.Close(); err != nil {
		s.logger.Error().Err(err).Msg("Error closing database")
	}

	s.logger.Info().Msg("Server shutdown complete")
	return nil
}
