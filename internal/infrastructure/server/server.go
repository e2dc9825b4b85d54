package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpHandlers "github.com/dailysync/core/internal/adapters/http"
	"github.com/dailysync/core/internal/adapters/repository"
	"github.com/dailysync/core/internal/application/services"
	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/infrastructure/config"
	"github.com/dailysync/core/internal/infrastructure/database"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo            *echo.Echo
	config          *config.Config
	logger          *logger.Logger
	db              *database.DB
	reminderService *services.ReminderService
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance. The mailer is injected so the
// reminder pipeline can be exercised against any transport.
func New(cfg *config.Config, db *database.DB, mailer ports.MailSender, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	loc := cfg.App.Location()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	standupRepo := repository.NewStandupRepository(db.DB)
	taskRepo := repository.NewTaskRepository(db.DB)
	projectRepo := repository.NewProjectRepository(db.DB)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWT, appLogger)
	userService := services.NewUserService(userRepo, appLogger)
	standupService := services.NewStandupService(standupRepo, loc, appLogger)
	taskService := services.NewTaskService(taskRepo, userRepo, loc, appLogger)
	projectService := services.NewProjectService(projectRepo, appLogger)
	reminderService := services.NewReminderService(userRepo, standupRepo, mailer, loc, appLogger)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	userHandler := httpHandlers.NewUserHandler(userService, appLogger)
	standupHandler := httpHandlers.NewStandupHandler(standupService, loc, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, loc, appLogger)
	projectHandler := httpHandlers.NewProjectHandler(projectService, appLogger)
	reminderHandler := httpHandlers.NewReminderHandler(reminderService, appLogger)

	server := &Server{
		echo:            e,
		config:          cfg,
		logger:          appLogger,
		db:              db,
		reminderService: reminderService,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(authHandler, userHandler, standupHandler, taskHandler, projectHandler, reminderHandler, authService)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// ReminderService exposes the reminder pipeline so the serve command
// can hang the scheduler off the same instance the API uses.
func (s *Server) ReminderService() *services.ReminderService {
	return s.reminderService
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, userHandler *httpHandlers.UserHandler, standupHandler *httpHandlers.StandupHandler, taskHandler *httpHandlers.TaskHandler, projectHandler *httpHandlers.ProjectHandler, reminderHandler *httpHandlers.ReminderHandler, authService *services.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.Me, s.authMiddleware(authService))

	// User routes (authenticated)
	userGroup := v1.Group("/users", s.authMiddleware(authService))
	userGroup.GET("", userHandler.List, s.requireRole(entities.RoleLead, entities.RoleAdmin))
	userGroup.GET("/team", userHandler.ListTeam)

	// Standup routes (authenticated)
	standupGroup := v1.Group("/standups", s.authMiddleware(authService))
	standupGroup.POST("", standupHandler.Submit)
	standupGroup.GET("/my", standupHandler.Mine)
	standupGroup.GET("/today", standupHandler.Today)
	standupGroup.GET("/team", standupHandler.Team)
	standupGroup.GET("/:id", standupHandler.Get)
	standupGroup.PUT("/:id", standupHandler.Update)

	// Task routes (authenticated)
	taskGroup := v1.Group("/tasks", s.authMiddleware(authService))
	taskGroup.POST("", taskHandler.Create)
	taskGroup.GET("/my", taskHandler.Mine)
	taskGroup.GET("/team", taskHandler.Team)
	taskGroup.GET("/:id", taskHandler.Get)
	taskGroup.PUT("/:id", taskHandler.Update)

	// Project routes (authenticated)
	projectGroup := v1.Group("/projects", s.authMiddleware(authService))
	projectGroup.GET("", projectHandler.List)
	projectGroup.POST("", projectHandler.Create, s.requireRole(entities.RoleLead, entities.RoleAdmin))

	// Reminder routes (authenticated)
	reminderGroup := v1.Group("/reminders", s.authMiddleware(authService))
	reminderGroup.POST("/run", reminderHandler.Run)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Database health check
	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  "1.21",
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
			if s, ok := msg.(string); ok {
				msg = map[string]string{"error": s}
			}
		} else if ve, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"error": "validation failed", "details": ve.Error()}
		} else {
			msg = map[string]string{"error": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
