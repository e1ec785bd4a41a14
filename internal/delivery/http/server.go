package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/config"
	"github.com/huc-prioritizer/internal/delivery/http/handler"
	"github.com/huc-prioritizer/internal/delivery/http/middleware"
	"github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/pkg/metrics"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	metrics  *metrics.Collector
	gatherer prometheus.Gatherer

	// Handlers
	referenceHandler *handler.ReferenceHandler
	sessionHandler   *handler.SessionHandler
	scenarioHandler  *handler.ScenarioHandler
	explorerHandler  *handler.ExplorerHandler
}

// NewServer - создание нового HTTP сервера.
// gatherer может быть nil, тогда /metrics не регистрируется.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	collector *metrics.Collector,
	gatherer prometheus.Gatherer,
	referenceHandler *handler.ReferenceHandler,
	sessionHandler *handler.SessionHandler,
	scenarioHandler *handler.ScenarioHandler,
	explorerHandler *handler.ExplorerHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "HUC-12 Prioritizer",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    16 * 1024 * 1024, // нарисованные полигоны бывают большими
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		metrics:          collector,
		gatherer:         gatherer,
		referenceHandler: referenceHandler,
		sessionHandler:   sessionHandler,
		scenarioHandler:  scenarioHandler,
		explorerHandler:  explorerHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(middleware.Metrics(s.metrics))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.gatherer != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Reference routes
	api.Get("/criteria", s.referenceHandler.GetCriteria)
	api.Get("/reference/regions", s.referenceHandler.GetRegions)
	api.Get("/reference/basins", s.referenceHandler.GetBasins)

	// Session routes
	sessions := api.Group("/sessions")
	sessions.Post("/", s.sessionHandler.Create)
	sessions.Get("/:id", s.sessionHandler.Get)
	sessions.Delete("/:id", s.sessionHandler.Delete)
	sessions.Put("/:id/policy", s.sessionHandler.SetPolicy)
	sessions.Put("/:id/aoi/mode", s.sessionHandler.SetMode)
	sessions.Post("/:id/aoi/picks", s.sessionHandler.Pick)
	sessions.Put("/:id/aoi/geometry", s.sessionHandler.SetGeometry)
	sessions.Post("/:id/reset", s.sessionHandler.Reset)

	// Scenario routes
	sessions.Post("/:id/scenario", s.scenarioHandler.Run)
	sessions.Get("/:id/scenario", s.scenarioHandler.GetResult)
	sessions.Get("/:id/scenario/export", s.scenarioHandler.Export)
	api.Post("/scenarios/evaluate", s.scenarioHandler.Evaluate)

	// Explorer
	api.Get("/units/at", s.explorerHandler.UnitAt)
}

// App - доступ к fiber.App для тестов
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appErr := errors.ErrInternalServer

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			appErr = errors.New("HTTP_ERROR", e.Message, e.Code)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{"error": appErr})
	}
}
