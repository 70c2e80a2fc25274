package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nikbrunner/nota/internal/collection"
	"github.com/nikbrunner/nota/internal/logger"
	"github.com/nikbrunner/nota/internal/storage"
)

// Server exposes the note collection over an HTTP JSON API so a browser
// front end can drive it.
type Server struct {
	manager *collection.Manager
	gateway *storage.Gateway
	echo    *echo.Echo
}

// New creates a new server around an already-hydrated manager.
func New(manager *collection.Manager, gateway *storage.Gateway) *Server {
	s := &Server{
		manager: manager,
		gateway: gateway,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Request logging through the app logger
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("http request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")
	api.GET("/notes", s.handleListNotes)
	api.POST("/notes", s.handleCreateNote)
	api.GET("/notes/:id", s.handleGetNote)
	api.PUT("/notes/:id", s.handleUpdateNote)
	api.DELETE("/notes/:id", s.handleDeleteNote)
	api.POST("/notes/:id/pin", s.handleTogglePin)
	api.GET("/tags", s.handleListTags)
	api.GET("/darkmode", s.handleGetDarkMode)
	api.PUT("/darkmode", s.handleSetDarkMode)
	api.GET("/events", s.handleEvents)

	s.echo = e
}

// Router returns the HTTP handler, for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
