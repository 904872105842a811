package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/skcvote/ballotd/internal/core"
)

type Server struct {
	injector *do.Injector

	Router *gin.Engine
	Logger logrus.FieldLogger

	server http.Server
}

// NewServer creates a new Server instance.
func NewServer(injector *do.Injector, name string, port int) (*Server, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	logger = logger.WithField("component", name)

	router := gin.New()

	router.Use(JSONRecovery())
	router.Use(LoggingMiddleware(logger))
	router.Use(JSONErrorHandler(logger))
	router.Use(BodySizeLimit(core.MaxRequestBodyBytes))

	return &Server{
		injector: injector,
		Router:   router,
		Logger:   logger,
		server: http.Server{
			Addr:              fmt.Sprintf("0.0.0.0:%d", port),
			Handler:           router,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}, nil
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	s.Logger.Info("Starting server at: ", s.server.Addr)

	err := s.server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

func (s *Server) HealthCheck() error {
	return nil
}

func (s *Server) Shutdown() error {
	s.Logger.Info("Server shutting down...")
	defer s.Logger.Info("Server shot down.")

	return s.server.Shutdown(context.Background())
}
