package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"invoicesync/internal/logger"
)

// OrderProcessor runs one order end to end.
type OrderProcessor interface {
	ProcessByID(ctx context.Context, id int64) error
}

type Config struct {
	Addr        string
	ReadTimeout time.Duration
}

// Server is the HTTP front-end the browser extension talks to. It accepts
// a batch of order ids and reports per-order success or failure.
type Server struct {
	config    Config
	engine    *gin.Engine
	processor OrderProcessor
	log       zerolog.Logger
}

func New(cfg Config, proc OrderProcessor) *Server {
	s := &Server{
		config:    cfg,
		processor: proc,
		log:       logger.WithComponent("server"),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())
	engine.Use(requestID())
	engine.Use(accessLog())

	engine.POST("/process_orders", s.processOrders)
	engine.GET("/healthz", s.healthz)

	s.engine = engine
	return s
}

// Handler exposes the route tree.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
// Only a read timeout is applied: a batch holds its response open for as
// long as the orders take to process.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.config.Addr,
		Handler:     s.engine,
		ReadTimeout: s.config.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.config.Addr).Msg("Front-end listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down front-end")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
