package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ppiankov/trendscope/internal/logger"
	"github.com/ppiankov/trendscope/internal/model"
)

// Runner starts analyses in the background
type Runner interface {
	StartAnalysis(ctx context.Context, topic string) (uint64, error)
	Wait()
}

// Board exposes the published batch
type Board interface {
	Snapshot() (*model.AnalysisBatch, bool)
	LatestRun() uint64
}

// Server is the trendscope HTTP API
type Server struct {
	runner Runner
	board  Board
	engine *gin.Engine
	log    logrus.FieldLogger

	// runCtx outlives individual requests and is cancelled on shutdown
	runCtx    context.Context
	cancelRun context.CancelFunc
}

// New creates the API server and registers its routes
func New(runner Runner, board Board, log logrus.FieldLogger) *Server {
	log = logger.Or(log).WithField("component", "http")

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))

	runCtx, cancel := context.WithCancel(context.Background())
	s := &Server{
		runner:    runner,
		board:     board,
		engine:    engine,
		log:       log,
		runCtx:    runCtx,
		cancelRun: cancel,
	}

	engine.GET("/healthz", s.handleHealth)
	api := engine.Group("/api")
	api.GET("/topics", s.handleTopics)
	api.POST("/analyze", s.handleAnalyze)
	api.GET("/batch", s.handleBatch)

	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := httpServer.Shutdown(shutdownCtx)
	s.cancelRun()
	s.runner.Wait()
	return err
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).Round(time.Millisecond),
		}).Debug("Request handled")
	}
}
