// Package server exposes the presentation boundary over HTTP: per domain a
// submitRecord, fetchAll and fetchSeries operation, plus the export and
// monthly report triggers. It is a thin layer; everything it returns comes
// straight from the ledger stores and the analytics functions.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rustyeddy/fintrack/config"
	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/logger"
	"github.com/rustyeddy/fintrack/report"
)

// Server owns the gin engine and its graceful shutdown.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
}

// New builds the engine and registers all routes.
func New(cfg *config.Config, store ledger.Store, gen *report.Generator, exp *report.Exporter) *Server {
	registerValidators()

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger)

	h := &handlers{store: store, exporter: exp, generator: gen}

	v1 := engine.Group("/api/v1")
	v1.POST("/:domain", h.submit)
	v1.GET("/:domain", h.fetchAll)
	v1.GET("/:domain/series/:kind", h.fetchSeries)
	v1.POST("/export/:domain", h.export)
	v1.POST("/report", h.generateReport)

	return &Server{cfg: cfg, engine: engine}
}

// registerValidators adds the ledgerdate rule used by the submit forms.
func registerValidators() {
	if v, okEngine := binding.Validator.Engine().(*validator.Validate); okEngine {
		_ = v.RegisterValidation("ledgerdate", func(fl validator.FieldLevel) bool {
			_, err := ledger.ParseDate(fl.Field().String())
			return err == nil
		})
	}
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Listen,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", s.cfg.Server.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sgn := make(chan os.Signal, 1)
	signal.Notify(sgn, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sgn:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
