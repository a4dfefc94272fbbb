// Package server exposes cell and module computations over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/elojah/pvcurve/internal/pv"
)

const (
	// Time allocated to in-flight requests on shutdown.
	shutdownTO = 5 * time.Second
)

type Config struct {
	Addr           string   `json:"addr" yaml:"addr" toml:"addr" env:"PV_ADDR" env-default:":8080"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins" env:"PV_ALLOWED_ORIGINS" env-default:"*"`
	Release        bool     `json:"release" yaml:"release" toml:"release" env:"PV_RELEASE"`
}

type Server struct {
	cfg Config

	router  *gin.Engine
	cells   *registry[*pv.Cell]
	modules *registry[*pv.Module]
}

// New builds the router and its routes.
func New(cfg Config) *Server {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		router:  gin.New(),
		cells:   newRegistry[*pv.Cell](),
		modules: newRegistry[*pv.Module](),
	}

	s.router.Use(logger())
	s.router.Use(recovery())

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/v1")
	{
		api.POST("/cells", s.CreateCell)
		api.GET("/cells/:id", s.GetCell)
		api.GET("/cells/:id/chart", s.GetCellChart)

		api.POST("/modules", s.CreateModule)
		api.GET("/modules/:id", s.GetModule)
		api.GET("/modules/:id/chart", s.GetModuleChart)
	}

	s.router.NoRoute(func(c *gin.Context) {
		abort(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	})

	return s
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.router)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("api listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTO)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
