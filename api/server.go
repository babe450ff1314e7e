// Package api serves the catalog, registry queries and the local model
// store over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cloudchase/oi-hub/discovery"
	"github.com/cloudchase/oi-hub/registry"
)

// Server is the HTTP API server.
type Server struct {
	manager  *registry.ModelManager
	hub      discovery.Hub
	searcher *discovery.Searcher
	addr     string
	log      zerolog.Logger
}

// NewServer creates a new API server.
func NewServer(mgr *registry.ModelManager, h discovery.Hub, addr string) *Server {
	return &Server{
		manager:  mgr,
		hub:      h,
		searcher: discovery.NewSearcher(h),
		addr:     addr,
		log:      log.Logger,
	}
}

// Searcher returns the searcher behind /api/search.
func (s *Server) Searcher() *discovery.Searcher { return s.searcher }

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, s)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("starting oi-hub API server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
