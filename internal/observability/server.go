package observability

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server is the operational sidecar: it exposes the Prometheus registry and
// the liveness/readiness probes on their own port so scrapes and probe
// traffic never contend with enrichment requests.
type Server struct {
	server *http.Server
	addr   string
	ready  atomic.Bool
}

// NewServer builds the sidecar on addr. The readiness probe reports 503
// until SetReady is called, so orchestrators hold traffic while the API
// server is still coming up.
func NewServer(addr string) *Server {
	s := &Server{addr: addr}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// handleHealth answers liveness: the process is up and serving.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady answers readiness: 503 until the API server accepts traffic.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("starting"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// SetReady flips the readiness probe. Call with true once the API listener
// is accepting connections, and with false when shutdown begins.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Start serves the sidecar in a background goroutine.
func (s *Server) Start() {
	go func() {
		log.Info().Str("addr", s.addr).Msg("Starting observability HTTP server")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Observability HTTP server error")
		}
	}()
}

// Shutdown gracefully shuts down the sidecar.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down observability HTTP server")
	return s.server.Shutdown(ctx)
}
