package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Options struct {
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct{ mux *chi.Mux }

func New(opts Options) *Server {
	m := chi.NewRouter()

	// middlewares must be registered before any route
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	if opts.RequestTimeout > 0 {
		m.Use(Timeout(opts.RequestTimeout))
	}
	m.Use(Metrics)
	m.Use(Logger(log.Logger))
	if opts.RateLimitRPS > 0 {
		m.Use(RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	}

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
