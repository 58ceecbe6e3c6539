package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/go-console-gateway/console"
	"github.com/jrsteele09/go-console-gateway/gate"
	"github.com/jrsteele09/go-console-gateway/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Server is the console front end: it gates every page and serves the
// results of the console actions.
type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	router  chi.Router
	console *console.Console
	gate    *gate.Gate
	metrics *metrics.Metrics
}

func New(env string, c *console.Console, g *gate.Gate, m *metrics.Metrics) (*Server, error) {
	if c == nil {
		return nil, fmt.Errorf("[Server New] console is required")
	}
	if g == nil {
		return nil, fmt.Errorf("[Server New] gate is required")
	}

	s := &Server{
		env:     env,
		router:  chi.NewRouter(),
		console: c,
		gate:    g,
		metrics: m,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	err := chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		logRoute(method, strings.TrimSuffix(route, "/*"))
		return nil
	})
	if err != nil {
		log.Err(err).Msg("failed to walk routes")
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}
