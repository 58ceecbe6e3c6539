package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-console-gateway/apiclient"
	"github.com/jrsteele09/go-console-gateway/console"
	"github.com/jrsteele09/go-console-gateway/gate"
	"github.com/jrsteele09/go-console-gateway/gateway"
	"github.com/jrsteele09/go-console-gateway/internal/config"
	"github.com/jrsteele09/go-console-gateway/internal/logging"
	"github.com/jrsteele09/go-console-gateway/internal/metrics"
	"github.com/jrsteele09/go-console-gateway/server"
	"github.com/jrsteele09/go-console-gateway/sessions"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		log.Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}
	logging.Init(c.GetLogLevel(), c.GetEnv())
	displayAppname(c.GetAppName())

	handler, err := newHandler(c)
	if err != nil {
		log.Err(err).Msg("Failed to build server")
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() { errs <- listenAndServe(srv) }()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

// newHandler wires the console from configuration.
func newHandler(c config.Config) (http.Handler, error) {
	if c.IsFallbackSecret() {
		log.Warn().Msg("SECRET_KEY is not set, sessions are signed with the insecure fallback secret")
	}

	m := metrics.New()

	codec, err := sessions.NewCodec(c.GetSigningSecret(), c.GetSessionTTL())
	if err != nil {
		return nil, fmt.Errorf("[main newHandler] %w", err)
	}
	store := sessions.NewStore(codec, sessions.StoreConfig{
		CookieName: c.GetCookieName(),
		CookieTTL:  c.GetCookieTTL(),
		Secure:     c.GetCookieSecure(),
	})

	routes, err := gate.ParseRoleRoutes(c.GetRoleRoutes())
	if err != nil {
		return nil, fmt.Errorf("[main newHandler] invalid role routes: %w", err)
	}
	g, err := gate.New(gate.Config{
		Store:   store,
		Routes:  routes,
		Public:  c.GetPublicRoutes(),
		Metrics: m,
	})
	if err != nil {
		return nil, fmt.Errorf("[main newHandler] %w", err)
	}

	client := apiclient.New(apiclient.Config{
		BaseURL: c.GetBackendURL(),
		Timeout: c.GetRequestTimeout(),
		Metrics: m,
	})
	gw := gateway.New(client, gateway.Config{LogoutOnUnauthorized: c.GetLogoutOnUnauthorized()})

	log.Info().
		Str("backend", c.GetBackendURL()).
		Dur("timeout", c.GetRequestTimeout()).
		Strs("roles", routes.Roles()).
		Msg("console gateway configured")

	return server.New(c.GetEnv(), console.New(gw, store), g, m)
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
