package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorilla "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/skycastapp/skycast/internal/config"
	"github.com/skycastapp/skycast/internal/dashboard"
	"github.com/skycastapp/skycast/internal/handlers"
	"github.com/skycastapp/skycast/internal/weatherapi"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if cfg.APIKey == "" {
		logger.Warn("WEATHER_API_KEY is not set; weather fetches will fail until a key from weatherapi.com is configured")
	}

	client := weatherapi.NewClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}
	provider := weatherapi.NewRateLimited(client, cfg.RateLimitRPS, cfg.RateLimitBurst)

	coordinator := dashboard.New(provider, logger)

	// Load the default location up front so the first page render has data.
	// Non-fatal: a failed load leaves the retry affordance on the page.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := coordinator.LoadLocation(ctx, cfg.DefaultLocation); err != nil {
		logger.Warn("initial weather load failed", "location", cfg.DefaultLocation, "error", err)
	}
	cancel()

	h := handlers.New(coordinator)

	r := mux.NewRouter()
	r.HandleFunc("/", h.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/weather", h.HandleWeather).Methods(http.MethodGet)
	api.HandleFunc("/search", h.HandleSearch).Methods(http.MethodGet)
	api.HandleFunc("/refresh", h.HandleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/unit", h.HandleUnit).Methods(http.MethodPost)
	api.HandleFunc("/view", h.HandleView).Methods(http.MethodPost)

	// Serve static files
	fs := http.FileServer(http.Dir("static"))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))

	var handler http.Handler = r
	handler = gorilla.RecoveryHandler()(handler)
	handler = gorilla.CORS(
		gorilla.AllowedOrigins([]string{"*"}),
		gorilla.AllowedMethods([]string{"GET", "POST"}),
	)(handler)
	handler = gorilla.LoggingHandler(os.Stdout, handler)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	return startServer(server, logger)
}

func startServer(server *http.Server, logger *slog.Logger) error {
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverError := make(chan error, 1)

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case err := <-serverError:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			_ = server.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		logger.Info("server stopped gracefully")
	}

	return nil
}
