package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/startup-idea-agent/internal/a2a"
	"github.com/BerylCAtieno/startup-idea-agent/internal/api"
	"github.com/BerylCAtieno/startup-idea-agent/internal/config"
	"github.com/BerylCAtieno/startup-idea-agent/internal/ideagen"
	"github.com/BerylCAtieno/startup-idea-agent/internal/logger"
	"github.com/BerylCAtieno/startup-idea-agent/internal/metrics"
	"github.com/BerylCAtieno/startup-idea-agent/internal/storage"
	"github.com/BerylCAtieno/startup-idea-agent/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveBaseURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start an HTTP server exposing the idea generation proxy, saved ideas, profiles and the A2A endpoint.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveBaseURL, "base-url", "", "Public base URL advertised in the agent card (default http://localhost:<port>)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	logger.Init(cfg.Server.LogLevel)

	baseURL := serveBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}

	app, err := newApp(cmd.Context(), cfg, baseURL)
	if err != nil {
		return err
	}
	defer app.Close()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
		// a generate call may take up to the full upstream timeout per attempt
		WriteTimeout: cfg.AI.Timeout*time.Duration(cfg.AI.MaxRetries+1) + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Startup Idea Agent starting on port %d", cfg.Server.Port)
		logger.Infof("Agent card available at: %s%s", baseURL, a2a.AgentCardPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}

	logger.Infof("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Infof("Server stopped")
	return nil
}

// app holds the wired router and everything that must be released on exit.
type app struct {
	router  *gin.Engine
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp wires every component named by cfg. Optional components
// (database, object storage, auth, Redis) are skipped when unconfigured.
func newApp(ctx context.Context, cfg *config.Config, baseURL string) (*app, error) {
	a := &app{}

	generator, err := ideagen.NewFromConfig(ctx, cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	a.closers = append(a.closers, func() { _ = generator.Close() })
	if cfg.AI.APIKey == "" {
		logger.Warnf("%s is not set; generate requests will fail until it is configured", cfg.AI.CredentialEnv())
	}

	var st store.Store
	if cfg.Database.URL != "" {
		pg, err := store.Connect(ctx, cfg.Database.URL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		st = pg
	} else {
		logger.Warnf("DATABASE_URL not set; saved ideas are kept in memory")
		st = store.NewMemoryStore()
	}
	a.closers = append(a.closers, st.Close)

	opts := api.Options{
		Generator: generator,
		Store:     st,
	}

	if cfg.MinIO.Endpoint != "" {
		objects, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialise object storage: %w", err)
		}
		opts.Objects = objects
	}

	if cfg.Auth.JWTSecret != "" {
		verifier, err := api.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience)
		if err != nil {
			a.Close()
			return nil, err
		}
		opts.Verifier = verifier
	}

	if cfg.RateLimit.Enabled {
		if cfg.Redis.Addr != "" {
			client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
			a.closers = append(a.closers, func() { _ = client.Close() })
			opts.RateLimit = api.RedisRateLimitMiddleware(client, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Window)
			logger.Infof("rate limiting via redis at %s", cfg.Redis.Addr)
		} else {
			opts.RateLimit = api.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
			logger.Infof("rate limiting in memory")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)
	opts.Gatherer = reg

	a.router = api.NewRouter(opts)
	a2a.NewA2AHandler(generator, baseURL).Register(a.router)
	return a, nil
}
