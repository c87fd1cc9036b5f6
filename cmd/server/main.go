package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pricelens/backend/config"
	httpDelivery "github.com/pricelens/backend/internal/delivery/http"
	"github.com/pricelens/backend/internal/infrastructure/ratelimit"
	"github.com/pricelens/backend/internal/infrastructure/storage"
	"github.com/pricelens/backend/internal/usecase"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PriceLens item reference service v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store driver: %s", cfg.Store.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Printf("Server stopped cleanly")
}

func run(ctx context.Context, cfg *config.Config) error {
	// Initialize infrastructure dependencies
	store, closeStore, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer closeStore()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	// Enable debug logging in development environment
	debug := cfg.Logging.Debug || cfg.Server.Environment == "development"
	if debug {
		log.Printf("Debug logging enabled")
	}

	// Initialize usecase layer
	ids := usecase.NewRandomIDGenerator()
	resolver := usecase.NewResolverService(store, usecase.ResolverConfig{
		EnableDebugLogging: debug,
	})
	batch := usecase.NewBatchService(store, ids, usecase.BatchConfig{
		MaxRows:            cfg.Batch.MaxRows,
		IDAttempts:         cfg.Batch.IDAttempts,
		EnableDebugLogging: debug,
	})
	items := usecase.NewItemService(store, ids, cfg.Batch.IDAttempts)

	log.Printf("Batch: max_rows=%d, id_attempts=%d", batch.MaxRows(), cfg.Batch.IDAttempts)

	g, gctx := errgroup.WithContext(ctx)

	var limiter *ratelimit.Registry
	if cfg.RateLimit.PerIP > 0 {
		limiter = ratelimit.NewRegistry(cfg.RateLimit.PerIP, cfg.RateLimit.Burst, 10*time.Minute)
		g.Go(func() error {
			limiter.Run(gctx.Done(), time.Minute)
			return nil
		})
		log.Printf("Rate limit: %d/min per IP (burst %d)", cfg.RateLimit.PerIP, cfg.RateLimit.Burst)
	} else {
		log.Printf("WARNING: rate limiting disabled")
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(resolver, batch, items)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, limiter)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Printf("Shutting down (timeout %s)", cfg.Server.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
