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

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/cache"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/database"
	casestudies "github.com/aakashkavuru101/Product-Marketing-portfolio/source/entities/case_studies"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/entities/frameworks"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/entities/health"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/entities/metrics"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/entities/report"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/logger"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/middlewares"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/observability"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"
)

const SHUTDOWN_TIMEOUT = 15 * time.Second

func main() {
	if err := utils.LoadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Env == utils.ENV_RELEASE {
		log.Warn("running in PRODUCTION environment")
	} else {
		log.Info("current environment", "env", cfg.Env)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

func run(ctx context.Context, cfg utils.Config, log *logger.Logger) error {
	shutdownTracing, err := observability.InitTracing(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdownTracing(context.Background())

	store, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close(context.Background())
	log.Info("store connected", "driver", cfg.StoreDriver)

	statsCache, err := cache.New(cfg.RedisURI, cfg.StatsCacheTTL)
	if err != nil {
		return fmt.Errorf("open stats cache: %w", err)
	}
	defer statsCache.Close()
	if err := statsCache.Ping(ctx); err != nil {
		log.Warn("stats cache unreachable, continuing without it", "error", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, store, statsCache, log),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", "port", cfg.Port, "at", time.Now().Format("2006-01-02 15:04:05"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter wires every route and the middleware chain. statsCache may be nil.
func NewRouter(cfg utils.Config, store database.Store, statsCache report.StatsCache, log *logger.Logger) http.Handler {
	caseStudies := casestudies.NewHandler(store, log)
	frameworksHandler := frameworks.NewHandler(store, log)
	metricsHandler := metrics.NewHandler(store, log)
	reportHandler := report.NewHandler(store, statsCache, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", health.GetRoot)

	mux.HandleFunc("GET /api/case-studies", caseStudies.GetAll)
	mux.HandleFunc("GET /api/case-studies/{id}", caseStudies.GetOne)

	mux.HandleFunc("GET /api/frameworks", frameworksHandler.GetAll)

	mux.HandleFunc("GET /api/metrics/{id}", metricsHandler.GetAllByCaseStudy)

	mux.HandleFunc("GET /api/dashboard-stats", reportHandler.GetDashboardStats)
	mux.HandleFunc("GET /api/ws/dashboard-stats", reportHandler.DashboardStatsWebSocket)

	mux.HandleFunc(health.FALLBACK_PATTERN, health.Fallback(mux))

	return middlewares.Chain(mux,
		middlewares.RequestID,
		middlewares.RequestLogger(log),
		middlewares.Tracing,
		middlewares.SecurityHeaders,
		middlewares.Cors(cfg.CorsAllowedOrigins),
	)
}
