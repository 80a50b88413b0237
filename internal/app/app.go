package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/eliteemart/storefront/internal/domain/cart"
	"github.com/eliteemart/storefront/internal/domain/checkout"
	"github.com/eliteemart/storefront/internal/domain/order"
	"github.com/eliteemart/storefront/internal/domain/product"
	"github.com/eliteemart/storefront/internal/handler"
	"github.com/eliteemart/storefront/internal/storage/postgres"
	"github.com/eliteemart/storefront/pkg/health"
	"github.com/eliteemart/storefront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddLivenessCheck("gc_pause", time.Second, health.GCMaxPauseCheck(500*time.Millisecond))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Repositories.
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	apikeyRepo := postgres.NewAPIKeyRepository(pool)

	// The existence filter is a fast-path optimization; when seeding fails the
	// server still works, every lookup just hits the database.
	var filter *product.ExistenceFilter
	if products, err := productRepo.List(ctx); err != nil {
		lg.Warn("Seeding product filter failed, continuing without it", zap.Error(err))
	} else {
		ids := make([]string, len(products))
		for i, p := range products {
			ids[i] = p.ID
		}
		filter = product.NewExistenceFilter(ids)
		lg.Info("Product filter seeded", zap.Int("products", len(ids)))
	}

	// Session carts with background eviction.
	carts := cart.NewStore(cfg.Cart.TTL)
	carts.StartCleanup(ctx, cfg.Cart.CleanupInterval)

	// Checkout against the order-creation endpoint.
	submitter := checkout.NewSubmitter(
		carts,
		checkout.NewClient(cfg.Checkout.OrderEndpoint, cfg.Checkout.OrderAPIKey),
		cfg.Checkout.RedirectURL,
	)

	orderService := order.NewService(orderRepo)

	// HTTP handlers.
	h := handler.New(
		handler.Config{
			ImageBaseURL:        cfg.ImageBaseURL,
			PlaceholderImageURL: cfg.Cart.PlaceholderURL,
			Auth:                cfg.Auth.Settings(),
		},
		productRepo,
		filter,
		carts,
		submitter,
		orderService,
		apikeyRepo,
		[]byte(cfg.APIKeyPepper),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	h.Routes(mux)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(
			otelhttp.NewHandler(mux, "storefront-api",
				otelhttp.WithTracerProvider(m.TracerProvider()),
				otelhttp.WithMeterProvider(m.MeterProvider()),
			),
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization", "api_key"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:       cfg.RateLimit.Max,
				Window:    cfg.RateLimit.Window,
				SkipPaths: []string{"/livez", "/readyz"},
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("storefront-api", m.MeterProvider()),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
