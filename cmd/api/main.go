package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/minliz/udacimarket-backend/api/routes"
	"github.com/minliz/udacimarket-backend/internal/aisles"
	internalauth "github.com/minliz/udacimarket-backend/internal/auth"
	"github.com/minliz/udacimarket-backend/internal/customers"
	"github.com/minliz/udacimarket-backend/internal/departments"
	"github.com/minliz/udacimarket-backend/internal/employees"
	"github.com/minliz/udacimarket-backend/internal/products"
	"github.com/minliz/udacimarket-backend/internal/purchases"
	"github.com/minliz/udacimarket-backend/internal/suppliers"
	pkgauth "github.com/minliz/udacimarket-backend/pkg/auth"
	"github.com/minliz/udacimarket-backend/pkg/auth/session"
	"github.com/minliz/udacimarket-backend/pkg/config"
	"github.com/minliz/udacimarket-backend/pkg/db"
	"github.com/minliz/udacimarket-backend/pkg/logger"
	"github.com/minliz/udacimarket-backend/pkg/metrics"
	"github.com/minliz/udacimarket-backend/pkg/migrate"
	"github.com/minliz/udacimarket-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessions, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authenticator, err := internalauth.New(context.Background(), cfg.Auth)
	if err != nil {
		// The API can still serve token-bearing clients when the login
		// flow's client credentials are absent.
		logg.Warn(logg.WithField(context.Background(), "error", err.Error()),
			"login flow disabled, serving bearer-token clients only")
		authenticator = nil
	}

	verifier := pkgauth.NewVerifier(cfg.Auth)
	httpMetrics := metrics.NewHTTPMetrics()

	gdb := dbClient.DB()
	perPage := cfg.Listing.ItemsPerPage

	aisleRepo := aisles.NewRepository(gdb)
	customerRepo := customers.NewRepository(gdb)
	departmentRepo := departments.NewRepository(gdb)
	employeeRepo := employees.NewRepository(gdb)
	productRepo := products.NewRepository(gdb)
	supplierRepo := suppliers.NewRepository(gdb)
	purchaseRepo := purchases.NewRepository(gdb)

	aisleService, err := aisles.NewService(aisleRepo, dbClient, perPage)
	requireService(logg, "aisles", err)
	customerService, err := customers.NewService(customerRepo, dbClient, perPage)
	requireService(logg, "customers", err)
	departmentService, err := departments.NewService(departmentRepo, dbClient, perPage)
	requireService(logg, "departments", err)
	employeeService, err := employees.NewService(employeeRepo, dbClient, perPage)
	requireService(logg, "employees", err)
	productService, err := products.NewService(productRepo, dbClient, logg, perPage)
	requireService(logg, "products", err)
	supplierService, err := suppliers.NewService(supplierRepo, dbClient, perPage)
	requireService(logg, "suppliers", err)
	purchaseService, err := purchases.NewService(purchaseRepo, productRepo, customerRepo, dbClient, perPage)
	requireService(logg, "purchases", err)

	router := routes.NewRouter(
		cfg, logg, dbClient, redisClient,
		httpMetrics, verifier, authenticator, sessions,
		aisleService, customerService, departmentService, employeeService,
		productService, supplierService, purchaseService,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	if err := multierr.Combine(redisClient.Close(), dbClient.Close()); err != nil {
		logg.Error(ctx, "error closing resources", err)
	}

	logg.Info(ctx, "api server stopped")
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(context.Background(), "service", name), "failed to create service", err)
	os.Exit(1)
}
