package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/fadhlanhapp/volleyleague-backend/config"
	"github.com/fadhlanhapp/volleyleague-backend/handlers"
	"github.com/fadhlanhapp/volleyleague-backend/logging"
	"github.com/fadhlanhapp/volleyleague-backend/metrics"
	"github.com/fadhlanhapp/volleyleague-backend/models"
	"github.com/fadhlanhapp/volleyleague-backend/repository"
	"github.com/fadhlanhapp/volleyleague-backend/routes"
	"github.com/fadhlanhapp/volleyleague-backend/services"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	payments      repository.PaymentStore
	members       repository.MemberDirectory
	registrations repository.RegistrationStore
	db            *sql.DB
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	// Initialize New Relic; a nil application disables instrumentation
	var app *newrelic.Application
	if cfg.NewRelicLicense != "" {
		nrApp, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelicAppName),
			newrelic.ConfigLicense(cfg.NewRelicLicense),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			slog.Warn("Failed to initialize New Relic", "error", err)
		} else {
			app = nrApp
			defer app.Shutdown(shutdownTimeout)
		}
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	if st.db != nil {
		defer st.db.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	paymentMetrics := metrics.New(registry)

	// Initialize services
	paymentService := services.NewPaymentService(st.payments, st.members,
		services.WithGraceDays(cfg.OverdueGraceDays),
		services.WithMetrics(paymentMetrics),
	)
	scheduler := services.NewReconciliationScheduler(paymentService, cfg.ReconcileInterval, cfg.ReconcileOnStart, app)
	registrationService := services.NewRegistrationService(st.registrations)
	excelService := services.NewExcelService(paymentService)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	if app != nil {
		router.Use(nrgin.Middleware(app))
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	routes.SetupRoutes(router, routes.Handlers{
		Payments: handlers.NewPaymentHandler(paymentService, scheduler),
		Export:   handlers.NewExportHandler(excelService),
		League:   handlers.NewLeagueHandler(registrationService),
	}, registry)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "port", cfg.Port, "storage", cfg.Storage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	if cfg.Storage == config.StorageMemory {
		slog.Warn("Using in-memory storage; data is lost on restart", "seed_members", len(cfg.SeedMembers))
		members := repository.NewMemoryMemberRepository()
		for _, id := range cfg.SeedMembers {
			members.Add(models.Member{ID: id})
		}
		return &stores{
			payments:      repository.NewMemoryPaymentRepository(),
			members:       members,
			registrations: repository.NewMemoryRegistrationRepository(),
		}, nil
	}

	db, err := repository.OpenDB(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &stores{
		payments:      repository.NewPaymentRepository(db),
		members:       repository.NewMemberRepository(db),
		registrations: repository.NewRegistrationRepository(db),
		db:            db,
	}, nil
}
