package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"sessiongate/internal/audit"
	"sessiongate/internal/billing"
	"sessiongate/internal/identity"
	"sessiongate/internal/platform/config"
	"sessiongate/internal/platform/httpserver"
	"sessiongate/internal/platform/logger"
	"sessiongate/internal/platform/metrics"
	platformredis "sessiongate/internal/platform/redis"
	"sessiongate/internal/session"
	httptransport "sessiongate/internal/transport/http"
	"sessiongate/internal/userdb"
)

// main wires the dependencies and keeps the server lifecycle small. Business
// logic lives in the internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		panic(err)
	}
	log := logger.New()
	m := metrics.New(prometheus.DefaultRegisterer)

	ctx := context.Background()

	// User record store: Postgres when configured, memory otherwise (dev).
	var users userdb.Store
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := userdb.Migrate(ctx, db); err != nil {
			log.Error("migrate database", "error", err)
			os.Exit(1)
		}
		users = userdb.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory user store")
		users = userdb.NewMemory()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	var health httptransport.HealthChecker
	if redisClient != nil {
		health = redisClient
	}

	var sink audit.Sink = audit.NewLogSink(log)
	if len(cfg.Audit.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Audit.Brokers, cfg.Audit.Topic)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	}
	publisher := audit.NewPublisher(sink, log)

	identityGateway := identity.New(cfg.Identity.BaseURL, cfg.Identity.AdminToken, cfg.Identity.Timeout)
	billingGateway := billing.NewStripe(cfg.Billing.SecretKey, nil)
	plans := billing.NewPlanCache(billingGateway, redisClient, cfg.Billing.PlanCacheTTL, log)

	verifier := session.NewVerifier(identityGateway)
	refresher := session.NewRefresher(verifier, identityGateway, users, log)

	handler := httptransport.NewHandler(httptransport.HandlerConfig{
		Identity:       identityGateway,
		Verifier:       verifier,
		Refresher:      refresher,
		Users:          users,
		Billing:        billingGateway,
		Plans:          plans,
		Audit:          publisher,
		Metrics:        m,
		Log:            log,
		Health:         health,
		SiteURL:        cfg.SiteURL,
		DefaultPriceID: cfg.Billing.DefaultPriceID,
		WebhookSecret:  cfg.Billing.UpdatesWebhookSecret,
	})
	router := httptransport.NewRouter(handler)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting sessiongate", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("sessiongate stopped")
}
