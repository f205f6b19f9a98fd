// Package app assembles the full assessment service from configuration and
// runs the HTTP server. Both the server binary and the CLI serve command use
// it.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	assessmenthandler "fairmeter/internal/assessment/handler"
	assessmentmetrics "fairmeter/internal/assessment/metrics"
	"fairmeter/internal/assessment/service"
	"fairmeter/internal/assessment/store"
	"fairmeter/internal/discipline"
	"fairmeter/internal/harvest"
	"fairmeter/internal/identifier"
	"fairmeter/internal/indicator"
	"fairmeter/internal/platform/config"
	"fairmeter/internal/platform/httpserver"
	platformmetrics "fairmeter/internal/platform/metrics"
	platformredis "fairmeter/internal/platform/redis"
	"fairmeter/internal/platform/token"
	httptransport "fairmeter/internal/transport/http"
	"fairmeter/pkg/platform/audit"
	auditkafka "fairmeter/pkg/platform/audit/publishers/kafka"
	auditmem "fairmeter/pkg/platform/audit/store/memory"
)

// Run wires every component and serves HTTP until the process receives an
// interrupt or the server fails.
func Run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer st.Close()

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var liveness identifier.LivenessChecker = identifier.NewHTTPChecker(
		cfg.Liveness.Timeout,
		identifier.WithLogger(log),
	)
	if redisClient != nil {
		liveness = identifier.NewCachedChecker(liveness, redisClient.Client, cfg.Liveness.CacheTTL, log)
	}

	profiles, err := discipline.Load(cfg.Discipline.CatalogPath)
	if err != nil {
		return err
	}
	if !profiles.Empty() {
		log.Info("discipline catalog loaded",
			"profiles", profiles.Names(),
			"active", cfg.Discipline.Profile,
		)
	}

	engine := indicator.New(
		indicator.Services{
			Liveness: liveness,
			Profiles: profiles,
			Profile:  cfg.Discipline.Profile,
		},
		indicator.WithLogger(log),
		indicator.WithParallelism(cfg.Parallelism),
	)

	auditTrail := auditmem.New()
	auditInbox := make(chan audit.Event, 256)
	go func() {
		err := audit.NewWorker(auditTrail, auditInbox).Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()
	sinks := []audit.Sink{audit.NewChannelSink(auditInbox)}
	if len(cfg.Audit.KafkaBrokers) > 0 {
		kafkaSink, err := auditkafka.New(cfg.Audit.KafkaBrokers, cfg.Audit.KafkaTopic)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
		log.Info("audit events forwarded to kafka",
			"brokers", cfg.Audit.KafkaBrokers,
			"topic", cfg.Audit.KafkaTopic,
		)
	}

	sources := func(endpoint string) (harvest.Source, error) {
		return harvest.NewClient(endpoint, cfg.Harvest.Timeout, harvest.WithLogger(log))
	}

	svc := service.New(sources, engine, st,
		service.WithLogger(log),
		service.WithAuditPublisher(audit.NewFanout(sinks...)),
		service.WithMetrics(assessmentmetrics.New()),
		service.WithDefaultEndpoint(cfg.Harvest.Endpoint),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		Metrics:      platformmetrics.New(),
		Assessments:  assessmenthandler.New(svc, log),
		Validator:    token.NewService(cfg.Server.JWTSigningKey, "fairmeter", "fairmeter-api"),
		AdminKeyHash: cfg.Server.AdminKeyHash,
		AuditTrail:   auditTrail,
		Health: func(ctx context.Context) error {
			if redisClient != nil {
				return redisClient.Health(ctx)
			}
			return nil
		},
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting fairmeter", "addr", cfg.Server.Addr, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
