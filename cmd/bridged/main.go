// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-bridge-match/pkg/adminapi"
	"github.com/AccelByte/extend-bridge-match/pkg/async"
	"github.com/AccelByte/extend-bridge-match/pkg/common"
	"github.com/AccelByte/extend-bridge-match/pkg/config"
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/environment"
	"github.com/AccelByte/extend-bridge-match/pkg/events"
	"github.com/AccelByte/extend-bridge-match/pkg/geom"
	"github.com/AccelByte/extend-bridge-match/pkg/headless"
	"github.com/AccelByte/extend-bridge-match/pkg/maps"
	"github.com/AccelByte/extend-bridge-match/pkg/match"
	"github.com/AccelByte/extend-bridge-match/pkg/matchmaker"
	"github.com/AccelByte/extend-bridge-match/pkg/messages"
	"github.com/AccelByte/extend-bridge-match/pkg/metrics"
	"github.com/AccelByte/extend-bridge-match/pkg/server"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
	"github.com/AccelByte/extend-bridge-match/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	common.SetupLogger(cfg.LogLevel, cfg.LogJSON)

	if err := run(cfg); err != nil {
		logrus.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the engine outlives signalCtx so the shutdown can still save sessions
	ctx := context.Background()

	shutdownTracing, err := setupTracing(ctx, cfg.ZipkinEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			logrus.WithError(err).Warn("failed to flush traces")
		}
	}()

	scope := envelope.NewRootScope(ctx, "bridged", "")
	defer scope.Finish()

	statsStore, closeStats, err := openStatsStore(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer closeStats()

	catalog, err := messages.Load(cfg.MessagesFile)
	if err != nil {
		return err
	}

	store, err := maps.Load(scope, cfg.MapsDirectory)
	if err != nil {
		return err
	}
	if len(store.Playable()) == 0 {
		return maps.ErrNoMaps
	}
	scope.Log.WithField("maps", common.LogJSONFormatter(store.Names())).Info("map store ready")

	provider := &environment.Filesystem{
		MapsDir:   cfg.MapsDirectory,
		WorldsDir: cfg.WorldsDirectory,
		Loader:    headless.Loader{LobbySpawn: geom.Location{Vec3: geom.Vec3{X: 0.5, Y: 100, Z: 0.5}}},
	}
	provider.CleanupStale(scope.Log)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	bus := events.NewInProcessBus(logrus.StandardLogger())
	defer func() {
		if err := bus.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close event bus")
		}
	}()
	if err := logEvents(signalCtx, bus); err != nil {
		return err
	}

	pool := async.NewPool(ctx, cfg.ProvisionWorkers, cfg.ResultBufferSize)
	defer pool.Close()

	clock := clockwork.NewRealClock()
	host := &match.Host{
		Config:      cfg,
		Executor:    pool,
		Environment: provider,
		Messages:    catalog,
		Metrics:     metrics.NewMetrics(promRegistry),
		Events:      bus,
		Clock:       clock,
		Rand:        common.NewRandom(),
	}
	registry := matchmaker.NewRegistry(store, host, session.NewManager(statsStore, pool))
	loop := server.NewLoop(cfg, registry, clock)
	go loop.Run(ctx)

	httpServer := &http.Server{
		Addr:              cfg.AdminListenAddress,
		Handler:           adminapi.NewHandler(loop, registry, provider, promRegistry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		scope.Log.WithField("address", cfg.AdminListenAddress).Info("admin api listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-signalCtx.Done():
		scope.Log.Info("shutting down")
	case err = <-serveErr:
		scope.Log.WithError(err).Error("admin api failed")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		scope.Log.WithError(err).Warn("failed to shut down admin api")
	}

	loop.Stop()
	pool.Wait()
	for _, result := range pool.Drain() {
		if saved, ok := result.(session.StatsSaved); ok && saved.Err != nil {
			scope.Log.WithError(saved.Err).WithField(envelope.PlayerIDLogField, saved.PlayerID).Error("failed to save stats on shutdown")
		}
	}

	return err
}

func openStatsStore(ctx context.Context, dsn string) (storage.StatsStore, func(), error) {
	if dsn == "" {
		logrus.Warn("no database configured, player stats are kept in memory")
		return storage.NewMemoryStatsStore(), func() {}, nil
	}

	store, err := storage.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}

	return store, func() {
		if err := store.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close database")
		}
	}, nil
}

// logEvents writes every lifecycle event to the debug log.
func logEvents(ctx context.Context, bus *events.Bus) error {
	for _, topic := range events.Topics {
		stream, err := bus.Subscribe(ctx, topic)
		if err != nil {
			return err
		}
		go func() {
			for event := range stream {
				logrus.WithFields(logrus.Fields{
					"topic":                  event.Topic,
					envelope.MatchIDLogField: event.MatchID,
					envelope.MapLogField:     event.Map,
				}).Debug(common.LogJSONFormatter(event))
			}
		}()
	}

	return nil
}
