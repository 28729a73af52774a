// @title         solna API
// @version       1.0
// @description   File change ingestion and read-back

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solna/internal/core/version"
	"solna/internal/modkit"
	"solna/internal/platform/config"
	"solna/internal/platform/logger"
	phttp "solna/internal/platform/net/http"
	"solna/internal/platform/store"
	str "solna/internal/platform/strings"

	"solna/internal/services/api"
	filesmod "solna/internal/services/files/module"
)

func main() {
	os.Exit(run())
}

func run() int {
	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*

	l.Info().Str("build", version.Short()).Msg("starting solna api")
	if !pgCfg.Has("DBURL") {
		l.Error().Msg("database url not set (SERVICE_PGSQL_DBURL)")
		return 1
	}
	l.Info().Str("db", str.MaskURL(pgCfg.MustString("DBURL"))).Msg("database url configured")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// open the platform store (postgres, optional clickhouse mirror)
	st, err := store.Open(ctx,
		store.Config{
			AppName: "solna-api",
			PG:      store.PGFromEnv(pgCfg),
			CH:      store.CHFromEnv(chCfg, "api"),
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Error().Err(err).Msg("store.Open failed; check the database is up and SERVICE_PGSQL_DBURL is correct")
		return 1
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
			return
		}
		l.Info().Msg("store closed")
	}()

	// http server (reads CORE_API_PORT / CORE_API_SHUTDOWN_TIMEOUT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	mods := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         *l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if !preflight(ctx, mods) {
		l.Error().Msg("database connectivity test failed; startup aborted")
		return 1
	}

	l.Info().
		Str("addr", srv.Addr()).
		Strs("endpoints", []string{"GET /", "POST /file-changed", "GET /photos", "GET /meta/ready"}).
		Msg("ready to receive requests")

	// run until SIGINT/SIGTERM, then drain within the shutdown timeout
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Dur("timeout", srv.ShutdownTimeout()).Msg("http server stopped uncleanly")
		return 1
	}
	l.Info().Msg("graceful shutdown completed")
	return 0
}

// preflight tests connectivity through the files record store and logs its pool
func preflight(ctx context.Context, mods []modkit.Module) bool {
	l := logger.Named("preflight")
	for _, m := range mods {
		ports, ok := m.Ports().(filesmod.Ports)
		if !ok {
			continue
		}
		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if !ports.Records.TestConnectivity(cctx) {
			return false
		}
		ps, err := ports.Records.PoolStatus()
		if err != nil {
			l.Warn().Err(err).Msg("pool status unavailable")
			return true
		}
		l.Info().
			Int("total_connections", ps.TotalConnections).
			Int("idle_connections", ps.IdleConnections).
			Int("waiting_requests", ps.WaitingRequests).
			Msg("database pool initialized")
		return true
	}
	l.Error().Msg("files module not mounted")
	return false
}
