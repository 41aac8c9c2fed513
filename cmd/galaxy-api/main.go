// @title         Galaxy API
// @version       0.1.0
// @description   Read only reporting over OpenStreetMap edits, validation results and tasking manager data

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"galaxy/internal/core/report"
	"galaxy/internal/core/version"
	"galaxy/internal/platform/config"
	"galaxy/internal/platform/logger"
	phttp "galaxy/internal/platform/net/http"
	"galaxy/internal/platform/store"

	"galaxy/internal/services/api"
)

// sourcePrefixes maps each report source to its env namespace
var sourcePrefixes = map[report.Source]string{
	report.SourceUnderpass:      "SERVICE_UNDERPASS_",
	report.SourceTaskingManager: "SERVICE_TM_",
	report.SourceRaw:            "SERVICE_RAW_",
}

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early, stamped with the build
	build := version.Info()
	logOpts := logger.FromEnv()
	if logOpts.Service == "" {
		logOpts.Service = build.Service
	}
	logOpts.StaticFields = map[string]string{"version": build.Version, "commit": build.Commit}
	logger.Init(logOpts)
	l := logger.Get()

	// a source without DBURL stays disabled and its endpoints answer 503
	cfg := store.Config{AppName: "galaxy-api"}
	for _, src := range report.Sources {
		cfg.Sources = append(cfg.Sources, sourceConfig(src.String(), root.Prefix(sourcePrefixes[src])))
	}

	st, err := store.Open(context.Background(), cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if len(st.Names()) == 0 {
		l.Warn().Msg("no report source configured; every report endpoint will answer 503")
	}

	// CORE_API_API_PORT and the CORE_API_*_TIMEOUT keys
	srv := phttp.NewServer(phttp.ServerConfigFrom(apiCfg))

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run until SIGINT or SIGTERM, then drain
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

func sourceConfig(name string, c config.Conf) store.SourceConfig {
	url := c.MayDSN("DBURL")
	return store.SourceConfig{
		Name: name,
		PG: store.PGConfig{
			Enabled:          url != "",
			URL:              url,
			MaxConns:         int32(c.MayInt("MAX_CONNS", 8)),
			SlowQueryMs:      c.MayInt("SLOW_MS", 2000),
			LogSQL:           c.MayBool("LOG_SQL", false),
			StatementTimeout: c.MayDuration("STATEMENT_TIMEOUT", 60*time.Second),
			ConnectRetries:   c.MayInt("CONNECT_RETRIES", 0),
		},
		Breaker: store.BreakerConfig{
			MinRequests:  uint32(c.MayInt("BREAKER_MIN_REQUESTS", 0)),
			FailureRatio: c.MayFloat64("BREAKER_FAILURE_RATIO", 0),
			Timeout:      c.MayDuration("BREAKER_TIMEOUT", 0),
		},
	}
}
