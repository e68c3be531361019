// commitmetrics-api serves repository analytics over REST
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commitmetrics/internal/modkit"
	"commitmetrics/internal/modkit/httpkit"
	"commitmetrics/internal/modkit/module"
	"commitmetrics/internal/platform/config"
	"commitmetrics/internal/platform/logger"
	phttp "commitmetrics/internal/platform/net/http"
	"commitmetrics/internal/platform/store"
	analysismod "commitmetrics/internal/services/analysis/module"
	sessionsmod "commitmetrics/internal/services/sessions/module"
)

func main() {
	logger.Init(logger.FromEnv())
	log := logger.Named("main")

	cfg := config.New().Prefix("CM_")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		KV: store.KVConfig{
			Backend: cfg.MayEnum("KV_BACKEND", "sqlite", "sqlite", "memory"),
			Path:    cfg.MayString("KV_PATH", "commitmetrics.db"),
		},
	}, store.WithLogger(*logger.Named("store")))
	if err != nil {
		log.Fatal().Err(err).Msg("store open failed")
	}
	defer st.Close(context.Background()) // nolint:errcheck

	deps := modkit.Deps{Log: *log, Cfg: cfg, KV: st.KV}
	analysis := analysismod.New(deps)
	sessions := sessionsmod.New(deps)
	module.Register(analysis.Name(), analysis.Ports())
	module.Register(sessions.Name(), sessions.Ports())

	srv := phttp.NewServer(cfg.Prefix("API_"))
	root := srv.Router()
	root.Use(httpkit.CommonStack()...)
	httpkit.MountAPIV1(root, nil, func(api httpkit.Router) {
		analysis.MountRoutes(api)
		sessions.MountRoutes(api)
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errc:
		if err != nil {
			log.Fatal().Err(err).Msg("http server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("bye")
}
