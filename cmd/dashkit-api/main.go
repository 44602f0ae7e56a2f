// @title         dashkit API
// @version       0.1.0
// @description   Paginated listings with search, filters, sorting and cursors
// @BasePath      /api/v1

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashkit/internal/modkit/httpkit"
	"dashkit/internal/platform/config"
	"dashkit/internal/platform/logger"
	phttp "dashkit/internal/platform/net/http"
	"dashkit/internal/platform/net/middleware"
	"dashkit/internal/platform/store"
	"dashkit/internal/platform/store/migrate"

	"dashkit/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")     // CORE_API_*
	pgCfg := root.Prefix("SERVICE_PGSQL_") // SERVICE_PGSQL_*

	logOpt := logger.FromEnv()
	if logOpt.Service == "" {
		logOpt.Service = "dashkit-api"
	}
	logger.Init(logOpt)
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg := store.PGConfigFrom(pgCfg)
	if pg.Enabled && pgCfg.MayBool("AUTO_MIGRATE", false) {
		autoMigrate(l, pg.URL)
	}

	st, err := store.Open(ctx, store.Config{AppName: "dashkit-api", PG: pg}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	stack := httpkit.StackFromConfig(apiCfg)
	stack.Metrics = middleware.NewMetrics("dashkit")

	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(httpkit.RootStack(stack)...)
	})

	api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("ENABLE_SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("ENABLE_PROFILER", false),
		Metrics:        stack.Metrics,
		Stack:          httpkit.CommonStack(stack),
	})

	if err := srv.Run(ctx, apiCfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second)); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}

func autoMigrate(l *logger.Logger, url string) {
	m, err := migrate.New(url, l)
	if err != nil {
		l.Panic().Err(err).Msg("open migrator")
	}
	defer m.Close()
	if err := m.Up(); err != nil {
		l.Panic().Err(err).Msg("migrate up")
	}
}
