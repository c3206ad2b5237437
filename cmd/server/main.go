package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"pulsecheck/internal/app"
	"pulsecheck/internal/config"
	"pulsecheck/internal/logging"
	"pulsecheck/internal/transport/rest"
	"pulsecheck/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if defaults := config.Default().Auth; cfg.Auth.JWTSecret == defaults.JWTSecret || cfg.Auth.AdminPassword == defaults.AdminPassword {
		logger.Warn("using default JWT_SECRET or ADMIN_PASSWORD")
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close(context.Background())

	wsHub := ws.NewHub(logger.Named("ws"))
	defer wsHub.Close()

	// wsHub implements service.Broadcaster
	a.Selection.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:      a.Auth,
		CatalogService:   a.Catalog,
		SelectionService: a.Selection,
		WSHandler:        ws.NewHandler(wsHub, a.Auth, logger.Named("ws")),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.Bool("adaptiveSelection", cfg.Selection.Enabled),
			zap.Int("defaultTarget", cfg.Selection.DefaultTarget),
			zap.Duration("recentWindow", cfg.Selection.RecentWindow),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
