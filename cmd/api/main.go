package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pageza/nutriai/backend/config"
	"github.com/pageza/nutriai/backend/internal/app"
	"github.com/pageza/nutriai/backend/internal/router"
	"github.com/pageza/nutriai/backend/internal/server"
)

func main() {
	log := newLogger()
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	handler := router.SetupRouter(cfg.CORSAllowedOrigins, a.Services(), log)
	srv := server.New(cfg.ServerHost, cfg.ServerPort, handler, log)

	if err := srv.Start(ctx); err != nil {
		log.Error("server error", zap.Error(err))
		a.Close()
		os.Exit(1)
	}
	log.Info("server stopped")
}

func newLogger() *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if config.IsDevelopment() {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return log
}
