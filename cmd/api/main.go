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

	"rocketshoes/internal/config"
	"rocketshoes/internal/db"
	"rocketshoes/internal/httpserver"
	"rocketshoes/internal/logger"
	productrepo "rocketshoes/internal/repository/product"
	stockrepo "rocketshoes/internal/repository/stock"
	productsvc "rocketshoes/internal/service/product"
)

func main() {
	cfg := config.FromEnv()
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()
	lg = lg.Named("api")

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, "rocketshoes-api")
	if err != nil {
		lg.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	productService := productsvc.New(
		productrepo.NewPostgres(dbpool, lg),
		stockrepo.NewPostgres(dbpool, lg),
	)

	srv, err := httpserver.New(cfg.HTTPAddr, lg, dbpool, httpserver.Deps{
		ProductSvc: productService,
	}, cfg.CORSOrigins)
	if err != nil {
		lg.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		lg.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		lg.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		lg.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	} else {
		lg.Info("server stopped")
	}
}
