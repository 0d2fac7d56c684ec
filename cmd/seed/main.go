package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"rocketshoes/internal/config"
	"rocketshoes/internal/db"
	"rocketshoes/internal/logger"
	productrepo "rocketshoes/internal/repository/product"
	stockrepo "rocketshoes/internal/repository/stock"
	"rocketshoes/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()
	lg = lg.Named("seed")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, "rocketshoes-seed")
	if err != nil {
		lg.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := seed.Apply(ctx, productrepo.NewPostgres(pool, lg), stockrepo.NewPostgres(pool, lg)); err != nil {
		lg.Fatal("seed apply", zap.Error(err))
	}

	lg.Info("seed applied")
}
