package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"rocketshoes/internal/config"
	"rocketshoes/internal/db"
	"rocketshoes/internal/logger"
	"rocketshoes/internal/migrate"
)

func main() {
	var down bool
	flag.BoolVar(&down, "down", false, "Revert every applied migration instead of applying them")
	flag.Parse()

	cfg := config.FromEnv()
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()
	lg = lg.Named("migrate")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, "rocketshoes-migrate")
	if err != nil {
		lg.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if down {
		if err := migrate.Rollback(ctx, pool); err != nil {
			lg.Fatal("rollback migrations", zap.Error(err))
		}
	} else if err := migrate.Apply(ctx, pool); err != nil {
		lg.Fatal("apply migrations", zap.Error(err))
	}

	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		lg.Fatal("read schema version", zap.Error(err))
	}
	lg.Info("migrations done", zap.Bool("down", down), zap.Uint("version", version), zap.Bool("dirty", dirty))
}
