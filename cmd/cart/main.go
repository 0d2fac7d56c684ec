// Command cart is the terminal front end of the shopping cart. Each
// invocation loads the persisted cart, applies one operation and prints the
// resulting cart.
//
//	cart list
//	cart add <productID>
//	cart remove <productID>
//	cart update <productID> <amount>
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rocketshoes/internal/config"
	"rocketshoes/internal/db"
	"rocketshoes/internal/logger"
	"rocketshoes/internal/migrate"
	"rocketshoes/internal/repository/kv"
)

func main() {
	cfg := config.FromEnv()
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	lg = lg.Named("cart")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	store, closeStore, err := openStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("open cart storage", zap.String("backend", cfg.CartStorage), zap.Error(err))
	}

	code := run(ctx, cfg, lg, store, os.Args[1:], os.Stdout, os.Stderr)

	closeStore()
	stop()
	_ = lg.Sync()
	os.Exit(code)
}

// openStore selects the cart persistence backend named by CART_STORAGE.
func openStore(ctx context.Context, cfg config.Config, lg *zap.Logger) (kv.Repository, func(), error) {
	switch cfg.CartStorage {
	case config.StorageFile:
		return kv.NewFile(cfg.CartFile, lg), func() {}, nil
	case config.StorageMemory:
		return kv.NewMemory(), func() {}, nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		return kv.NewRedis(client, "", lg), func() { _ = client.Close() }, nil
	case config.StoragePostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString, "rocketshoes-cart")
		if err != nil {
			return nil, nil, err
		}
		if err := migrate.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kv.NewPostgres(pool, lg), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cart storage %q", cfg.CartStorage)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: cart [list | add <productID> | remove <productID> | update <productID> <amount>]")
}
