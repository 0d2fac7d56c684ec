package kv

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"rocketshoes/internal/domain"
	"rocketshoes/internal/migrate"
)

func TestPostgres_GetSet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE kv_entries`); err != nil {
		t.Fatalf("truncate kv_entries: %v", err)
	}

	repo := NewPostgres(pool, nil)
	if _, err := repo.Get(ctx, "@RocketShoes:cart"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repo.Set(ctx, "@RocketShoes:cart", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, "@RocketShoes:cart", `[{"id":1,"amount":1}]`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, err := repo.Get(ctx, "@RocketShoes:cart")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `[{"id":1,"amount":1}]` {
		t.Fatalf("unexpected value %q", got)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}
