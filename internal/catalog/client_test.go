package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rocketshoes/internal/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/products/5", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":5,"title":"Tênis","price":179.9,"image":"https://example.com/5.jpg"}`))
	})
	mux.HandleFunc("/api/stock/5", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":5,"amount":3}`))
	})
	mux.HandleFunc("/api/stock/6", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":`))
	})
	mux.HandleFunc("/api/products/7", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1,2]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Product(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL+"/api", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	attrs, err := c.Product(context.Background(), 5)
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if attrs["title"] != "Tênis" {
		t.Fatalf("unexpected title %v", attrs["title"])
	}
	if price, ok := attrs["price"].(json.Number); !ok || price.String() != "179.9" {
		t.Fatalf("expected price kept as json.Number, got %#v", attrs["price"])
	}
}

func TestClient_Stock(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL+"/api/", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s, err := c.Stock(context.Background(), 5)
	if err != nil {
		t.Fatalf("Stock: %v", err)
	}
	if s.ID != 5 || s.Amount != 3 {
		t.Fatalf("unexpected stock %+v", s)
	}
}

func TestClient_FailuresAreUpstream(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL+"/api", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if _, err := c.Product(ctx, 404); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("status error: expected upstream, got %v", err)
	}
	if _, err := c.Stock(ctx, 6); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("decode error: expected upstream, got %v", err)
	}
	if _, err := c.Product(ctx, 7); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("non-object product: expected upstream, got %v", err)
	}

	srv.Close()
	if _, err := c.Stock(ctx, 5); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("transport error: expected upstream, got %v", err)
	}
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	if _, err := New("localhost/api", time.Second); err == nil {
		t.Fatalf("expected error for relative url")
	}
}
