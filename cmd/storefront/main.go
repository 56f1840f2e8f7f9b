package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/meherstore/storefront/internal/pkg/config"
	"github.com/meherstore/storefront/internal/pkg/telemetry"
	"github.com/meherstore/storefront/internal/storefront/app/account"
	"github.com/meherstore/storefront/internal/storefront/app/cart"
	"github.com/meherstore/storefront/internal/storefront/app/catalog"
	"github.com/meherstore/storefront/internal/storefront/app/dashboard"
	"github.com/meherstore/storefront/internal/storefront/app/session"
	"github.com/meherstore/storefront/internal/storefront/app/wishlist"
	"github.com/meherstore/storefront/internal/storefront/core/ports"
	"github.com/meherstore/storefront/internal/storefront/infra/adapters/backend"
	"github.com/meherstore/storefront/internal/storefront/infra/adapters/store"
	"github.com/meherstore/storefront/internal/storefront/infra/httpx"
)

const serviceName = "storefront-gateway"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	telemetry.InitLogger(serviceName)

	if cfg.TracingEnabled {
		shutdown, err := telemetry.SetupTracer(ctx, serviceName)
		if err != nil {
			log.Fatalf("could not set up tracing: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("tracer shutdown failed", "error", err)
			}
		}()
	}

	kv := buildStore(cfg)
	client := backend.New(cfg.BackendURL, kv)

	sessionSvc := session.New(kv, client)
	if err := sessionSvc.Init(ctx); err != nil {
		slog.WarnContext(ctx, "session init failed, starting unauthenticated", "error", err)
	}

	handler := httpx.NewHandler(
		sessionSvc,
		cart.New(client),
		catalog.New(client, client, client, client),
		wishlist.New(client),
		account.New(client, client, client),
		dashboard.New(client, client, kv, cfg.ShopkeeperUsername),
	)
	router := httpx.NewRouter(handler)

	slog.Info("storefront gateway running", "addr", cfg.ServerAddr, "backend", cfg.BackendURL)
	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func buildStore(cfg *config.Config) ports.Store {
	switch cfg.SessionStore {
	case "redis":
		return store.NewRedisStore(cfg.RedisAddr, serviceName)
	case "memory":
		return store.NewMemoryStore()
	default:
		kv, err := store.OpenSQLiteStore(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("could not open sqlite store: %v", err)
		}
		return kv
	}
}
