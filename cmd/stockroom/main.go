package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stockroom/frontend/lookup"
	"stockroom/infrastructure/audit"
	"stockroom/infrastructure/gateway"
	httpserver "stockroom/infrastructure/http"
	"stockroom/infrastructure/localstore"
	"stockroom/infrastructure/scriptapi"
	"stockroom/infrastructure/sqlite"
	"stockroom/inventory"
)

func main() {
	_ = godotenv.Load()

	addr := getenv("APP_ADDR", ":8080")

	backend, cleanup, err := buildBackend()
	if err != nil {
		log.Fatalf("build backend: %v", err)
	}
	defer cleanup()

	lookups := lookup.NewStore(backend)
	if err := lookups.Refresh(context.Background(), false); err != nil {
		// Pages still render; the picker retries on first open.
		slog.Warn("initial lookup load failed", slog.Any("err", err))
	}

	server := httpserver.NewServer(addr, backend, lookups)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("stockroom listening on %s", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

// buildBackend selects the inventory backend from BACKEND: "sqlite"
// keeps everything in a local database, "script" proxies to the remote
// script endpoint.
func buildBackend() (inventory.Backend, func(), error) {
	switch kind := getenv("BACKEND", "sqlite"); kind {
	case "script":
		client := gateway.New(gateway.Config{
			BaseURL:       os.Getenv("SCRIPT_URL"),
			ReadAttempts:  getenvInt("SCRIPT_READ_ATTEMPTS", 3),
			WriteAttempts: getenvInt("SCRIPT_WRITE_ATTEMPTS", 1),
			RetryBase:     getenvDuration("SCRIPT_RETRY_BASE", 400*time.Millisecond),
			ReadTimeout:   getenvDuration("SCRIPT_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:  getenvDuration("SCRIPT_WRITE_TIMEOUT", 30*time.Second),
		})
		return scriptapi.New(client), func() {}, nil
	case "sqlite":
		dbPath := getenv("SQLITE_PATH", "stockroom.db")
		db, err := sqlite.OpenDB(dbPath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.ApplyMigrations(context.Background(), db, "infrastructure/sqlite/migrations"); err != nil {
			db.Close()
			return nil, nil, err
		}
		return localstore.New(db, audit.NewService()), func() { db.Close() }, nil
	default:
		log.Fatalf("unknown BACKEND %q (want sqlite or script)", kind)
		return nil, nil, nil
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
