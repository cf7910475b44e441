package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shopspring/decimal"

	"stockroom/infrastructure/audit"
	"stockroom/infrastructure/localstore"
	"stockroom/infrastructure/sqlite"
	"stockroom/inventory"
)

var demoMaterials = []struct {
	name  string
	stock string
	min   string
}{
	{"Cement 42.5 (bag)", "120", "40"},
	{"Sand (m3)", "18", "5"},
	{"Gravel 20mm (m3)", "9", "4"},
	{"Rebar 12mm (pc)", "340", "100"},
	{"Plywood 18mm (sheet)", "26", "10"},
	{"Paint, white (L)", "14", "20"},
}

var demoNames = map[inventory.Category][]string{
	inventory.CategoryProjects:    {"Warehouse B extension", "Office refit", "Yard paving"},
	inventory.CategoryContractors: {"Hansen Bygg", "Delta Interiors", "M. Okafor"},
	inventory.CategoryRequesters:  {"K. Berg", "S. Tanaka", "A. Lindqvist"},
}

func main() {
	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		log.Fatalf("resolve migrations dir: %v", err)
	}

	defaultDBPath := filepath.Join(filepath.Dir(filepath.Dir(filepath.Dir(migrationsDir))), "stockroom.db")
	dbPath := getenv("SQLITE_PATH", defaultDBPath)

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := sqlite.ApplyMigrations(ctx, db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	backend := localstore.New(db, audit.NewService())

	for _, m := range demoMaterials {
		if err := backend.AddEntry(ctx, inventory.CategoryMaterials, m.name); err != nil {
			if _, rejected := inventory.RejectionMessage(err); !rejected {
				log.Fatalf("seed material %s: %v", m.name, err)
			}
		}
		level := inventory.StockLevel{
			Stock: decimal.RequireFromString(m.stock),
			Min:   decimal.RequireFromString(m.min),
		}
		if err := backend.SetMaterialLevels(ctx, m.name, level); err != nil {
			log.Fatalf("seed material levels %s: %v", m.name, err)
		}
	}

	for category, names := range demoNames {
		for _, name := range names {
			if err := backend.AddEntry(ctx, category, name); err != nil {
				if _, rejected := inventory.RejectionMessage(err); !rejected {
					log.Fatalf("seed %s %s: %v", category, name, err)
				}
			}
		}
	}

	fmt.Println("seeded demo master data")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		filepath.Join("infrastructure", "sqlite", "migrations"),
		filepath.Join("..", "..", "infrastructure", "sqlite", "migrations"),
	}

	if _, file, _, ok := runtime.Caller(0); ok {
		candidates = append(candidates, filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations"))
	}

	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		tried = append(tried, absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			return absPath, nil
		}
	}

	return "", fmt.Errorf("migrations dir not found; tried: %s", strings.Join(tried, ", "))
}
