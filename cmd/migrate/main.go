package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"mun-chits/config"
	"mun-chits/internal/repository"
	"mun-chits/pkg/database"

	"gorm.io/gorm"
)

const usage = `
MUN Chits - Database CLI Tool

Usage:
  migrate [flags] [command]

Commands:
  up          Create extensions and auto-migrate all tables
  status      Show database connection status and row counts
  seed-dev    Seed committees with EB and delegate accounts
  truncate    Truncate all tables (DANGEROUS)

Flags:
  -password string   Password for seeded accounts (default "password123")
  -yes               Skip the confirmation for truncate

Examples:
  go run ./cmd/migrate up
  go run ./cmd/migrate -password secret seed-dev
  go run ./cmd/migrate -yes truncate
`

func main() {
	password := flag.String("password", "password123", "Password for seeded accounts")
	yes := flag.Bool("yes", false, "Skip the confirmation for truncate")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer database.Close()

	ctx := context.Background()

	switch command {
	case "up":
		runMigrationsUp(db)
	case "status":
		showStatus(ctx, db)
	case "seed-dev":
		runSeedDevelopment(ctx, db, *password)
	case "truncate":
		runTruncate(db, *yes)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(db *gorm.DB) {
	log.Println("Running migrations...")
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")
}

func showStatus(ctx context.Context, db *gorm.DB) {
	if err := database.HealthCheck(ctx); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connection: OK")

	for _, table := range repository.TableNames() {
		if !database.TableExists(db, table) {
			log.Printf("Table %-15s does not exist", table)
			continue
		}
		count, err := database.GetTableCount(db, table)
		if err != nil {
			log.Printf("Table %-15s count failed: %v", table, err)
			continue
		}
		log.Printf("Table %-15s exists (%d rows)", table, count)
	}
}

func runSeedDevelopment(ctx context.Context, db *gorm.DB, password string) {
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seedCfg := database.DefaultSeedConfig()
	seedCfg.Password = password

	result, err := database.Seed(ctx, db, seedCfg)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	for _, u := range result.Created {
		log.Printf("  %-28s %-8s %s", u.Username, u.Role, u.Committee)
	}
	log.Println("Development seeding completed")
}

func runTruncate(db *gorm.DB, confirmed bool) {
	if !confirmed {
		log.Fatal("Refusing to truncate without -yes")
	}
	if err := database.TruncateAllTables(db); err != nil {
		log.Fatalf("Truncate failed: %v", err)
	}
	log.Println("All tables truncated")
}
