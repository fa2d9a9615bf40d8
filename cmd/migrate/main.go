package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"club-leaderboard-api/config"
	"club-leaderboard-api/migrations"
	authUtils "club-leaderboard-api/packages/auth/utils"
	"club-leaderboard-api/packages/core/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if len(os.Args) < 2 {
		printUsage()
		return
	}
	command := os.Args[1]

	// hash-password needs no database.
	if command == "hash-password" {
		hashPassword()
		return
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.ConnectDatabase(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	sugar := logger.Sugar()
	migrator, err := migrations.NewCoreMigrator(db, sugar.Named("migrations"))
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	switch command {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			log.Fatal("Migration failed:", err)
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			if s, err := strconv.Atoi(os.Args[2]); err == nil {
				steps = s
			}
		}
		if err := migrator.Rollback(steps); err != nil {
			log.Fatal("Rollback failed:", err)
		}
	case "status":
		showStatus(migrator)
	case "reset":
		if err := migrator.Reset(); err != nil {
			log.Fatal("Reset failed:", err)
		}
	case "seed":
		if err := migrator.Migrate(); err != nil {
			log.Fatal("Migration failed:", err)
		}
		seeded, err := services.NewPlayerService(db, sugar, nil).SeedSampleData(ctx)
		if err != nil {
			log.Fatal("Seeding failed:", err)
		}
		if !seeded {
			fmt.Println("Players table is not empty, nothing seeded.")
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}

	logger.Info("command finished", zap.String("command", command))
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migrate migrate                  - Run pending migrations")
	fmt.Println("  go run ./cmd/migrate rollback [steps]         - Rollback migrations (default: 1)")
	fmt.Println("  go run ./cmd/migrate status                   - Show migration status")
	fmt.Println("  go run ./cmd/migrate reset                    - Drop and recreate all tables")
	fmt.Println("  go run ./cmd/migrate seed                     - Insert sample players into an empty database")
	fmt.Println("  go run ./cmd/migrate hash-password <password> - Print a bcrypt hash for admin_password")
}

func hashPassword() {
	if len(os.Args) < 3 {
		printUsage()
		os.Exit(1)
	}
	hash, err := authUtils.HashPassword(os.Args[2])
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hash)
}

func showStatus(migrator *migrations.Migrator) {
	applied, err := migrator.Status()
	if err != nil {
		log.Fatal("Status failed:", err)
	}

	if len(applied) == 0 {
		fmt.Println("No migrations have been run yet.")
		return
	}

	fmt.Println("Migration Status:")
	fmt.Println("Batch | Name")
	fmt.Println("------|-----")

	for _, migration := range applied {
		fmt.Printf("%-5d | %s\n", migration.Batch, migration.Name)
	}
}
