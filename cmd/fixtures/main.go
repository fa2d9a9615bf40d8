package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"club-leaderboard-api/config"
	"club-leaderboard-api/fixtures"
	"club-leaderboard-api/migrations"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if len(os.Args) < 2 {
		printUsage()
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
	if err := migrations.InitializeDatabase(db, logger.Sugar().Named("migrations"), false); err != nil {
		log.Fatal("Migration failed:", err)
	}

	ctx := context.Background()
	players, games := intArg(2, 20), intArg(3, 30)
	fixtureManager := fixtures.NewFixtures(db, logger.Sugar().Named("fixtures"), uint64(time.Now().UnixNano()))

	command := os.Args[1]

	switch command {
	case "generate":
		if err := fixtureManager.GenerateTestData(ctx, players, games); err != nil {
			log.Fatal("Failed to generate fixtures:", err)
		}
		fmt.Println("Fixtures generated successfully!")
	case "clear":
		if err := fixtureManager.ClearAllData(ctx); err != nil {
			log.Fatal("Failed to clear fixtures:", err)
		}
		fmt.Println("All fixture data cleared!")
	case "regenerate":
		fmt.Println("Clearing existing data...")
		if err := fixtureManager.ClearAllData(ctx); err != nil {
			log.Fatal("Failed to clear fixtures:", err)
		}
		fmt.Println("Generating new fixtures...")
		if err := fixtureManager.GenerateTestData(ctx, players, games); err != nil {
			log.Fatal("Failed to generate fixtures:", err)
		}
		fmt.Println("Fixtures regenerated successfully!")
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate [players games]   - Generate random players and games (default: 20 30)")
	fmt.Println("  go run ./cmd/fixtures clear                      - Clear all players and score history")
	fmt.Println("  go run ./cmd/fixtures regenerate [players games] - Clear and regenerate all data")
}

func intArg(pos, def int) int {
	if len(os.Args) > pos {
		if n, err := strconv.Atoi(os.Args[pos]); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
