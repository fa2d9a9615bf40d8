package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"club-leaderboard-api/config"
	_ "club-leaderboard-api/docs" // Swagger docs
	"club-leaderboard-api/migrations"
	"club-leaderboard-api/packages/auth"
	"club-leaderboard-api/packages/core"
	"club-leaderboard-api/packages/core/metrics"
	"club-leaderboard-api/packages/server"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// @title           Club Leaderboard API
// @version         1.0
// @description     Leaderboard API for a poker club: players, score history and game results

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.basic  BasicAuth

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	db, err := config.ConnectDatabase(cfg, logger)
	if err != nil {
		return err
	}
	if err := migrations.InitializeDatabase(db, logger.Sugar().Named("migrations"), false); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	coreModule := core.NewModule(db, logger, metrics.New(reg), core.Options{
		RankPoints:    cfg.RankPoints,
		AuditSchedule: cfg.AuditSchedule,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedSampleData {
		if _, err := coreModule.PlayerService.SeedSampleData(ctx); err != nil {
			return err
		}
	}

	authModule := auth.NewModule(cfg.AdminUsername, cfg.AdminPassword, logger)
	if !cfg.AdminAuthEnabled() {
		logger.Warn("admin password is empty, admin routes are open")
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := server.NewRouter(server.RouterConfig{
		Core:      coreModule,
		Auth:      authModule,
		StaticDir: cfg.StaticDir,
		Gatherer:  reg,
		Logger:    logger,
	})

	if err := coreModule.StartScheduler(); err != nil {
		return err
	}
	defer coreModule.StopScheduler()

	return server.Run(ctx, ":"+strconv.Itoa(cfg.Port), r, logger)
}
