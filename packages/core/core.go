package core

import (
	"club-leaderboard-api/packages/core/cron"
	"club-leaderboard-api/packages/core/handlers"
	"club-leaderboard-api/packages/core/metrics"
	"club-leaderboard-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options tunes the core module.
type Options struct {
	// RankPoints is the default rank table for game submissions.
	// Empty means utils.DefaultRankPoints.
	RankPoints map[int]int64
	// AuditSchedule is the cron expression of the ledger audit. Empty disables it.
	AuditSchedule string
}

type Module struct {
	PlayerHandler *handlers.PlayerHandler
	PlayerService *services.PlayerService
	GameHandler   *handlers.GameHandler
	GameService   *services.GameService
	StatsHandler  *handlers.StatsHandler
	StatsService  *services.StatsService
	AuditHandler  *handlers.AuditHandler
	AuditService  *services.AuditService
	Scheduler     *cron.Scheduler
	logger        *zap.SugaredLogger
}

func NewModule(db *gorm.DB, logger *zap.Logger, m *metrics.Metrics, opts Options) *Module {
	sugar := logger.Sugar()

	playerService := services.NewPlayerService(db, sugar.Named("players"), m)
	playerHandler := handlers.NewPlayerHandler(playerService, sugar)

	gameService := services.NewGameService(db, sugar.Named("games"), m, opts.RankPoints)
	gameHandler := handlers.NewGameHandler(gameService, sugar)

	statsService := services.NewStatsService(db)
	statsHandler := handlers.NewStatsHandler(statsService, sugar)

	auditService := services.NewAuditService(db, sugar.Named("audit"), m)
	auditHandler := handlers.NewAuditHandler(auditService, sugar)

	scheduler := cron.NewScheduler(auditService, opts.AuditSchedule, sugar.Named("cron"))

	return &Module{
		PlayerHandler: playerHandler,
		PlayerService: playerService,
		GameHandler:   gameHandler,
		GameService:   gameService,
		StatsHandler:  statsHandler,
		StatsService:  statsService,
		AuditHandler:  auditHandler,
		AuditService:  auditService,
		Scheduler:     scheduler,
		logger:        sugar,
	}
}

// SetupRoutes mounts the JSON API. admin guards the mutating admin routes.
func (m *Module) SetupRoutes(r *gin.Engine, admin gin.HandlerFunc) {
	api := r.Group("/api")
	{
		api.GET("/leaderboard", m.PlayerHandler.GetLeaderboard)
		api.GET("/stats", m.StatsHandler.GetStats)
		api.POST("/games", admin, m.GameHandler.SubmitGame)
		api.GET("/admin/audit", admin, m.AuditHandler.GetAudit)
	}

	players := api.Group("/players")
	{
		players.POST("", m.PlayerHandler.CreatePlayer)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.POST("/:id/scores", m.PlayerHandler.RecordScore)
		players.POST("/:id/profile", admin, m.PlayerHandler.UpdateProfile)
	}

	r.GET("/health", m.StatsHandler.Health)
}

// StartScheduler starts the ledger audit scheduler.
func (m *Module) StartScheduler() error {
	m.logger.Info("starting core module scheduler")
	return m.Scheduler.Start()
}

func (m *Module) StopScheduler() {
	m.Scheduler.Stop()
}

// RunAuditNow triggers the ledger audit outside its schedule.
func (m *Module) RunAuditNow() {
	m.Scheduler.RunNow()
}
