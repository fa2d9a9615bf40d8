package handlers

import (
	"net/http"

	"club-leaderboard-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsHandler struct {
	statsService *services.StatsService
	logger       *zap.SugaredLogger
}

func NewStatsHandler(statsService *services.StatsService, logger *zap.SugaredLogger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// GetStats retrieves general statistics
// @Summary Get general statistics
// @Description Get the number of players and score events, with activity over the last two weeks
// @Tags stats
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} ErrorResponse
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to compute stats", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Health reports whether the database is reachable.
func (h *StatsHandler) Health(c *gin.Context) {
	if err := h.statsService.Ping(c.Request.Context()); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
