package handlers

import (
	"net/http"

	"club-leaderboard-api/packages/core/models"
	"club-leaderboard-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GameHandler struct {
	gameService *services.GameService
	logger      *zap.SugaredLogger
}

func NewGameHandler(gameService *services.GameService, logger *zap.SugaredLogger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		logger:      logger,
	}
}

// SubmitGame records the placements of a finished game
// @Summary Submit game results
// @Description Award points for each placement using the rank table. Unknown nicknames are registered.
// @Description Responds 201 when at least one placement was applied, 400 otherwise; both carry the per-placement log.
// @Tags games
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param game body models.SubmitGameRequest true "Placements"
// @Success 201 {object} models.GameResult
// @Failure 400 {object} models.GameResult
// @Failure 401 {string} string
// @Failure 500 {object} ErrorResponse
// @Router /games [post]
func (h *GameHandler) SubmitGame(c *gin.Context) {
	var req models.SubmitGameRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.Placements) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "placements must be a non-empty list"})
		return
	}

	result, err := h.gameService.RecordGameResults(c.Request.Context(), req.Placements, req.RankPoints, req.Label)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := http.StatusCreated
	if len(result.Applied) == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, result)
}
