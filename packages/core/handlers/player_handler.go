package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"club-leaderboard-api/packages/core/models"
	"club-leaderboard-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultLeaderboardLimit = 50

type PlayerHandler struct {
	playerService *services.PlayerService
	logger        *zap.SugaredLogger
}

func NewPlayerHandler(playerService *services.PlayerService, logger *zap.SugaredLogger) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		logger:        logger,
	}
}

// GetLeaderboard lists players by total points
// @Summary Get leaderboard
// @Description List players ordered by total points, highest first. Ties are ordered by nickname.
// @Tags players
// @Produce json
// @Param limit query int false "Maximum number of players" default(50)
// @Success 200 {object} models.LeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /leaderboard [get]
func (h *PlayerHandler) GetLeaderboard(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw, ok := c.GetQuery("limit"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer"})
			return
		}
		limit = parsed
	}

	players, err := h.playerService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.LeaderboardResponse{Players: players})
}

// GetPlayer retrieves a player and their latest score changes
// @Summary Get player by ID
// @Description Get a player's profile with the 20 most recent score changes, newest first
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.PlayerDetailResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, ok := parsePlayerID(c)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Player not found"})
		return
	}

	ctx := c.Request.Context()
	player, err := h.playerService.GetPlayerByID(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	history, err := h.playerService.GetHistory(ctx, id, services.DefaultHistoryLimit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.PlayerDetailResponse{
		Player:  *player,
		History: history,
	})
}

// CreatePlayer registers a new player
// @Summary Create player
// @Description Register a player with zero points
// @Tags players
// @Accept json
// @Produce json
// @Param player body models.CreatePlayerRequest true "New player"
// @Success 201 {object} models.CreatePlayerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req models.CreatePlayerRequest
	if !bindJSON(c, &req) {
		return
	}

	player, err := h.playerService.CreatePlayer(c.Request.Context(), req.Nickname, req.Slogan, &req.AvatarURL)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, models.CreatePlayerResponse{PlayerID: player.ID})
}

// RecordScore adds a manual score change
// @Summary Record score change
// @Description Add delta to a player's total and append it to their history
// @Tags players
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param score body models.RecordScoreRequest true "Score change"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players/{id}/scores [post]
func (h *PlayerHandler) RecordScore(c *gin.Context) {
	id, ok := parsePlayerID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid player id"})
		return
	}

	var req models.RecordScoreRequest
	if !bindJSON(c, &req) {
		return
	}
	delta, err := req.Delta.Int64()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "delta must be an integer"})
		return
	}

	if err := h.playerService.ApplyScoreChange(c.Request.Context(), id, delta, strings.TrimSpace(req.Reason)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

// UpdateProfile edits a player's profile
// @Summary Update player profile
// @Description Change nickname, slogan or avatar. Only supplied fields are written; an empty avatar_url clears it.
// @Tags players
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path int true "Player ID"
// @Param profile body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {string} string
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players/{id}/profile [post]
func (h *PlayerHandler) UpdateProfile(c *gin.Context) {
	id, ok := parsePlayerID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid player id"})
		return
	}

	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	var update models.ProfileUpdate
	if req.Nickname.Set {
		update.Nickname = &req.Nickname.Value
	}
	if req.Slogan.Set {
		update.Slogan = &req.Slogan.Value
	}
	if req.AvatarURL.Set {
		update.AvatarURL = &req.AvatarURL.Value
	}
	if update.Empty() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No fields to update"})
		return
	}

	if _, err := h.playerService.UpdateProfile(c.Request.Context(), id, update); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
