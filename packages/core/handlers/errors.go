package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"club-leaderboard-api/packages/core/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error string `json:"error" example:"Player not found"`
}

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged and hidden behind a 500.
func respondError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, models.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Player not found"})
	case errors.Is(err, models.ErrDuplicateNickname):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), models.ErrInvalidInput.Error()+": ")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	default:
		logger.Errorw("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// bindJSON decodes the request body into obj. An empty body counts as {}.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON payload: " + err.Error()})
		return false
	}
	return true
}

func parsePlayerID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
