package handlers

import (
	"net/http"

	"club-leaderboard-api/packages/core/models"
	"club-leaderboard-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuditHandler struct {
	auditService *services.AuditService
	logger       *zap.SugaredLogger
}

func NewAuditHandler(auditService *services.AuditService, logger *zap.SugaredLogger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// GetAudit lists players whose total differs from their history
// @Summary Audit score ledger
// @Description List players whose total_points is not the sum of their score history
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Success 200 {object} models.AuditResponse
// @Failure 401 {string} string
// @Failure 500 {object} ErrorResponse
// @Router /admin/audit [get]
func (h *AuditHandler) GetAudit(c *gin.Context) {
	drift, err := h.auditService.FindDrift(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.AuditResponse{Drift: drift})
}
