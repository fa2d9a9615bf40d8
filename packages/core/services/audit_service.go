package services

import (
	"context"

	"club-leaderboard-api/packages/core/metrics"
	"club-leaderboard-api/packages/core/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const driftQuery = `
SELECT p.id AS player_id, p.nickname, p.total_points, COALESCE(SUM(h.delta), 0) AS history_sum
FROM players p
LEFT JOIN score_history h ON h.player_id = p.id
GROUP BY p.id, p.nickname, p.total_points
HAVING p.total_points <> COALESCE(SUM(h.delta), 0)
ORDER BY p.id`

// AuditService checks that every player's total equals the sum of its
// history deltas.
type AuditService struct {
	db      *gorm.DB
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewAuditService(db *gorm.DB, logger *zap.SugaredLogger, m *metrics.Metrics) *AuditService {
	return &AuditService{
		db:      db,
		logger:  logger,
		metrics: m,
	}
}

func (s *AuditService) FindDrift(ctx context.Context) ([]models.LedgerDrift, error) {
	drift := make([]models.LedgerDrift, 0)
	if err := s.db.WithContext(ctx).Raw(driftQuery).Scan(&drift).Error; err != nil {
		return nil, err
	}
	return drift, nil
}

// RunAudit logs every drifting player and returns how many were found.
func (s *AuditService) RunAudit(ctx context.Context) (int, error) {
	drift, err := s.FindDrift(ctx)
	if err != nil {
		s.logger.Errorw("ledger audit failed", "error", err)
		return 0, err
	}

	for _, d := range drift {
		s.logger.Warnw("ledger drift",
			"player_id", d.PlayerID,
			"nickname", d.Nickname,
			"total_points", d.TotalPoints,
			"history_sum", d.HistorySum,
		)
	}
	s.metrics.LedgerAudited(len(drift))

	if len(drift) == 0 {
		s.logger.Info("ledger audit clean")
	}
	return len(drift), nil
}
