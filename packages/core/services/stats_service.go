package services

import (
	"context"

	"club-leaderboard-api/packages/core/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

func (s *StatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	db := s.db.WithContext(ctx)

	var stats models.Stats
	if err := db.Model(&models.Player{}).Count(&stats.TotalPlayers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ScoreHistoryEntry{}).Count(&stats.TotalScoreEvents).Error; err != nil {
		return nil, err
	}

	now := db.NowFunc()
	last7DaysStart := now.AddDate(0, 0, -7)
	previous7DaysStart := now.AddDate(0, 0, -14)

	if err := db.Model(&models.ScoreHistoryEntry{}).
		Where("created_at >= ?", last7DaysStart).
		Count(&stats.EventsLast7Days).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.ScoreHistoryEntry{}).
		Where("created_at >= ? AND created_at < ?", previous7DaysStart, last7DaysStart).
		Count(&stats.EventsPrevious7Days).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// Ping checks that the database answers.
func (s *StatsService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
