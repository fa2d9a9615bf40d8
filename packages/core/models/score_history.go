package models

import (
	"time"
)

// ScoreHistoryEntry is one append-only change to a player's total.
type ScoreHistoryEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID  uint      `gorm:"not null;index" json:"player_id"`
	Delta     int64     `gorm:"not null" json:"delta"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (ScoreHistoryEntry) TableName() string {
	return "score_history"
}

// LedgerDrift reports a player whose stored total disagrees with its history.
type LedgerDrift struct {
	PlayerID    uint   `json:"player_id"`
	Nickname    string `json:"nickname"`
	TotalPoints int64  `json:"total_points"`
	HistorySum  int64  `json:"history_sum"`
}

type AuditResponse struct {
	Drift []LedgerDrift `json:"drift"`
}

type Stats struct {
	TotalPlayers        int64 `json:"total_players"`
	TotalScoreEvents    int64 `json:"total_score_events"`
	EventsLast7Days     int64 `json:"events_last_7_days"`
	EventsPrevious7Days int64 `json:"events_previous_7_days"`
}
