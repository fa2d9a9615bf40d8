package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"club-leaderboard-api/packages/core/metrics"
	"club-leaderboard-api/packages/core/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultHistoryLimit = 20

// playerColumns adds the derived finals_played count to a players query.
const playerColumns = "players.*, (SELECT COUNT(*) FROM score_history h WHERE h.player_id = players.id) AS finals_played"

// PlayerService owns players and their score history. It is the only place
// total_points is written, always together with a history row.
type PlayerService struct {
	db      *gorm.DB
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewPlayerService(db *gorm.DB, logger *zap.SugaredLogger, m *metrics.Metrics) *PlayerService {
	return &PlayerService{
		db:      db,
		logger:  logger,
		metrics: m,
	}
}

func (s *PlayerService) CreatePlayer(ctx context.Context, nickname, slogan string, avatarURL *string) (*models.Player, error) {
	var player *models.Player
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		player, err = createPlayer(tx, nickname, slogan, avatarURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.PlayerCreated()
	s.logger.Infow("player created", "player_id", player.ID, "nickname", player.Nickname)
	return player, nil
}

func (s *PlayerService) GetPlayerByID(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).
		Model(&models.Player{}).
		Select(playerColumns).
		Where("players.id = ?", id).
		Take(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (s *PlayerService) GetPlayerByNickname(ctx context.Context, nickname string) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).
		Model(&models.Player{}).
		Select(playerColumns).
		Where("players.nickname = ?", strings.TrimSpace(nickname)).
		Take(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

// GetLeaderboard returns up to limit players by total points, ties broken
// by nickname.
func (s *PlayerService) GetLeaderboard(ctx context.Context, limit int) ([]models.Player, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be a positive integer", models.ErrInvalidInput)
	}

	players := make([]models.Player, 0)
	err := s.db.WithContext(ctx).
		Model(&models.Player{}).
		Select(playerColumns).
		Order("players.total_points DESC, players.nickname ASC").
		Limit(limit).
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

// GetHistory returns the newest history entries of a player first. A
// non-positive limit falls back to DefaultHistoryLimit.
func (s *PlayerService) GetHistory(ctx context.Context, playerID uint, limit int) ([]models.ScoreHistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	history := make([]models.ScoreHistoryEntry, 0)
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// ApplyScoreChange records delta in the history and adds it to the player's
// total in one transaction.
func (s *PlayerService) ApplyScoreChange(ctx context.Context, playerID uint, delta int64, reason string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := applyScoreChange(tx, playerID, delta, reason)
		return err
	})
	if err != nil {
		return err
	}

	s.metrics.ScoreApplied(delta)
	s.logger.Infow("score change applied", "player_id", playerID, "delta", delta, "reason", reason)
	return nil
}

// UpdateProfile changes the supplied profile fields. It reports whether
// anything was written.
func (s *PlayerService) UpdateProfile(ctx context.Context, playerID uint, update models.ProfileUpdate) (bool, error) {
	if update.Empty() {
		return false, fmt.Errorf("%w: no fields to update", models.ErrInvalidInput)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.Take(&player, playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrPlayerNotFound
			}
			return err
		}

		updates := map[string]any{}
		if update.Nickname != nil {
			nickname := strings.TrimSpace(*update.Nickname)
			if nickname == "" {
				return fmt.Errorf("%w: nickname cannot be empty", models.ErrInvalidInput)
			}
			if nickname != player.Nickname {
				taken, err := nicknameTaken(tx, nickname)
				if err != nil {
					return err
				}
				if taken {
					return fmt.Errorf("%w: %q", models.ErrDuplicateNickname, nickname)
				}
			}
			updates["nickname"] = nickname
		}
		if update.Slogan != nil {
			updates["notes"] = strings.TrimSpace(*update.Slogan)
		}
		if update.AvatarURL != nil {
			updates["avatar_url"] = normalizeAvatar(update.AvatarURL)
		}
		updates["updated_at"] = tx.NowFunc()

		err := tx.Model(&models.Player{}).Where("id = ?", playerID).Updates(updates).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %w", models.ErrDuplicateNickname, err)
		}
		return err
	})
	if err != nil {
		return false, err
	}

	s.logger.Infow("player profile updated", "player_id", playerID)
	return true, nil
}

func createPlayer(tx *gorm.DB, nickname, slogan string, avatarURL *string) (*models.Player, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname is required", models.ErrInvalidInput)
	}

	taken, err := nicknameTaken(tx, nickname)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %q", models.ErrDuplicateNickname, nickname)
	}

	player := &models.Player{
		Nickname:  nickname,
		Slogan:    strings.TrimSpace(slogan),
		AvatarURL: normalizeAvatar(avatarURL),
	}
	if err := tx.Create(player).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %w", models.ErrDuplicateNickname, err)
		}
		return nil, err
	}
	return player, nil
}

// applyScoreChange must run inside a transaction. No history is written for a
// missing player, and a change that would push the total past the int64 range
// is rejected with ErrInvalidInput, leaving the player untouched.
func applyScoreChange(tx *gorm.DB, playerID uint, delta int64, reason string) (*models.ScoreHistoryEntry, error) {
	var current models.Player
	err := tx.Select("id", "total_points").Where("id = ?", playerID).Take(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	if totalOverflows(current.TotalPoints, delta) {
		return nil, fmt.Errorf("%w: score total out of range", models.ErrInvalidInput)
	}

	query := tx.Model(&models.Player{}).Where("id = ?", playerID)
	switch {
	case delta > 0:
		query = query.Where("total_points <= ?", int64(math.MaxInt64)-delta)
	case delta < 0:
		query = query.Where("total_points >= ?", int64(math.MinInt64)-delta)
	}
	res := query.Updates(map[string]any{
		"total_points": gorm.Expr("total_points + ?", delta),
		"updated_at":   tx.NowFunc(),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: score total out of range", models.ErrInvalidInput)
	}

	entry := &models.ScoreHistoryEntry{
		PlayerID: playerID,
		Delta:    delta,
		Reason:   strings.TrimSpace(reason),
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func totalOverflows(total, delta int64) bool {
	if delta > 0 {
		return total > math.MaxInt64-delta
	}
	return total < math.MinInt64-delta
}

func nicknameTaken(tx *gorm.DB, nickname string) (bool, error) {
	var count int64
	err := tx.Model(&models.Player{}).Where("nickname = ?", nickname).Count(&count).Error
	return count > 0, err
}

func normalizeAvatar(avatarURL *string) *string {
	if avatarURL == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*avatarURL)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
