package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"club-leaderboard-api/packages/core/metrics"
	"club-leaderboard-api/packages/core/models"
	"club-leaderboard-api/packages/core/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultGameLabel = "Game result"

// GameService applies batches of game placements. Unknown nicknames are
// registered as new players on the fly; placements that cannot be scored are
// reported and skipped without aborting the batch.
type GameService struct {
	db         *gorm.DB
	logger     *zap.SugaredLogger
	metrics    *metrics.Metrics
	rankPoints map[int]int64
}

// NewGameService uses rankPoints as the default table, or utils.DefaultRankPoints
// when it is empty.
func NewGameService(db *gorm.DB, logger *zap.SugaredLogger, m *metrics.Metrics, rankPoints map[int]int64) *GameService {
	return &GameService{
		db:         db,
		logger:     logger,
		metrics:    m,
		rankPoints: utils.RankTable(rankPoints),
	}
}

type placementOutcome struct {
	applied string
	skipped string
	delta   int64
	created bool
}

// RecordGameResults processes placements in order inside one transaction.
// rankPoints overrides the service table for this batch when non-empty.
func (s *GameService) RecordGameResults(ctx context.Context, placements []models.Placement, rankPoints map[int]int64, label string) (*models.GameResult, error) {
	if len(placements) == 0 {
		return nil, fmt.Errorf("%w: placements must be a non-empty list", models.ErrInvalidInput)
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultGameLabel
	}
	table := s.rankPoints
	if len(rankPoints) > 0 {
		table = rankPoints
	}

	result := &models.GameResult{
		Applied: []string{},
		Errors:  []string{},
	}
	var outcomes []placementOutcome

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range placements {
			outcome, err := s.recordPlacement(tx, item, table, label)
			if err != nil {
				return err
			}
			outcomes = append(outcomes, outcome)
		}
		return nil
	})
	if err != nil {
		s.logger.Errorw("game submission failed", "label", label, "error", err)
		return nil, err
	}

	for _, outcome := range outcomes {
		if outcome.skipped != "" {
			result.Errors = append(result.Errors, outcome.skipped)
			continue
		}
		result.Applied = append(result.Applied, outcome.applied)
		if outcome.created {
			s.metrics.PlayerCreated()
		}
		s.metrics.ScoreApplied(outcome.delta)
	}
	s.metrics.GameSubmitted(len(result.Errors))

	s.logger.Infow("game results recorded",
		"label", label,
		"applied", len(result.Applied),
		"errors", len(result.Errors),
	)
	return result, nil
}

// recordPlacement returns an error only for storage failures, which abort
// the whole batch. Bad placements come back as a skipped outcome.
func (s *GameService) recordPlacement(tx *gorm.DB, item models.Placement, table map[int]int64, label string) (placementOutcome, error) {
	nickname, err := item.Nickname.Value()
	if err != nil {
		return placementOutcome{skipped: "Invalid nickname in placement entry"}, nil
	}
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return placementOutcome{skipped: "Missing nickname in placement entry"}, nil
	}

	slogan, sloganErr := item.Slogan.Value()
	notes, notesErr := item.Notes.Value()
	avatarURL, avatarErr := item.AvatarURL.Value()
	reason, reasonErr := item.Reason.Value()
	switch {
	case sloganErr != nil:
		return placementOutcome{skipped: fmt.Sprintf("Invalid slogan for %s", nickname)}, nil
	case notesErr != nil:
		return placementOutcome{skipped: fmt.Sprintf("Invalid notes for %s", nickname)}, nil
	case avatarErr != nil:
		return placementOutcome{skipped: fmt.Sprintf("Invalid avatar_url for %s", nickname)}, nil
	case reasonErr != nil:
		return placementOutcome{skipped: fmt.Sprintf("Invalid reason for %s", nickname)}, nil
	}

	rank, err := item.Rank.Int64()
	if err != nil {
		return placementOutcome{skipped: fmt.Sprintf("Invalid rank for %s", nickname)}, nil
	}

	var delta int64
	if item.Points.Present() {
		delta, err = item.Points.Int64()
		if err != nil {
			return placementOutcome{skipped: fmt.Sprintf("Invalid points for %s", nickname)}, nil
		}
	} else {
		points, ok := table[int(rank)]
		if !ok {
			return placementOutcome{skipped: fmt.Sprintf("No point mapping for rank %d (%s)", rank, nickname)}, nil
		}
		delta = points
	}

	var player models.Player
	created := false
	err = tx.Select("id").Where("nickname = ?", nickname).Take(&player).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if strings.TrimSpace(slogan) == "" {
			slogan = notes
		}
		newPlayer, err := createPlayer(tx, nickname, slogan, &avatarURL)
		if err != nil {
			return placementOutcome{}, err
		}
		player.ID = newPlayer.ID
		created = true
		s.logger.Infow("player registered from game result", "player_id", newPlayer.ID, "nickname", nickname)
	case err != nil:
		return placementOutcome{}, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = utils.GameReason(label, int(rank))
	}

	if _, err := applyScoreChange(tx, player.ID, delta, reason); err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			return placementOutcome{skipped: fmt.Sprintf("Points out of range for %s", nickname)}, nil
		}
		return placementOutcome{}, err
	}

	return placementOutcome{
		applied: fmt.Sprintf("%s (%+d)", nickname, delta),
		delta:   delta,
		created: created,
	}, nil
}
