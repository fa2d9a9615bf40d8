package fixtures

import (
	"context"
	"errors"
	"fmt"

	"club-leaderboard-api/packages/core/models"
	"club-leaderboard-api/packages/core/services"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxNicknameAttempts = 5

type Fixtures struct {
	db            *gorm.DB
	playerService *services.PlayerService
	gameService   *services.GameService
	faker         *gofakeit.Faker
	logger        *zap.SugaredLogger
}

// NewFixtures builds a generator. The same seed yields the same data on an
// empty database.
func NewFixtures(db *gorm.DB, logger *zap.SugaredLogger, seed uint64) *Fixtures {
	return &Fixtures{
		db:            db,
		playerService: services.NewPlayerService(db, logger, nil),
		gameService:   services.NewGameService(db, logger, nil, nil),
		faker:         gofakeit.New(seed),
		logger:        logger,
	}
}

// GenerateTestData creates random players, plays games between them and
// sprinkles in manual score adjustments.
func (f *Fixtures) GenerateTestData(ctx context.Context, playerCount, gameCount int) error {
	f.logger.Info("starting fixtures generation")

	players, err := f.generatePlayers(ctx, playerCount)
	if err != nil {
		return fmt.Errorf("failed to generate players: %w", err)
	}

	if err := f.generateGames(ctx, players, gameCount); err != nil {
		return fmt.Errorf("failed to generate games: %w", err)
	}

	if err := f.generateAdjustments(ctx, players); err != nil {
		return fmt.Errorf("failed to generate score adjustments: %w", err)
	}

	f.logger.Infow("fixtures generated", "players", len(players), "games", gameCount)
	return nil
}

func (f *Fixtures) generatePlayers(ctx context.Context, count int) ([]models.Player, error) {
	players := make([]models.Player, 0, count)
	for len(players) < count {
		player, err := f.createPlayer(ctx)
		if err != nil {
			return nil, err
		}
		players = append(players, *player)
	}
	return players, nil
}

func (f *Fixtures) createPlayer(ctx context.Context) (*models.Player, error) {
	for attempt := 0; attempt < maxNicknameAttempts; attempt++ {
		nickname := f.faker.Username()
		avatar := fmt.Sprintf("https://api.dicebear.com/7.x/identicon/svg?seed=%s", nickname)

		player, err := f.playerService.CreatePlayer(ctx, nickname, f.faker.Sentence(5), &avatar)
		if errors.Is(err, models.ErrDuplicateNickname) {
			continue
		}
		return player, err
	}
	return nil, fmt.Errorf("no free nickname after %d attempts", maxNicknameAttempts)
}

// generateGames seats between 2 and 9 random players per game.
func (f *Fixtures) generateGames(ctx context.Context, players []models.Player, count int) error {
	if len(players) < 2 {
		return nil
	}

	for i := 1; i <= count; i++ {
		seats := f.faker.Number(2, min(9, len(players)))
		table := make([]models.Player, len(players))
		copy(table, players)
		f.faker.ShuffleAnySlice(table)

		placements := make([]models.Placement, 0, seats)
		for rank := 1; rank <= seats; rank++ {
			placements = append(placements, models.Placement{
				Nickname: models.NewLooseString(table[rank-1].Nickname),
				Rank:     models.NewLooseInt(int64(rank)),
			})
		}

		label := fmt.Sprintf("Club night #%d", i)
		result, err := f.gameService.RecordGameResults(ctx, placements, nil, label)
		if err != nil {
			return err
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("game %d rejected placements: %v", i, result.Errors)
		}
	}
	return nil
}

func (f *Fixtures) generateAdjustments(ctx context.Context, players []models.Player) error {
	reasons := []string{"Cash game gain", "Bounty collected", "Late registration penalty", "Rebuy"}
	for _, player := range players {
		if !f.faker.Bool() {
			continue
		}
		delta := int64(f.faker.Number(-50, 100))
		reason := reasons[f.faker.Number(0, len(reasons)-1)]
		if err := f.playerService.ApplyScoreChange(ctx, player.ID, delta, reason); err != nil {
			return err
		}
	}
	return nil
}

// ClearAllData removes every player and score change.
func (f *Fixtures) ClearAllData(ctx context.Context) error {
	f.logger.Info("clearing all fixture data")

	db := f.db.WithContext(ctx)
	tables := []interface{}{
		&models.ScoreHistoryEntry{},
		&models.Player{},
	}
	for _, table := range tables {
		if err := db.Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}

	// Best effort: restart ids at 1.
	switch db.Dialector.Name() {
	case "postgres":
		db.Exec("ALTER SEQUENCE players_id_seq RESTART WITH 1")
		db.Exec("ALTER SEQUENCE score_history_id_seq RESTART WITH 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('players', 'score_history')")
	}

	f.logger.Info("all fixture data cleared")
	return nil
}
