package services

import (
	"context"

	"club-leaderboard-api/packages/core/models"

	"gorm.io/gorm"
)

type sampleEvent struct {
	delta  int64
	reason string
}

type samplePlayer struct {
	nickname string
	slogan   string
	events   []sampleEvent
}

func sampleAvatar(nickname string) *string {
	url := "https://api.dicebear.com/7.x/initials/svg?seed=" + nickname + "&backgroundType=gradientLinear&fontSize=40"
	return &url
}

var samplePlayers = []samplePlayer{
	{
		nickname: "AceHigh",
		slogan:   "Stack 'em high, rake it in.",
		events: []sampleEvent{
			{420, "Season opener victory"},
			{380, "Heads-up challenge sweep"},
			{460, "Cash game heater"},
		},
	},
	{
		nickname: "RiverQueen",
		slogan:   "Read the table, rule the river.",
		events: []sampleEvent{
			{300, "Weekly league win"},
			{260, "Rebuy tournament runner-up"},
			{220, "Cash game gain"},
			{-40, "Charity bounty buy-in"},
		},
	},
	{
		nickname: "LuckyChip",
		slogan:   "Good vibes, better cards.",
		events: []sampleEvent{
			{150, "Welcome knockout bonus"},
			{210, "Sit & go victory"},
			{190, "Weekend ring game"},
			{160, "Tuesday turbo event"},
		},
	},
	{
		nickname: "SilentShark",
		slogan:   "Let the chips do the talking.",
		events: []sampleEvent{
			{180, "Mixed game podium finish"},
			{210, "Cash game session"},
			{120, "Heads-up challenge"},
			{130, "League points"},
		},
	},
}

// SeedSampleData fills an empty players table with a few demo players and
// their score events. It reports whether anything was inserted.
func (s *PlayerService) SeedSampleData(ctx context.Context) (bool, error) {
	seeded := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Player{}).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		for _, sample := range samplePlayers {
			player, err := createPlayer(tx, sample.nickname, sample.slogan, sampleAvatar(sample.nickname))
			if err != nil {
				return err
			}
			for _, event := range sample.events {
				if _, err := applyScoreChange(tx, player.ID, event.delta, event.reason); err != nil {
					return err
				}
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		s.logger.Infow("sample data seeded", "players", len(samplePlayers))
	}
	return seeded, nil
}
