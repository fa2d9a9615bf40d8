package models

import (
	"time"
)

type Player struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nickname    string    `gorm:"size:255;not null;uniqueIndex" json:"nickname"`
	TotalPoints int64     `gorm:"not null;default:0;index" json:"total_points"`
	Slogan      string    `gorm:"column:notes" json:"slogan"`
	AvatarURL   *string   `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Number of history entries, filled by queries that select it.
	FinalsPlayed int64 `gorm:"->;-:migration" json:"finals_played"`
}

func (Player) TableName() string {
	return "players"
}

// ProfileUpdate carries the profile fields to change. Nil fields are left
// untouched; an AvatarURL pointing at an empty string clears the avatar.
type ProfileUpdate struct {
	Nickname  *string
	Slogan    *string
	AvatarURL *string
}

func (u ProfileUpdate) Empty() bool {
	return u.Nickname == nil && u.Slogan == nil && u.AvatarURL == nil
}

type CreatePlayerRequest struct {
	Nickname  string `json:"nickname" example:"AceHigh"`
	Slogan    string `json:"slogan" example:"Stack 'em high, rake it in."`
	AvatarURL string `json:"avatar_url"`
}

type CreatePlayerResponse struct {
	PlayerID uint `json:"player_id" example:"1"`
}

type UpdateProfileRequest struct {
	Nickname  OptionalString `json:"nickname" swaggertype:"string"`
	Slogan    OptionalString `json:"slogan" swaggertype:"string"`
	AvatarURL OptionalString `json:"avatar_url" swaggertype:"string"`
}

type RecordScoreRequest struct {
	Delta  LooseInt `json:"delta" swaggertype:"integer" example:"50"`
	Reason string   `json:"reason" example:"Cash game gain"`
}

type LeaderboardResponse struct {
	Players []Player `json:"players"`
}

type PlayerDetailResponse struct {
	Player  Player              `json:"player"`
	History []ScoreHistoryEntry `json:"history"`
}
