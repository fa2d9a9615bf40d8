package models

// Placement is one finishing position reported for a game.
type Placement struct {
	Nickname  LooseString `json:"nickname" swaggertype:"string" example:"RiverQueen"`
	Rank      LooseInt    `json:"rank" swaggertype:"integer" example:"1"`
	Points    LooseInt    `json:"points" swaggertype:"integer"`
	Slogan    LooseString `json:"slogan" swaggertype:"string"`
	Notes     LooseString `json:"notes" swaggertype:"string"`
	AvatarURL LooseString `json:"avatar_url" swaggertype:"string"`
	Reason    LooseString `json:"reason" swaggertype:"string"`
}

type SubmitGameRequest struct {
	Placements []Placement   `json:"placements"`
	Label      string        `json:"label" example:"Friday final"`
	RankPoints map[int]int64 `json:"rank_points,omitempty"`
}

// GameResult is the per-placement log of a batch submission.
type GameResult struct {
	Applied []string `json:"applied"`
	Errors  []string `json:"errors"`
}
