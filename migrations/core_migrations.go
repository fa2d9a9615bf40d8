package migrations

import "gorm.io/gorm"

var sqliteLeaderboardSchema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nickname TEXT NOT NULL UNIQUE,
		total_points INTEGER NOT NULL DEFAULT 0,
		avatar_url TEXT,
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_players_total_points ON players(total_points)`,
	`CREATE TABLE IF NOT EXISTS score_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id INTEGER NOT NULL,
		delta INTEGER NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_score_history_player_id ON score_history(player_id, created_at)`,
}

var postgresLeaderboardSchema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id BIGSERIAL PRIMARY KEY,
		nickname VARCHAR(255) NOT NULL UNIQUE,
		total_points BIGINT NOT NULL DEFAULT 0,
		avatar_url TEXT,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_players_total_points ON players(total_points)`,
	`CREATE TABLE IF NOT EXISTS score_history (
		id BIGSERIAL PRIMARY KEY,
		player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		delta BIGINT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_score_history_player_id ON score_history(player_id, created_at)`,
}

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_01_000000_create_leaderboard_tables",
			Up: func(db *gorm.DB) error {
				schema := sqliteLeaderboardSchema
				if db.Dialector.Name() == "postgres" {
					schema = postgresLeaderboardSchema
				}
				for _, stmt := range schema {
					if err := db.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(db *gorm.DB) error {
				// score_history first because of the foreign key
				if err := db.Exec("DROP TABLE IF EXISTS score_history").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS players").Error
			},
		},
	}
}
