package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS player_settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume REAL NOT NULL DEFAULT 0.7,
			playback_rate REAL NOT NULL DEFAULT 1.0
		);

		CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			track_id TEXT,
			title TEXT,
			date TEXT,
			duration_ms INTEGER,
			topics TEXT,
			audio_url TEXT,
			position_ms INTEGER NOT NULL DEFAULT 0,
			saved_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS queue_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			entry_key TEXT NOT NULL,
			track_id TEXT NOT NULL,
			title TEXT NOT NULL,
			date TEXT,
			duration_ms INTEGER,
			topics TEXT,
			audio_url TEXT,
			UNIQUE(position)
		);

		CREATE INDEX IF NOT EXISTS idx_queue_tracks_position ON queue_tracks(position);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
