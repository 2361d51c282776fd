package state

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/tflash/internal/briefing"
	dbutil "github.com/llehouerou/tflash/internal/db"
	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/playlist"
)

// Session is what survives a restart: settings, the current briefing with
// its position, and the queue.
type Session struct {
	Volume       float64
	PlaybackRate float64
	Current      *briefing.Track
	Position     time.Duration
	Queue        []playlist.Entry
}

func loadSession(db *sql.DB) (*Session, error) {
	s := Session{
		Volume:       playback.DefaultVolume,
		PlaybackRate: playback.DefaultPlaybackRate,
	}
	found := false

	row := db.QueryRow(`SELECT volume, playback_rate FROM player_settings WHERE id = 1`)
	err := row.Scan(&s.Volume, &s.PlaybackRate)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, errors.Wrap(err, "load player settings")
	default:
		found = true
	}

	var (
		id, title, date, topics, audioURL sql.NullString
		durationMs                        sql.NullInt64
		positionMs                        int64
	)
	row = db.QueryRow(`
		SELECT track_id, title, date, duration_ms, topics, audio_url, position_ms
		FROM session WHERE id = 1
	`)
	err = row.Scan(&id, &title, &date, &durationMs, &topics, &audioURL, &positionMs)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, errors.Wrap(err, "load session")
	default:
		found = true
		if id.Valid {
			t, err := scanTrack(id.String, title, date, durationMs, topics, audioURL)
			if err != nil {
				return nil, err
			}
			s.Current = &t
			s.Position = time.Duration(positionMs) * time.Millisecond
		}
	}

	queue, err := loadQueue(db)
	if err != nil {
		return nil, err
	}
	if len(queue) > 0 {
		found = true
	}
	s.Queue = queue

	if !found {
		return nil, nil
	}
	return &s, nil
}

func loadQueue(db *sql.DB) ([]playlist.Entry, error) {
	rows, err := db.Query(`
		SELECT entry_key, track_id, title, date, duration_ms, topics, audio_url
		FROM queue_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, errors.Wrap(err, "load queue")
	}
	defer rows.Close()

	var entries []playlist.Entry
	for rows.Next() {
		var (
			key, id                       string
			title, date, topics, audioURL sql.NullString
			durationMs                    sql.NullInt64
		)
		if err := rows.Scan(&key, &id, &title, &date, &durationMs, &topics, &audioURL); err != nil {
			return nil, errors.Wrap(err, "scan queue track")
		}
		t, err := scanTrack(id, title, date, durationMs, topics, audioURL)
		if err != nil {
			return nil, err
		}
		entries = append(entries, playlist.Entry{Key: key, Track: t})
	}
	return entries, errors.Wrap(rows.Err(), "load queue")
}

func scanTrack(id string, title, date sql.NullString, durationMs sql.NullInt64, topics, audioURL sql.NullString) (briefing.Track, error) {
	t := briefing.Track{
		ID:       id,
		Title:    dbutil.NullStringValue(title),
		Date:     dbutil.NullStringValue(date),
		Duration: dbutil.NullMillis(durationMs),
		AudioURL: dbutil.NullStringValue(audioURL),
	}
	if raw := dbutil.NullStringValue(topics); raw != "" {
		if err := json.Unmarshal([]byte(raw), &t.Topics); err != nil {
			return briefing.Track{}, errors.Wrapf(err, "decode topics of %s", id)
		}
	}
	return t, nil
}

func encodeTopics(topics []string) (sql.NullString, error) {
	if len(topics) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(topics)
	if err != nil {
		return sql.NullString{}, errors.Wrap(err, "encode topics")
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func saveSession(sqlDB *sql.DB, s Session) error {
	return dbutil.WithTx(sqlDB, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO player_settings (id, volume, playback_rate)
			VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				volume = excluded.volume,
				playback_rate = excluded.playback_rate
		`, s.Volume, s.PlaybackRate)
		if err != nil {
			return errors.Wrap(err, "save player settings")
		}

		if err := saveCurrent(tx, s); err != nil {
			return err
		}

		// Replace the queue
		if _, err := tx.Exec(`DELETE FROM queue_tracks`); err != nil {
			return errors.Wrap(err, "clear queue")
		}

		stmt, err := tx.Prepare(`
			INSERT INTO queue_tracks (position, entry_key, track_id, title, date, duration_ms, topics, audio_url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return errors.Wrap(err, "prepare queue insert")
		}
		defer stmt.Close()

		for i, e := range s.Queue {
			topics, err := encodeTopics(e.Track.Topics)
			if err != nil {
				return err
			}
			_, err = stmt.Exec(i, e.Key, e.Track.ID, e.Track.Title, dbutil.NullString(e.Track.Date),
				e.Track.Duration.Milliseconds(), topics, dbutil.NullString(e.Track.AudioURL))
			if err != nil {
				return errors.Wrapf(err, "save queue track %s", e.Track.ID)
			}
		}
		return nil
	})
}

func saveCurrent(tx *sql.Tx, s Session) error {
	savedAt := time.Now().Unix()
	if s.Current == nil {
		_, err := tx.Exec(`
			INSERT INTO session (id, track_id, title, date, duration_ms, topics, audio_url, position_ms, saved_at)
			VALUES (1, NULL, NULL, NULL, NULL, NULL, NULL, 0, ?)
			ON CONFLICT(id) DO UPDATE SET
				track_id = NULL, title = NULL, date = NULL, duration_ms = NULL,
				topics = NULL, audio_url = NULL, position_ms = 0,
				saved_at = excluded.saved_at
		`, savedAt)
		return errors.Wrap(err, "save session")
	}

	t := s.Current
	topics, err := encodeTopics(t.Topics)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO session (id, track_id, title, date, duration_ms, topics, audio_url, position_ms, saved_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			track_id = excluded.track_id,
			title = excluded.title,
			date = excluded.date,
			duration_ms = excluded.duration_ms,
			topics = excluded.topics,
			audio_url = excluded.audio_url,
			position_ms = excluded.position_ms,
			saved_at = excluded.saved_at
	`, t.ID, t.Title, dbutil.NullString(t.Date), t.Duration.Milliseconds(), topics,
		dbutil.NullString(t.AudioURL), s.Position.Milliseconds(), savedAt)
	return errors.Wrap(err, "save session")
}
