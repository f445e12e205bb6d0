// Package storage keeps the final score of every finished game in SQLite.
// It uses the pure-Go modernc.org/sqlite driver, so no CGO is needed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scores (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id    TEXT    NOT NULL,
		score      INTEGER NOT NULL CHECK (score >= 0),
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(game_id, score DESC, id)`,
}

const entryColumns = `id, game_id, score, created_at`

// Store is a score database. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// ScoreEntry is one finished game.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// GameStats aggregates the finished games of one layout.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastScore  int
	LastPlayed time.Time
}

// Open opens the database at path, creating parent directories and the
// schema as needed. A leading "~" expands to the home directory and
// MemoryPath opens an in-memory database.
func Open(path string) (*Store, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection serializes concurrent SSH sessions and keeps an
	// in-memory database alive between calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func resolvePath(path string) (string, error) {
	if path == MemoryPath {
		return path, nil
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create directory for %s: %w", path, err)
	}
	return path, nil
}

// migrate runs the migrations the database has not seen yet.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not take bind parameters
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveScore records the final score of a finished game and returns its ID.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	if score < 0 {
		return 0, fmt.Errorf("storage: negative score %d", score)
	}

	res, err := s.db.Exec(
		"INSERT INTO scores (game_id, score, created_at) VALUES (?, ?, ?)",
		gameID, score, s.now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns up to limit scores for gameID, best first.
// Equal scores list the earlier game first. A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	return s.entries("top scores",
		"SELECT "+entryColumns+" FROM scores WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?",
		gameID, defaultLimit(limit))
}

// RecentScores returns up to limit scores for gameID, newest first.
func (s *Store) RecentScores(gameID string, limit int) ([]ScoreEntry, error) {
	return s.entries("recent scores",
		"SELECT "+entryColumns+" FROM scores WHERE game_id = ? ORDER BY id DESC LIMIT ?",
		gameID, defaultLimit(limit))
}

func defaultLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	return limit
}

func (s *Store) entries(what, query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query %s: %w", what, err)
	}
	defer rows.Close()

	var out []ScoreEntry
	for rows.Next() {
		var (
			e    ScoreEntry
			unix int64
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &unix); err != nil {
			return nil, fmt.Errorf("storage: cannot scan %s: %w", what, err)
		}
		e.CreatedAt = time.Unix(unix, 0)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: reading %s: %w", what, err)
	}
	return out, nil
}

// HighScore returns the best score for gameID, or 0 if it was never finished.
func (s *Store) HighScore(gameID string) (int, error) {
	var best int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(score), 0) FROM scores WHERE game_id = ?", gameID,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return best, nil
}

// LastScore returns the score of the most recently finished game.
// The boolean is false when gameID was never finished.
func (s *Store) LastScore(gameID string) (int, bool, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM scores WHERE game_id = ? ORDER BY id DESC LIMIT 1", gameID,
	).Scan(&score)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("storage: cannot query last score: %w", err)
	}
	return score, true, nil
}

// ClearScores deletes every score of gameID.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// statsQuery aggregates per layout. The correlated subquery picks the
// newest row, which MAX(created_at) alone cannot identify on ties.
const statsQuery = `
	SELECT s.game_id, COUNT(*), MAX(s.score), AVG(s.score), SUM(s.score),
	       l.score, l.created_at
	FROM scores s
	JOIN scores l ON l.id = (SELECT MAX(id) FROM scores WHERE game_id = s.game_id)
	%s
	GROUP BY s.game_id`

// GetGameStats returns the statistics of gameID. A layout that was never
// finished yields zero stats, not an error.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	all, err := s.stats(fmt.Sprintf(statsQuery, "WHERE s.game_id = ?"), gameID)
	if err != nil {
		return nil, err
	}
	if st, ok := all[gameID]; ok {
		return st, nil
	}
	return &GameStats{GameID: gameID}, nil
}

// GetAllGamesStats returns the statistics of every layout with at least one
// finished game, keyed by layout ID.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	return s.stats(fmt.Sprintf(statsQuery, ""))
}

func (s *Store) stats(query string, args ...any) (map[string]*GameStats, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*GameStats)
	for rows.Next() {
		var (
			st   GameStats
			unix int64
		)
		if err := rows.Scan(&st.GameID, &st.GamesCount, &st.HighScore, &st.AvgScore,
			&st.TotalScore, &st.LastScore, &unix); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats: %w", err)
		}
		st.LastPlayed = time.Unix(unix, 0)
		out[st.GameID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: reading stats: %w", err)
	}
	return out, nil
}
