// Package storage provides SQLite-based persistence for players, scores,
// the leaderboard and reward claims.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// LeaderboardSize is how many players the leaderboard and rank lookups consider.
const LeaderboardSize = 50

var (
	// ErrPlayerNotFound is returned when a player ID has no profile.
	ErrPlayerNotFound = errors.New("storage: player not found")
	// ErrDuplicateClaim is returned when a reward label was already claimed in the period.
	ErrDuplicateClaim = errors.New("storage: reward already claimed for period")
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Player is a profile with lifetime stats.
type Player struct {
	ID          string // Lower-cased identity (SSH user, --player value or e-mail)
	Username    string // Masked display name
	HighScore   int
	GamesPlayed int
	CreatedAt   time.Time
}

// Result is the outcome of recording a finished game.
type Result struct {
	IsNewRecord bool
	HighScore   int
}

// LeaderboardEntry is one row of the leaderboard.
type LeaderboardEntry struct {
	Rank        int
	Username    string
	HighScore   int
	GamesPlayed int
}

// ScoreEntry represents a single recorded game.
type ScoreEntry struct {
	ID        int64
	PlayerID  string
	Username  string
	Score     int
	CreatedAt time.Time
}

// Claim is a reward handed to a player.
type Claim struct {
	PlayerID  string
	Label     string
	Period    string // Calendar month, "2006-01"
	Code      string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SSH sessions write concurrently; one connection serializes them
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			high_score INTEGER NOT NULL DEFAULT 0,
			games_played INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_players_high_score ON players(high_score DESC);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id TEXT NOT NULL REFERENCES players(id),
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player_id);

		CREATE TABLE IF NOT EXISTS reward_claims (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id TEXT NOT NULL REFERENCES players(id),
			label TEXT NOT NULL,
			period TEXT NOT NULL,
			code TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(player_id, label, period)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NormalizeID lower-cases and trims a player identity.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// MaskUsername derives the public display name from an identity: the first
// four and last two characters of the part before '@', lower-cased.
func MaskUsername(id string) string {
	local, _, _ := strings.Cut(id, "@")
	runes := []rune(local)
	start := runes[:min(4, len(runes))]
	end := runes[max(0, len(runes)-2):]
	return strings.ToLower(string(start) + "***" + string(end))
}

// EnsurePlayer returns the player's profile, creating an empty one if needed.
func (s *Store) EnsurePlayer(id string) (Player, error) {
	id = NormalizeID(id)
	if id == "" {
		return Player{}, fmt.Errorf("storage: empty player id")
	}

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO players (id, username, created_at) VALUES (?, ?, ?)",
		id, MaskUsername(id), s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return Player{}, fmt.Errorf("storage: cannot create player: %w", err)
	}

	return s.Player(id)
}

// Player loads a profile. It returns ErrPlayerNotFound for unknown IDs.
func (s *Store) Player(id string) (Player, error) {
	var p Player
	var createdAt any
	err := s.db.QueryRow(
		"SELECT id, username, high_score, games_played, created_at FROM players WHERE id = ?",
		NormalizeID(id),
	).Scan(&p.ID, &p.Username, &p.HighScore, &p.GamesPlayed, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, ErrPlayerNotFound
	}
	if err != nil {
		return Player{}, fmt.Errorf("storage: cannot query player: %w", err)
	}

	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

// Players returns every profile, including players who never finished a
// game, ordered by high score, best first.
func (s *Store) Players() ([]Player, error) {
	rows, err := s.db.Query(
		`SELECT id, username, high_score, games_played, created_at
		 FROM players
		 ORDER BY high_score DESC, created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Username, &p.HighScore, &p.GamesPlayed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return players, nil
}

// RecordResult stores a finished game, bumps the games counter and raises
// the high score when beaten.
func (s *Store) RecordResult(id string, score int) (Result, error) {
	id = NormalizeID(id)

	tx, err := s.db.Begin()
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var high int
	err = tx.QueryRow("SELECT high_score FROM players WHERE id = ?", id).Scan(&high)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrPlayerNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot query player: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO scores (player_id, score, created_at) VALUES (?, ?, ?)",
		id, score, s.now().UTC().Format(timeLayout),
	); err != nil {
		return Result{}, fmt.Errorf("storage: cannot save score: %w", err)
	}

	res := Result{IsNewRecord: score > high, HighScore: high}
	if res.IsNewRecord {
		res.HighScore = score
	}

	if _, err := tx.Exec(
		"UPDATE players SET high_score = ?, games_played = games_played + 1 WHERE id = ?",
		res.HighScore, id,
	); err != nil {
		return Result{}, fmt.Errorf("storage: cannot update player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("storage: cannot commit result: %w", err)
	}
	return res, nil
}

// Leaderboard returns players who finished at least one game, ordered by
// high score, best first. Ties keep the earlier player ahead.
func (s *Store) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = LeaderboardSize
	}

	rows, err := s.db.Query(
		`SELECT username, high_score, games_played
		 FROM players
		 WHERE games_played > 0
		 ORDER BY high_score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		e := LeaderboardEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&e.Username, &e.HighScore, &e.GamesPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerRank returns the 1-based leaderboard position of a player, or 0 when
// the player is not in the top LeaderboardSize.
func (s *Store) PlayerRank(id string) (int, error) {
	rows, err := s.db.Query(
		`SELECT id FROM players
		 WHERE games_played > 0
		 ORDER BY high_score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		LeaderboardSize,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}
	defer rows.Close()

	id = NormalizeID(id)
	for pos := 1; rows.Next(); pos++ {
		var got string
		if err := rows.Scan(&got); err != nil {
			return 0, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if got == id {
			return pos, nil
		}
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return 0, nil
}

// TopThresholds returns the three best player high scores, best first.
// Missing places are zero.
func (s *Store) TopThresholds() ([3]int, error) {
	var top [3]int
	entries, err := s.Leaderboard(len(top))
	if err != nil {
		return top, err
	}
	for i, e := range entries {
		top[i] = e.HighScore
	}
	return top, nil
}

// TopScores retrieves the best individual games, highest first.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT s.id, s.player_id, p.username, s.score, s.created_at
		 FROM scores s JOIN players p ON p.id = s.player_id
		 ORDER BY s.score DESC, s.id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.Username, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best single game ever recorded.
// Returns 0 if no scores exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// HasClaimed reports whether the player claimed the label in the period.
func (s *Store) HasClaimed(id, label, period string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM reward_claims WHERE player_id = ? AND label = ? AND period = ?",
		NormalizeID(id), label, period,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query claims: %w", err)
	}
	return n > 0, nil
}

// ClaimReward records a reward. It returns ErrDuplicateClaim when the label
// was already claimed by the player in the same period.
func (s *Store) ClaimReward(id, label, code, period string) error {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO reward_claims (player_id, label, period, code, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		NormalizeID(id), label, period, code, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save claim: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return ErrDuplicateClaim
	}
	return nil
}

// Claims lists a player's rewards, newest first.
func (s *Store) Claims(id string) ([]Claim, error) {
	rows, err := s.db.Query(
		`SELECT player_id, label, period, code, created_at
		 FROM reward_claims
		 WHERE player_id = ?
		 ORDER BY id DESC`,
		NormalizeID(id),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query claims: %w", err)
	}
	defer rows.Close()

	var claims []Claim
	for rows.Next() {
		var c Claim
		var createdAt any
		if err := rows.Scan(&c.PlayerID, &c.Label, &c.Period, &c.Code, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		claims = append(claims, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return claims, nil
}

// parseTime handles both time.Time and string datetime values from SQLite.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
