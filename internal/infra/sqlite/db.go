// Package sqlite provides SQLite-based persistent storage for Ascend.
// Uses WAL mode for crash-safe writes. Four logical blobs live here:
// the goals collection, the achievements collection, the rewards
// collection, and the user profile (a key-value table).
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Goals collection
		`CREATE TABLE IF NOT EXISTS goals (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			frequency   TEXT NOT NULL,
			type        TEXT NOT NULL,
			difficulty  TEXT NOT NULL,
			target      REAL NOT NULL,
			current     REAL NOT NULL DEFAULT 0,
			icon        TEXT NOT NULL DEFAULT '',
			active      BOOLEAN NOT NULL DEFAULT 1,
			repeating   BOOLEAN NOT NULL DEFAULT 0,
			created_at  INTEGER NOT NULL,
			updated_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_frequency ON goals(frequency)`,

		// Append-only completion history
		`CREATE TABLE IF NOT EXISTS completions (
			id           TEXT PRIMARY KEY,
			goal_id      TEXT NOT NULL,
			completed_at INTEGER NOT NULL,
			value        REAL NOT NULL,
			coins_earned INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_completions_goal ON completions(goal_id)`,

		// User profile: key-value store (coins, level, xp, streak state, stats)
		`CREATE TABLE IF NOT EXISTS profile (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Unlocked achievements, keyed by stable rule id
		`CREATE TABLE IF NOT EXISTS achievements (
			rule_id      TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			icon         TEXT NOT NULL DEFAULT '',
			rarity       TEXT NOT NULL,
			coins_earned INTEGER NOT NULL,
			earned_at    INTEGER NOT NULL
		)`,

		// Reward shop catalog
		`CREATE TABLE IF NOT EXISTS rewards (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cost        INTEGER NOT NULL,
			icon        TEXT NOT NULL DEFAULT '',
			category    TEXT NOT NULL DEFAULT '',
			custom      BOOLEAN NOT NULL DEFAULT 0
		)`,

		// Append-only purchase history
		`CREATE TABLE IF NOT EXISTS purchases (
			id           TEXT PRIMARY KEY,
			reward_id    TEXT NOT NULL,
			purchased_at INTEGER NOT NULL,
			cost_paid    INTEGER NOT NULL,
			redeemed     BOOLEAN NOT NULL DEFAULT 0,
			redeemed_at  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_reward ON purchases(reward_id)`,

		// Penalty records, consumed once by the daily briefing
		`CREATE TABLE IF NOT EXISTS penalties (
			id           TEXT PRIMARY KEY,
			goal_id      TEXT NOT NULL,
			goal_title   TEXT NOT NULL,
			date         INTEGER NOT NULL,
			coin_penalty INTEGER NOT NULL,
			stat_penalty INTEGER NOT NULL,
			reason       TEXT NOT NULL,
			consumed     BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_penalties_date ON penalties(date)`,

		// One-shot UI signals (level up, achievement, coins earned)
		`CREATE TABLE IF NOT EXISTS signals (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			consumed   BOOLEAN NOT NULL DEFAULT 0
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ResetAll wipes every table. Used by the full-reset command and by
// wholesale backup import.
func (d *DB) ResetAll() error {
	tables := []string{
		"goals", "completions", "profile", "achievements",
		"rewards", "purchases", "penalties", "signals",
	}
	for _, t := range tables {
		if _, err := d.db.Exec(`DELETE FROM ` + t); err != nil {
			return fmt.Errorf("reset %s: %w", t, err)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
