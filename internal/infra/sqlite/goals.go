package sqlite

import (
	"database/sql"
	"time"

	"github.com/ascend-app/ascend/internal/domain"
)

// ─── Goals ──────────────────────────────────────────────────────────────────

// UpsertGoal inserts or updates a goal record. Completion history is stored
// separately and never touched here.
func (d *DB) UpsertGoal(g domain.Goal) error {
	_, err := d.db.Exec(
		`INSERT INTO goals (id, title, description, frequency, type, difficulty,
			target, current, icon, active, repeating, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			description=excluded.description,
			frequency=excluded.frequency,
			type=excluded.type,
			difficulty=excluded.difficulty,
			target=excluded.target,
			current=excluded.current,
			icon=excluded.icon,
			active=excluded.active,
			repeating=excluded.repeating,
			updated_at=excluded.updated_at`,
		g.ID, g.Title, g.Description, string(g.Frequency), string(g.Type),
		string(g.Difficulty), g.TargetValue, g.CurrentValue, g.Icon,
		g.Active, g.Repeating, g.CreatedAt.UnixNano(), g.UpdatedAt.UnixNano(),
	)
	return err
}

// GetGoal retrieves a single goal with its completion history.
// Returns domain.ErrGoalNotFound for an unknown id.
func (d *DB) GetGoal(id string) (*domain.Goal, error) {
	row := d.db.QueryRow(
		`SELECT id, title, description, frequency, type, difficulty,
			target, current, icon, active, repeating, created_at, updated_at
		 FROM goals WHERE id = ?`, id,
	)
	g, err := scanGoal(row)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrGoalNotFound
	}

	comps, err := d.ListCompletions(id)
	if err != nil {
		return nil, err
	}
	g.Completions = comps
	return g, nil
}

// ListGoals returns all goals ordered by creation time, oldest first.
// Completion histories are not attached (use GetGoal for the full record).
func (d *DB) ListGoals() ([]domain.Goal, error) {
	rows, err := d.db.Query(
		`SELECT id, title, description, frequency, type, difficulty,
			target, current, icon, active, repeating, created_at, updated_at
		 FROM goals ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// DeleteGoal removes a goal and its completion history.
func (d *DB) DeleteGoal(id string) error {
	result, err := d.db.Exec(`DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrGoalNotFound
	}
	_, err = d.db.Exec(`DELETE FROM completions WHERE goal_id = ?`, id)
	return err
}

// ─── Completion History ─────────────────────────────────────────────────────

// InsertCompletion appends one completion record. Records are never edited
// or removed afterwards.
func (d *DB) InsertCompletion(c domain.CompletionRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO completions (id, goal_id, completed_at, value, coins_earned)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.GoalID, c.CompletedAt.UnixNano(), c.Value, c.CoinsEarned,
	)
	return err
}

// ListCompletions returns a goal's completion history, oldest first.
func (d *DB) ListCompletions(goalID string) ([]domain.CompletionRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, goal_id, completed_at, value, coins_earned
		 FROM completions WHERE goal_id = ? ORDER BY completed_at ASC`, goalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comps []domain.CompletionRecord
	for rows.Next() {
		var c domain.CompletionRecord
		var at int64
		if err := rows.Scan(&c.ID, &c.GoalID, &at, &c.Value, &c.CoinsEarned); err != nil {
			return nil, err
		}
		c.CompletedAt = time.Unix(0, at)
		comps = append(comps, c)
	}
	return comps, rows.Err()
}

// CompletionCount returns the total number of completion records.
func (d *DB) CompletionCount() (int64, error) {
	var n int64
	err := d.db.QueryRow(`SELECT COUNT(*) FROM completions`).Scan(&n)
	return n, err
}

func scanGoal(s scanner) (*domain.Goal, error) {
	var g domain.Goal
	var freq, typ, diff string
	var createdAt, updatedAt int64

	err := s.Scan(&g.ID, &g.Title, &g.Description, &freq, &typ, &diff,
		&g.TargetValue, &g.CurrentValue, &g.Icon, &g.Active, &g.Repeating,
		&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	g.Frequency = domain.Frequency(freq)
	g.Type = domain.TrackingType(typ)
	g.Difficulty = domain.Difficulty(diff)
	g.CreatedAt = time.Unix(0, createdAt)
	g.UpdatedAt = time.Unix(0, updatedAt)
	return &g, nil
}
