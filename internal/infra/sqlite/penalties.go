package sqlite

import (
	"time"

	"github.com/ascend-app/ascend/internal/domain"
)

// ─── Penalties ──────────────────────────────────────────────────────────────

// InsertPenalty appends one penalty record. Records are immutable except
// for the consumed flag, which the briefing read flips exactly once.
func (d *DB) InsertPenalty(p domain.PenaltyRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO penalties
			(id, goal_id, goal_title, date, coin_penalty, stat_penalty, reason, consumed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0)`,
		p.ID, p.GoalID, p.GoalTitle, p.Date.UnixNano(),
		p.CoinPenalty, p.StatPenalty, string(p.Reason),
	)
	return err
}

// ListPenaltiesBetween returns unconsumed penalties in [from, to), oldest first.
func (d *DB) ListPenaltiesBetween(from, to time.Time) ([]domain.PenaltyRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, goal_id, goal_title, date, coin_penalty, stat_penalty, reason
		 FROM penalties
		 WHERE consumed = 0 AND date >= ? AND date < ?
		 ORDER BY date ASC`,
		from.UnixNano(), to.UnixNano(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var penalties []domain.PenaltyRecord
	for rows.Next() {
		var p domain.PenaltyRecord
		var date int64
		var reason string
		if err := rows.Scan(&p.ID, &p.GoalID, &p.GoalTitle, &date,
			&p.CoinPenalty, &p.StatPenalty, &reason); err != nil {
			return nil, err
		}
		p.Date = time.Unix(0, date)
		p.Reason = domain.PenaltyReason(reason)
		penalties = append(penalties, p)
	}
	return penalties, rows.Err()
}

// ConsumePenalties marks the given penalty records as consumed.
func (d *DB) ConsumePenalties(ids []string) error {
	for _, id := range ids {
		if _, err := d.db.Exec(
			`UPDATE penalties SET consumed = 1 WHERE id = ?`, id,
		); err != nil {
			return err
		}
	}
	return nil
}

// HasPenaltyToday reports whether the goal already received a penalty with
// the given reason in [dayStart, dayEnd). Keeps rollover sweeps idempotent.
func (d *DB) HasPenaltyToday(goalID string, reason domain.PenaltyReason, dayStart, dayEnd time.Time) (bool, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM penalties
		 WHERE goal_id = ? AND reason = ? AND date >= ? AND date < ?`,
		goalID, string(reason), dayStart.UnixNano(), dayEnd.UnixNano(),
	).Scan(&count)
	return count > 0, err
}
