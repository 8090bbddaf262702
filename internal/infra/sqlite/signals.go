package sqlite

import (
	"time"

	"github.com/ascend-app/ascend/internal/domain"
)

// ─── Signals ────────────────────────────────────────────────────────────────

// InsertSignal stores a one-shot UI feedback flag.
func (d *DB) InsertSignal(s domain.Signal) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO signals (type, title, body, created_at, consumed)
		 VALUES (?, ?, ?, ?, 0)`,
		string(s.Type), s.Title, s.Body, s.CreatedAt.UnixNano(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListPendingSignals returns unconsumed signals, oldest first.
func (d *DB) ListPendingSignals() ([]domain.Signal, error) {
	rows, err := d.db.Query(
		`SELECT id, type, title, body, created_at
		 FROM signals WHERE consumed = 0 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []domain.Signal
	for rows.Next() {
		var s domain.Signal
		var createdAt int64
		var typ string
		if err := rows.Scan(&s.ID, &typ, &s.Title, &s.Body, &createdAt); err != nil {
			return nil, err
		}
		s.Type = domain.SignalType(typ)
		s.CreatedAt = time.Unix(0, createdAt)
		signals = append(signals, s)
	}
	return signals, rows.Err()
}

// ConsumeSignal marks one signal as consumed.
func (d *DB) ConsumeSignal(id int64) error {
	_, err := d.db.Exec(`UPDATE signals SET consumed = 1 WHERE id = ?`, id)
	return err
}
