package sqlite

import (
	"database/sql"
	"time"

	"github.com/ascend-app/ascend/internal/domain"
)

// ─── Rewards ────────────────────────────────────────────────────────────────

// UpsertReward inserts or updates a shop reward.
func (d *DB) UpsertReward(r domain.Reward) error {
	_, err := d.db.Exec(
		`INSERT INTO rewards (id, title, description, cost, icon, category, custom)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			description=excluded.description,
			cost=excluded.cost,
			icon=excluded.icon,
			category=excluded.category,
			custom=excluded.custom`,
		r.ID, r.Title, r.Description, r.Cost, r.Icon, r.Category, r.Custom,
	)
	return err
}

// GetReward retrieves a reward with its purchase history.
// Returns domain.ErrRewardNotFound for an unknown id.
func (d *DB) GetReward(id string) (*domain.Reward, error) {
	row := d.db.QueryRow(
		`SELECT id, title, description, cost, icon, category, custom
		 FROM rewards WHERE id = ?`, id,
	)
	r, err := scanReward(row)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrRewardNotFound
	}

	purchases, err := d.ListPurchases(id)
	if err != nil {
		return nil, err
	}
	r.Purchases = purchases
	return r, nil
}

// ListRewards returns the full catalog ordered by title.
func (d *DB) ListRewards() ([]domain.Reward, error) {
	rows, err := d.db.Query(
		`SELECT id, title, description, cost, icon, category, custom
		 FROM rewards ORDER BY title ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []domain.Reward
	for rows.Next() {
		r, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, *r)
	}
	return rewards, rows.Err()
}

// DeleteReward removes a reward and its purchase history.
func (d *DB) DeleteReward(id string) error {
	result, err := d.db.Exec(`DELETE FROM rewards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrRewardNotFound
	}
	_, err = d.db.Exec(`DELETE FROM purchases WHERE reward_id = ?`, id)
	return err
}

// ─── Purchases ──────────────────────────────────────────────────────────────

// InsertPurchase appends one purchase record.
func (d *DB) InsertPurchase(p domain.PurchaseRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO purchases (id, reward_id, purchased_at, cost_paid, redeemed, redeemed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.RewardID, p.PurchasedAt.UnixNano(), p.CostPaid,
		p.Redeemed, nullableNano(p.RedeemedAt),
	)
	return err
}

// GetPurchase retrieves one purchase record.
// Returns domain.ErrPurchaseNotFound for an unknown id.
func (d *DB) GetPurchase(id string) (*domain.PurchaseRecord, error) {
	row := d.db.QueryRow(
		`SELECT id, reward_id, purchased_at, cost_paid, redeemed, redeemed_at
		 FROM purchases WHERE id = ?`, id,
	)
	p, err := scanPurchase(row)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPurchaseNotFound
	}
	return p, nil
}

// ListPurchases returns a reward's purchase history, oldest first.
func (d *DB) ListPurchases(rewardID string) ([]domain.PurchaseRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, reward_id, purchased_at, cost_paid, redeemed, redeemed_at
		 FROM purchases WHERE reward_id = ? ORDER BY purchased_at ASC`, rewardID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []domain.PurchaseRecord
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, *p)
	}
	return purchases, rows.Err()
}

// MarkRedeemed flips the one-way redemption flag on a purchase.
func (d *DB) MarkRedeemed(id string, at time.Time) error {
	_, err := d.db.Exec(
		`UPDATE purchases SET redeemed = 1, redeemed_at = ? WHERE id = ?`,
		at.UnixNano(), id,
	)
	return err
}

func scanReward(s scanner) (*domain.Reward, error) {
	var r domain.Reward
	err := s.Scan(&r.ID, &r.Title, &r.Description, &r.Cost, &r.Icon,
		&r.Category, &r.Custom)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanPurchase(s scanner) (*domain.PurchaseRecord, error) {
	var p domain.PurchaseRecord
	var purchasedAt int64
	var redeemedAt sql.NullInt64

	err := s.Scan(&p.ID, &p.RewardID, &purchasedAt, &p.CostPaid,
		&p.Redeemed, &redeemedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.PurchasedAt = time.Unix(0, purchasedAt)
	if redeemedAt.Valid {
		p.RedeemedAt = time.Unix(0, redeemedAt.Int64)
	}
	return &p, nil
}

func nullableNano(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}
