package sqlite

import (
	"time"

	"github.com/ascend-app/ascend/internal/domain"
)

// ─── Achievements ───────────────────────────────────────────────────────────

// InsertAchievement records an unlocked achievement.
// Returns false if the rule id was already unlocked (idempotent).
func (d *DB) InsertAchievement(a domain.Achievement) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO achievements
			(rule_id, title, description, icon, rarity, coins_earned, earned_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.RuleID, a.Title, a.Description, a.Icon, string(a.Rarity),
		a.CoinsEarned, a.EarnedAt.UnixNano(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly unlocked
}

// IsAchievementUnlocked checks whether a rule has already fired.
func (d *DB) IsAchievementUnlocked(ruleID string) (bool, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM achievements WHERE rule_id = ?`, ruleID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAchievements returns all unlocked achievements, newest first.
func (d *DB) ListAchievements() ([]domain.Achievement, error) {
	rows, err := d.db.Query(
		`SELECT rule_id, title, description, icon, rarity, coins_earned, earned_at
		 FROM achievements ORDER BY earned_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		var rarity string
		var earnedAt int64
		if err := rows.Scan(&a.RuleID, &a.Title, &a.Description, &a.Icon,
			&rarity, &a.CoinsEarned, &earnedAt); err != nil {
			return nil, err
		}
		a.Rarity = domain.Rarity(rarity)
		a.EarnedAt = time.Unix(0, earnedAt)
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// AchievementCount returns the number of unlocked achievements.
func (d *DB) AchievementCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM achievements`).Scan(&count)
	return count, err
}
