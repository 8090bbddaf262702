package domain

import "time"

// Rarity grades an achievement and implies its coin value.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Coins is the coin reward carried by this rarity.
func (r Rarity) Coins() int64 {
	switch r {
	case RarityCommon:
		return 25
	case RarityRare:
		return 50
	case RarityEpic:
		return 100
	case RarityLegendary:
		return 250
	default:
		return 25
	}
}

// AchievementRule defines one unlockable milestone.
// RuleID is the stable dedup key — display titles can be renamed freely
// without re-unlocking. The predicate runs against a ProgressSnapshot.
type AchievementRule struct {
	RuleID      string
	Title       string
	Description string
	Icon        string
	Rarity      Rarity
	Predicate   func(ProgressSnapshot) bool
}

// Achievement records one unlocked milestone. Immutable once created.
type Achievement struct {
	RuleID      string    `json:"rule_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Rarity      Rarity    `json:"rarity"`
	CoinsEarned int64     `json:"coins_earned"`
	EarnedAt    time.Time `json:"earned_at"`
}

// ProgressSnapshot is the state fed to achievement predicates.
// It is assembled after each mutating operation has fully applied, so
// rules never observe a half-updated profile.
type ProgressSnapshot struct {
	TotalCompleted int64
	Streak         int
	LongestStreak  int
	Level          int
	Coins          int64
	GoalCount      int
	StatsOverall   int
}
