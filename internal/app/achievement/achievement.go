// Package achievement evaluates the fixed milestone rule set after every
// mutating operation and unlocks matching achievements exactly once.
// Dedup is by stable rule id, not display title — titles can be renamed
// without re-unlocking.
package achievement

import (
	"fmt"
	"time"

	"github.com/ascend-app/ascend/internal/app/ledger"
	"github.com/ascend-app/ascend/internal/app/signal"
	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/metrics"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Service manages milestone evaluation and unlocking.
type Service struct {
	db      *sqlite.DB
	ledger  *ledger.Service
	signals *signal.Service
	rules   []domain.AchievementRule
}

// NewService creates an achievement engine with the built-in rule set.
func NewService(db *sqlite.DB, led *ledger.Service, sig *signal.Service) *Service {
	return &Service{db: db, ledger: led, signals: sig, rules: DefaultRules()}
}

// DefaultRules is the ordered milestone catalog.
func DefaultRules() []domain.AchievementRule {
	return []domain.AchievementRule{
		{
			RuleID: "first_win", Title: "First Victory", Icon: "trophy",
			Description: "Complete your first goal", Rarity: domain.RarityCommon,
			Predicate: func(s domain.ProgressSnapshot) bool { return s.TotalCompleted >= 1 },
		},
		{
			RuleID: "goals_5", Title: "Getting Serious", Icon: "flag",
			Description: "Complete 5 goals", Rarity: domain.RarityRare,
			Predicate: func(s domain.ProgressSnapshot) bool { return s.TotalCompleted >= 5 },
		},
		{
			RuleID: "goals_10", Title: "Relentless", Icon: "flag.fill",
			Description: "Complete 10 goals", Rarity: domain.RarityRare,
			Predicate: func(s domain.ProgressSnapshot) bool { return s.TotalCompleted >= 10 },
		},
		{
			RuleID: "goals_25", Title: "Unstoppable", Icon: "crown",
			Description: "Complete 25 goals", Rarity: domain.RarityEpic,
			Predicate: func(s domain.ProgressSnapshot) bool { return s.TotalCompleted >= 25 },
		},
		{
			RuleID: "streak_7", Title: "Week Warrior", Icon: "flame",
			Description: "Keep a 7-day streak", Rarity: domain.RarityRare,
			Predicate: func(s domain.ProgressSnapshot) bool { return s.Streak >= 7 },
		},
		{
			RuleID: "streak_30", Title: "Iron Will", Icon: "flame.fill",
			Description: "Keep a 30-day streak", Rarity: domain.RarityEpic,
			Predicate: func(s domain.ProgressSnapshot) bool { return s.Streak >= 30 },
		},
		{
			RuleID: "level_5", Title: "Rising Star", Icon: "star",
			Description: "Reach level 5", Rarity: domain.RarityRare,
			Predicate: func(s domain.ProgressSnapshot) bool { return s.Level >= 5 },
		},
		{
			RuleID: "level_10", Title: "Seasoned Climber", Icon: "star.fill",
			Description: "Reach level 10", Rarity: domain.RarityEpic,
			Predicate: func(s domain.ProgressSnapshot) bool { return s.Level >= 10 },
		},
		{
			RuleID: "coins_1000", Title: "Treasurer", Icon: "creditcard",
			Description: "Hold 1000 coins at once", Rarity: domain.RarityEpic,
			Predicate: func(s domain.ProgressSnapshot) bool { return s.Coins >= 1000 },
		},
		{
			RuleID: "stats_50", Title: "Well Rounded", Icon: "person.crop.circle",
			Description: "Reach an overall stat score of 50", Rarity: domain.RarityLegendary,
			Predicate: func(s domain.ProgressSnapshot) bool { return s.StatsOverall >= 50 },
		},
	}
}

// Evaluate checks every rule against the current state and unlocks any
// unmet-but-now-met achievement. Idempotent: already-unlocked rules are
// skipped, so repeated calls with unchanged state unlock nothing new.
func (s *Service) Evaluate(now time.Time) ([]domain.Achievement, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	var unlocked []domain.Achievement
	for _, rule := range s.rules {
		done, err := s.db.IsAchievementUnlocked(rule.RuleID)
		if err != nil {
			return nil, err
		}
		if done {
			continue
		}
		if rule.Predicate == nil || !rule.Predicate(snap) {
			continue
		}

		a, err := s.unlock(rule, now)
		if err != nil {
			return nil, err
		}
		if a != nil {
			unlocked = append(unlocked, *a)
		}
	}

	return unlocked, nil
}

// unlock records the achievement, credits its coin value, and raises a
// one-shot signal.
func (s *Service) unlock(rule domain.AchievementRule, now time.Time) (*domain.Achievement, error) {
	a := domain.Achievement{
		RuleID:      rule.RuleID,
		Title:       rule.Title,
		Description: rule.Description,
		Icon:        rule.Icon,
		Rarity:      rule.Rarity,
		CoinsEarned: rule.Rarity.Coins(),
		EarnedAt:    now,
	}

	isNew, err := s.db.InsertAchievement(a)
	if err != nil {
		return nil, fmt.Errorf("unlock %s: %w", rule.RuleID, err)
	}
	if !isNew {
		return nil, nil
	}

	if err := s.ledger.AddCoins(a.CoinsEarned); err != nil {
		return nil, err
	}
	if _, err := s.signals.Raise(domain.SignalAchievement, a.Title, a.Description, now); err != nil {
		return nil, err
	}
	metrics.AchievementsUnlocked.WithLabelValues(string(a.Rarity)).Inc()
	return &a, nil
}

// Snapshot assembles the state fed to rule predicates. Called after the
// mutating operation has fully applied, so no rule sees a half-updated
// profile.
func (s *Service) Snapshot() (domain.ProgressSnapshot, error) {
	var snap domain.ProgressSnapshot

	profile, err := s.db.LoadProfile()
	if err != nil {
		return snap, err
	}
	goals, err := s.db.ListGoals()
	if err != nil {
		return snap, err
	}

	snap.TotalCompleted = profile.TotalCompleted
	snap.Streak = profile.Streak
	snap.LongestStreak = profile.LongestStreak
	snap.Level = profile.Level
	snap.Coins = profile.Coins
	snap.GoalCount = len(goals)
	snap.StatsOverall = profile.Stats.Overall()
	return snap, nil
}

// List returns all unlocked achievements, newest first.
func (s *Service) List() ([]domain.Achievement, error) {
	return s.db.ListAchievements()
}

// Counts returns unlocked and total achievement counts.
func (s *Service) Counts() (unlocked, total int, err error) {
	unlocked, err = s.db.AchievementCount()
	return unlocked, len(s.rules), err
}
