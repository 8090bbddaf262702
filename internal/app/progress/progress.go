// Package progress is the entry point for goal mutations. It clamps
// values, detects completion-edge transitions, and drives the reward
// sequence in a fixed order: mutate goal, credit coins and XP, update the
// streak, update character stats, then re-evaluate achievements — each
// operation runs to completion before the next is accepted.
package progress

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ascend-app/ascend/internal/app/achievement"
	"github.com/ascend-app/ascend/internal/app/ledger"
	"github.com/ascend-app/ascend/internal/app/signal"
	"github.com/ascend-app/ascend/internal/app/stats"
	"github.com/ascend-app/ascend/internal/app/streak"
	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/metrics"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Habit tick rewards and penalties (flat, difficulty keyed on easy only).
const (
	habitRewardEasy  = 5
	habitReward      = 10
	habitPenaltyEasy = 3
	habitPenalty     = 5
	xpPerCoin        = 2
)

// Service orchestrates goal progress and rewards.
// A single mutex guards the whole profile+goals aggregate per operation,
// preserving the single-actor model even under concurrent callers.
type Service struct {
	mu           sync.Mutex
	db           *sqlite.DB
	ledger       *ledger.Service
	streak       *streak.Service
	stats        *stats.Service
	achievements *achievement.Service
	signals      *signal.Service
}

// NewService wires the progress engine to its collaborators.
func NewService(
	db *sqlite.DB,
	led *ledger.Service,
	str *streak.Service,
	st *stats.Service,
	ach *achievement.Service,
	sig *signal.Service,
) *Service {
	return &Service{
		db:           db,
		ledger:       led,
		streak:       str,
		stats:        st,
		achievements: ach,
		signals:      sig,
	}
}

// Result describes one progress mutation.
type Result struct {
	Goal        domain.Goal
	Completed   bool  // this call crossed the completion edge
	CoinsEarned int64 // completion + habit coins from this call
	XPEarned    int64
	LevelAfter  int
	LeveledUp   bool
	Unlocked    []domain.Achievement
}

// ─── Goal CRUD ──────────────────────────────────────────────────────────────

// Create validates and stores a new goal. The engine refuses non-positive
// targets and empty titles even though the presentation layer validates
// too — invariants are defended here.
func (s *Service) Create(g domain.Goal, now time.Time) (domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return g, fmt.Errorf("empty title: %w", domain.ErrInvalidGoal)
	}
	if g.TargetValue <= 0 {
		return g, fmt.Errorf("target must be positive, got %v: %w", g.TargetValue, domain.ErrInvalidGoal)
	}
	if !g.Frequency.IsValid() || !g.Type.IsValid() || !g.Difficulty.IsValid() {
		return g, fmt.Errorf("unknown frequency/type/difficulty: %w", domain.ErrInvalidGoal)
	}

	if g.ID == "" {
		g.ID = domain.NewGoalID()
	}
	g.CurrentValue = g.Clamp(g.CurrentValue)
	g.Active = true
	g.CreatedAt = now
	g.UpdatedAt = now

	if err := s.db.UpsertGoal(g); err != nil {
		return g, fmt.Errorf("store goal: %w", err)
	}
	return g, nil
}

// Update edits a goal's descriptive fields, keeping progress intact.
func (s *Service) Update(g domain.Goal, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.db.GetGoal(g.ID)
	if err != nil {
		return err
	}

	existing.Title = strings.TrimSpace(g.Title)
	if existing.Title == "" {
		return fmt.Errorf("empty title: %w", domain.ErrInvalidGoal)
	}
	if g.TargetValue <= 0 {
		return fmt.Errorf("target must be positive: %w", domain.ErrInvalidGoal)
	}
	existing.Description = g.Description
	existing.Icon = g.Icon
	existing.Difficulty = g.Difficulty
	existing.TargetValue = g.TargetValue
	existing.CurrentValue = existing.Clamp(existing.CurrentValue)
	existing.Repeating = g.Repeating
	existing.Active = g.Active
	existing.UpdatedAt = now

	return s.db.UpsertGoal(*existing)
}

// Delete removes a goal from the active collection. No tombstone.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.DeleteGoal(id)
}

// Get returns one goal with its completion history.
func (s *Service) Get(id string) (*domain.Goal, error) {
	return s.db.GetGoal(id)
}

// Filter narrows List results. Zero values mean "any".
type Filter struct {
	Frequency domain.Frequency
	Completed *bool
	Active    *bool
}

// List returns goals matching the filter, oldest first.
func (s *Service) List(f Filter) ([]domain.Goal, error) {
	goals, err := s.db.ListGoals()
	if err != nil {
		return nil, err
	}

	var out []domain.Goal
	for _, g := range goals {
		if f.Frequency != "" && g.Frequency != f.Frequency {
			continue
		}
		if f.Completed != nil && g.IsCompleted() != *f.Completed {
			continue
		}
		if f.Active != nil && g.Active != *f.Active {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

// ─── Progress Mutations ─────────────────────────────────────────────────────

// SetProgress sets a goal's current value, clamped to [0, target], and
// fires the completion reward exactly once on the false→true edge of
// current ≥ target. Achievements are re-evaluated afterward regardless.
func (s *Service) SetProgress(id string, value float64, now time.Time) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(id, func(g domain.Goal) float64 { return value }, 0, now)
}

// Increment adds delta (default one step) to the goal's current value.
// For habit goals every increment also pays a small flat reward and
// advances streak and stats — not just the completion edge.
func (s *Service) Increment(id string, delta float64, now time.Time) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if delta == 0 {
		delta = 1
	}
	return s.apply(id, func(g domain.Goal) float64 { return g.CurrentValue + delta }, delta, now)
}

// Decrement subtracts delta (default one step), clamped at zero. For
// habit goals it applies a small flat coin penalty, floored at a zero
// balance.
func (s *Service) Decrement(id string, delta float64, now time.Time) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if delta == 0 {
		delta = 1
	}
	return s.apply(id, func(g domain.Goal) float64 { return g.CurrentValue - delta }, -delta, now)
}

// apply is the shared mutation path. direction > 0 marks a habit-tick
// increment, < 0 a habit decrement, 0 an absolute set.
func (s *Service) apply(id string, next func(domain.Goal) float64, direction float64, now time.Time) (*Result, error) {
	goal, err := s.db.GetGoal(id)
	if err != nil {
		return nil, err
	}

	g := *goal
	wasCompleted := g.IsCompleted()
	g.CurrentValue = g.Clamp(next(g))
	g.UpdatedAt = now
	isNowCompleted := g.IsCompleted()

	if err := s.db.UpsertGoal(g); err != nil {
		return nil, fmt.Errorf("store progress: %w", err)
	}

	res := &Result{Goal: g}

	// Habit ticks reward every occurrence, not just the edge.
	if g.Type == domain.TrackHabit && direction > 0 {
		if err := s.habitTick(g, res, now); err != nil {
			return nil, err
		}
	}
	if g.Type == domain.TrackHabit && direction < 0 {
		coinPenalty := int64(habitPenalty)
		if g.Difficulty == domain.DiffEasy {
			coinPenalty = habitPenaltyEasy
		}
		if _, err := s.ledger.Deduct(coinPenalty); err != nil {
			return nil, err
		}
	}

	if !wasCompleted && isNowCompleted {
		if err := s.completionEdge(&g, res, now); err != nil {
			return nil, err
		}
		res.Goal = g
	}

	// Always re-evaluate, even without an edge: streak or coin movement
	// from a habit tick can satisfy a rule.
	unlocked, err := s.achievements.Evaluate(now)
	if err != nil {
		return nil, err
	}
	res.Unlocked = unlocked

	level, err := s.ledger.Level()
	if err != nil {
		return nil, err
	}
	res.LevelAfter = level
	return res, nil
}

// completionEdge runs the exactly-once reward sequence for a false→true
// crossing of the target threshold.
func (s *Service) completionEdge(g *domain.Goal, res *Result, now time.Time) error {
	coins := g.Difficulty.CompletionCoins()

	rec := domain.CompletionRecord{
		ID:          domain.NewCompletionID(),
		GoalID:      g.ID,
		CompletedAt: now,
		Value:       g.TargetValue,
		CoinsEarned: coins,
	}
	if err := s.db.InsertCompletion(rec); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	g.Completions = append(g.Completions, rec)

	if err := s.ledger.AddCoins(coins); err != nil {
		return err
	}
	xpRes, err := s.ledger.AddXP(coins * xpPerCoin)
	if err != nil {
		return err
	}

	if err := s.bumpTotalCompleted(); err != nil {
		return err
	}
	if _, err := s.streak.Update(now); err != nil {
		return err
	}
	if err := s.stats.ApplyGain(*g, false); err != nil {
		return err
	}

	if _, err := s.signals.Raise(domain.SignalCoinsEarned, g.Title,
		strconv.FormatInt(coins, 10), now); err != nil {
		return err
	}
	if xpRes.LeveledUp() {
		if _, err := s.signals.Raise(domain.SignalLevelUp, "Level up",
			strconv.Itoa(xpRes.LevelAfter), now); err != nil {
			return err
		}
	}

	res.Completed = true
	res.CoinsEarned += coins
	res.XPEarned = xpRes.XPAdded
	res.LeveledUp = xpRes.LeveledUp()
	metrics.GoalsCompleted.WithLabelValues(string(g.Difficulty)).Inc()
	return nil
}

// habitTick pays the per-occurrence flat reward and advances streak and
// stats in habit mode.
func (s *Service) habitTick(g domain.Goal, res *Result, now time.Time) error {
	coins := int64(habitReward)
	if g.Difficulty == domain.DiffEasy {
		coins = habitRewardEasy
	}
	if err := s.ledger.AddCoins(coins); err != nil {
		return err
	}
	if _, err := s.streak.Update(now); err != nil {
		return err
	}
	if err := s.stats.ApplyGain(g, true); err != nil {
		return err
	}

	res.CoinsEarned += coins
	metrics.HabitTicks.Inc()
	return nil
}

func (s *Service) bumpTotalCompleted() error {
	v, err := s.db.GetProfileValue("total_completed")
	if err != nil {
		return err
	}
	total := int64(0)
	if v != "" {
		total, _ = strconv.ParseInt(v, 10, 64)
	}
	return s.db.SetProfileValue("total_completed", strconv.FormatInt(total+1, 10))
}
