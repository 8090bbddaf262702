// Package penalty applies negative adjustments when a goal is failed or
// left untouched at day rollover: a difficulty-scaled coin debit (floored
// at zero balance), a character-stat loss, one step of progress undone,
// and an immutable penalty record for the daily briefing.
package penalty

import (
	"fmt"
	"time"

	"github.com/ascend-app/ascend/internal/app/achievement"
	"github.com/ascend-app/ascend/internal/app/ledger"
	"github.com/ascend-app/ascend/internal/app/stats"
	"github.com/ascend-app/ascend/internal/app/streak"
	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/metrics"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Service applies penalties and owns the daily briefing read.
type Service struct {
	db           *sqlite.DB
	ledger       *ledger.Service
	stats        *stats.Service
	achievements *achievement.Service
	loc          *time.Location
}

// NewService creates a penalty engine.
func NewService(db *sqlite.DB, led *ledger.Service, st *stats.Service, ach *achievement.Service, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{db: db, ledger: led, stats: st, achievements: ach, loc: loc}
}

// Apply penalizes the goal for the given reason. The goal's progress is
// stepped back by one unit as a visible side effect, mirroring a manual
// undo. Returns the stored record.
func (s *Service) Apply(g domain.Goal, reason domain.PenaltyReason, now time.Time) (domain.PenaltyRecord, error) {
	coinPenalty := g.Difficulty.CoinPenalty()
	statPenalty := g.Difficulty.StatPenalty()

	// The record keeps the nominal penalty even when the debit floors at zero.
	if _, err := s.ledger.Deduct(coinPenalty); err != nil {
		return domain.PenaltyRecord{}, fmt.Errorf("deduct coins: %w", err)
	}

	if err := s.stats.ApplyPenalty(g); err != nil {
		return domain.PenaltyRecord{}, fmt.Errorf("stat penalty: %w", err)
	}

	rec := domain.PenaltyRecord{
		ID:          domain.NewPenaltyID(),
		GoalID:      g.ID,
		GoalTitle:   g.Title,
		Date:        now,
		CoinPenalty: coinPenalty,
		StatPenalty: statPenalty,
		Reason:      reason,
	}
	if err := s.db.InsertPenalty(rec); err != nil {
		return domain.PenaltyRecord{}, fmt.Errorf("store penalty: %w", err)
	}

	g.CurrentValue = g.Clamp(g.CurrentValue - 1)
	g.UpdatedAt = now
	if err := s.db.UpsertGoal(g); err != nil {
		return domain.PenaltyRecord{}, fmt.Errorf("step back progress: %w", err)
	}

	metrics.PenaltiesApplied.WithLabelValues(string(reason)).Inc()

	// Mutations re-evaluate achievements, penalties included.
	if _, err := s.achievements.Evaluate(now); err != nil {
		return rec, err
	}
	return rec, nil
}

// MarkFailed is the interactive self-reported failure path: the goal is
// looked up and penalized with the marked-failed reason.
func (s *Service) MarkFailed(goalID string, now time.Time) (domain.PenaltyRecord, error) {
	g, err := s.db.GetGoal(goalID)
	if err != nil {
		return domain.PenaltyRecord{}, err
	}
	return s.Apply(*g, domain.PenaltyMarkedFailed, now)
}

// Today returns today's unconsumed penalties without consuming them.
func (s *Service) Today(now time.Time) ([]domain.PenaltyRecord, error) {
	dayStart := streak.DayStart(now, s.loc)
	return s.db.ListPenaltiesBetween(dayStart, dayStart.AddDate(0, 0, 1))
}

// Briefing returns today's penalties and consumes them: a second read
// the same day comes back empty. The briefing date is recorded on the
// profile so the presentation layer shows it once per day.
func (s *Service) Briefing(now time.Time) ([]domain.PenaltyRecord, error) {
	penalties, err := s.Today(now)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(penalties))
	for _, p := range penalties {
		ids = append(ids, p.ID)
	}
	if err := s.db.ConsumePenalties(ids); err != nil {
		return nil, err
	}

	profile, err := s.db.LoadProfile()
	if err != nil {
		return nil, err
	}
	profile.LastBriefing = now
	profile.ShowBriefing = false
	if err := s.db.SaveProfile(profile); err != nil {
		return nil, err
	}

	return penalties, nil
}

// AlreadyPenalized reports whether the goal received a penalty with this
// reason today. Keeps the rollover sweep idempotent across repeated runs.
func (s *Service) AlreadyPenalized(goalID string, reason domain.PenaltyReason, now time.Time) (bool, error) {
	dayStart := streak.DayStart(now, s.loc)
	return s.db.HasPenaltyToday(goalID, reason, dayStart, dayStart.AddDate(0, 0, 1))
}
