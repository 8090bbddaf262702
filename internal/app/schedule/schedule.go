// Package schedule runs the time-driven sweeps: resetting completed
// repeating goals once their frequency period elapses, penalizing daily
// goals left untouched at day rollover, and refreshing the streak on app
// foreground so multi-day absence breaks it even without interaction.
package schedule

import (
	"fmt"
	"time"

	"github.com/ascend-app/ascend/internal/app/penalty"
	"github.com/ascend-app/ascend/internal/app/streak"
	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Service owns the launch/foreground sweeps.
type Service struct {
	db        *sqlite.DB
	penalties *penalty.Service
	streaks   *streak.Service
	loc       *time.Location
}

// NewService creates a scheduler.
func NewService(db *sqlite.DB, pen *penalty.Service, str *streak.Service, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{db: db, penalties: pen, streaks: str, loc: loc}
}

// Tick resets every repeating, completed goal whose frequency period has
// elapsed since its last update: current value back to zero, last-updated
// to now. Resets never re-trigger rewards or penalties.
func (s *Service) Tick(now time.Time) (reset []domain.Goal, err error) {
	goals, err := s.db.ListGoals()
	if err != nil {
		return nil, err
	}

	for _, g := range goals {
		if !g.Repeating || !g.IsCompleted() {
			continue
		}
		if !PeriodElapsed(g.Frequency, g.UpdatedAt, now, s.loc) {
			continue
		}

		g.CurrentValue = 0
		g.UpdatedAt = now
		if err := s.db.UpsertGoal(g); err != nil {
			return reset, fmt.Errorf("reset goal %s: %w", g.ID, err)
		}
		reset = append(reset, g)
	}
	return reset, nil
}

// RolloverSweep penalizes active daily goals that are incomplete and saw
// no activity since yesterday's day boundary, with the not-touched
// reason. Idempotent per goal per day.
func (s *Service) RolloverSweep(now time.Time) (penalized []domain.PenaltyRecord, err error) {
	goals, err := s.db.ListGoals()
	if err != nil {
		return nil, err
	}

	today := streak.DayStart(now, s.loc)
	for _, g := range goals {
		if g.Frequency != domain.FreqDaily || !g.Active || g.IsCompleted() {
			continue
		}
		if !g.UpdatedAt.Before(today) {
			continue // touched today
		}

		done, err := s.penalties.AlreadyPenalized(g.ID, domain.PenaltyNotTouched, now)
		if err != nil {
			return penalized, err
		}
		if done {
			continue
		}

		rec, err := s.penalties.Apply(g, domain.PenaltyNotTouched, now)
		if err != nil {
			return penalized, err
		}
		penalized = append(penalized, rec)
	}
	return penalized, nil
}

// ForegroundCheck refreshes the streak from a lifecycle event with no
// goal interaction: a gap of more than one day resets the count.
func (s *Service) ForegroundCheck(now time.Time) error {
	_, err := s.streaks.Update(now)
	return err
}

// PeriodElapsed reports whether at least one full frequency period lies
// between last and now. Calendar-aware: a day boundary for daily goals,
// an ISO week for weekly, a calendar month for monthly, a calendar year
// for yearly.
func PeriodElapsed(freq domain.Frequency, last, now time.Time, loc *time.Location) bool {
	if !now.After(last) {
		return false
	}
	last = last.In(loc)
	now = now.In(loc)

	switch freq {
	case domain.FreqDaily:
		return streak.DaysApart(last, now, loc) >= 1
	case domain.FreqWeekly:
		ly, lw := last.ISOWeek()
		ny, nw := now.ISOWeek()
		return ny != ly || nw != lw
	case domain.FreqMonthly:
		return (now.Year()*12 + int(now.Month())) > (last.Year()*12 + int(last.Month()))
	case domain.FreqYearly:
		return now.Year() > last.Year()
	default:
		return false
	}
}
