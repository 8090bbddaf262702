package schedule_test

import (
	"testing"
	"time"

	"github.com/ascend-app/ascend/internal/app/achievement"
	"github.com/ascend-app/ascend/internal/app/ledger"
	"github.com/ascend-app/ascend/internal/app/penalty"
	"github.com/ascend-app/ascend/internal/app/schedule"
	"github.com/ascend-app/ascend/internal/app/signal"
	"github.com/ascend-app/ascend/internal/app/stats"
	"github.com/ascend-app/ascend/internal/app/streak"
	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type fixture struct {
	db       *sqlite.DB
	ledger   *ledger.Service
	schedule *schedule.Service
}

func testFixture(t *testing.T) *fixture {
	t.Helper()
	db := testDB(t)
	led := ledger.NewService(db)
	st := stats.NewService(db)
	ach := achievement.NewService(db, led, signal.NewService(db))
	pen := penalty.NewService(db, led, st, ach, time.UTC)
	str := streak.NewService(db, led, time.UTC)
	return &fixture{
		db:       db,
		ledger:   led,
		schedule: schedule.NewService(db, pen, str, time.UTC),
	}
}

func storedGoal(t *testing.T, db *sqlite.DB, g domain.Goal) domain.Goal {
	t.Helper()
	if g.ID == "" {
		g.ID = domain.NewGoalID()
	}
	if err := db.UpsertGoal(g); err != nil {
		t.Fatalf("store goal: %v", err)
	}
	return g
}

func TestTick_ResetsElapsedDaily(t *testing.T) {
	f := testFixture(t)
	yesterday := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	g := storedGoal(t, f.db, domain.Goal{
		Title: "Drink water", Frequency: domain.FreqDaily,
		Type: domain.TrackHabit, Difficulty: domain.DiffEasy,
		TargetValue: 8, CurrentValue: 8,
		Active: true, Repeating: true,
		CreatedAt: yesterday, UpdatedAt: yesterday,
	})

	now := yesterday.AddDate(0, 0, 1)
	reset, err := f.schedule.Tick(now)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(reset) != 1 {
		t.Fatalf("expected 1 reset, got %d", len(reset))
	}

	got, _ := f.db.GetGoal(g.ID)
	if got.CurrentValue != 0 {
		t.Errorf("progress back to zero, got %v", got.CurrentValue)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Errorf("reset stamps updated_at, got %v", got.UpdatedAt)
	}

	bal, _ := f.ledger.Balance()
	if bal != 0 {
		t.Errorf("resets never pay or charge coins, got %d", bal)
	}
}

func TestTick_WeeklyWaitsForNewISOWeek(t *testing.T) {
	f := testFixture(t)
	// Monday 2026-03-02.
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	g := storedGoal(t, f.db, domain.Goal{
		Title: "Weekly review", Frequency: domain.FreqWeekly,
		Type: domain.TrackBinary, Difficulty: domain.DiffMedium,
		TargetValue: 1, CurrentValue: 1,
		Active: true, Repeating: true,
		CreatedAt: monday, UpdatedAt: monday,
	})

	// Thursday, same ISO week: nothing happens.
	reset, err := f.schedule.Tick(monday.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(reset) != 0 {
		t.Errorf("same week must not reset, got %d", len(reset))
	}

	// Next Monday: the week rolled over.
	reset, _ = f.schedule.Tick(monday.AddDate(0, 0, 7))
	if len(reset) != 1 {
		t.Errorf("new ISO week resets, got %d", len(reset))
	}

	got, _ := f.db.GetGoal(g.ID)
	if got.CurrentValue != 0 {
		t.Errorf("expected reset, got %v", got.CurrentValue)
	}
}

func TestTick_SkipsNonRepeatingAndIncomplete(t *testing.T) {
	f := testFixture(t)
	yesterday := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	storedGoal(t, f.db, domain.Goal{
		Title: "One-shot", Frequency: domain.FreqDaily,
		Type: domain.TrackNumeric, Difficulty: domain.DiffEasy,
		TargetValue: 1, CurrentValue: 1,
		Active: true, Repeating: false,
		CreatedAt: yesterday, UpdatedAt: yesterday,
	})
	storedGoal(t, f.db, domain.Goal{
		Title: "Unfinished", Frequency: domain.FreqDaily,
		Type: domain.TrackNumeric, Difficulty: domain.DiffEasy,
		TargetValue: 10, CurrentValue: 4,
		Active: true, Repeating: true,
		CreatedAt: yesterday, UpdatedAt: yesterday,
	})

	reset, err := f.schedule.Tick(yesterday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(reset) != 0 {
		t.Errorf("only repeating completed goals reset, got %d", len(reset))
	}
}

func TestRolloverSweep_PenalizesUntouchedDaily(t *testing.T) {
	f := testFixture(t)
	_ = f.ledger.AddCoins(100)
	yesterday := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	g := storedGoal(t, f.db, domain.Goal{
		Title: "Morning run", Frequency: domain.FreqDaily,
		Type: domain.TrackNumeric, Difficulty: domain.DiffMedium,
		TargetValue: 5, CurrentValue: 2,
		Active: true,
		CreatedAt: yesterday, UpdatedAt: yesterday,
	})

	now := yesterday.AddDate(0, 0, 1)
	penalized, err := f.schedule.RolloverSweep(now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(penalized) != 1 || penalized[0].GoalID != g.ID {
		t.Fatalf("expected the stale goal penalized, got %v", penalized)
	}
	if penalized[0].Reason != domain.PenaltyNotTouched {
		t.Errorf("expected not-touched reason, got %s", penalized[0].Reason)
	}

	bal, _ := f.ledger.Balance()
	if bal != 85 {
		t.Errorf("medium penalty debits 15, got %d", bal)
	}
}

func TestRolloverSweep_Idempotent(t *testing.T) {
	f := testFixture(t)
	_ = f.ledger.AddCoins(100)
	yesterday := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	storedGoal(t, f.db, domain.Goal{
		Title: "Morning run", Frequency: domain.FreqDaily,
		Type: domain.TrackNumeric, Difficulty: domain.DiffMedium,
		TargetValue: 5, CurrentValue: 2,
		Active: true,
		CreatedAt: yesterday, UpdatedAt: yesterday,
	})

	now := yesterday.AddDate(0, 0, 1)
	first, _ := f.schedule.RolloverSweep(now)
	second, err := f.schedule.RolloverSweep(now.Add(2 * time.Hour))
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if len(first) != 1 || len(second) != 0 {
		t.Errorf("one penalty per goal per day: first=%d second=%d", len(first), len(second))
	}

	bal, _ := f.ledger.Balance()
	if bal != 85 {
		t.Errorf("repeated sweeps must not double-charge, got %d", bal)
	}
}

func TestRolloverSweep_SkipsTouchedAndNonDaily(t *testing.T) {
	f := testFixture(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	storedGoal(t, f.db, domain.Goal{
		Title: "Touched today", Frequency: domain.FreqDaily,
		Type: domain.TrackNumeric, Difficulty: domain.DiffEasy,
		TargetValue: 5, CurrentValue: 1,
		Active: true,
		CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
	})
	storedGoal(t, f.db, domain.Goal{
		Title: "Monthly goal", Frequency: domain.FreqMonthly,
		Type: domain.TrackNumeric, Difficulty: domain.DiffEasy,
		TargetValue: 5, CurrentValue: 0,
		Active: true,
		CreatedAt: now.AddDate(0, 0, -10), UpdatedAt: now.AddDate(0, 0, -10),
	})

	penalized, err := f.schedule.RolloverSweep(now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(penalized) != 0 {
		t.Errorf("nothing qualifies, got %v", penalized)
	}
}

func TestForegroundCheck_BreaksStaleStreak(t *testing.T) {
	f := testFixture(t)
	str := streak.NewService(f.db, f.ledger, time.UTC)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, _ = str.Update(base)
	_, _ = str.Update(base.AddDate(0, 0, 1))

	if err := f.schedule.ForegroundCheck(base.AddDate(0, 0, 5)); err != nil {
		t.Fatalf("foreground check: %v", err)
	}

	st, _ := str.Current()
	if st.Current != 0 {
		t.Errorf("a multi-day absence resets the streak, got %d", st.Current)
	}
	if st.Longest != 2 {
		t.Errorf("longest preserved, got %d", st.Longest)
	}
}

func TestPeriodElapsed(t *testing.T) {
	loc := time.UTC
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, loc) // Sunday

	cases := []struct {
		freq domain.Frequency
		last time.Time
		now  time.Time
		want bool
	}{
		{domain.FreqDaily, base, base.Add(6 * time.Hour), false},
		{domain.FreqDaily, base, base.AddDate(0, 0, 1), true},
		{domain.FreqWeekly, base, base.AddDate(0, 0, 1), true},  // Sunday → Monday is a new ISO week
		{domain.FreqWeekly, base.AddDate(0, 0, 1), base.AddDate(0, 0, 3), false},
		{domain.FreqMonthly, base, base.AddDate(0, 0, 20), false},
		{domain.FreqMonthly, base, base.AddDate(0, 1, 0), true},
		{domain.FreqYearly, base, base.AddDate(0, 9, 0), false},
		{domain.FreqYearly, base, base.AddDate(1, 0, 0), true},
		{domain.FreqDaily, base, base, false}, // no time passed
	}
	for _, c := range cases {
		if got := schedule.PeriodElapsed(c.freq, c.last, c.now, loc); got != c.want {
			t.Errorf("%s from %v to %v: expected %v, got %v",
				c.freq, c.last, c.now, c.want, got)
		}
	}
}
