package achievement_test

import (
	"testing"
	"time"

	"github.com/ascend-app/ascend/internal/app/achievement"
	"github.com/ascend-app/ascend/internal/app/ledger"
	"github.com/ascend-app/ascend/internal/app/signal"
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

func testService(t *testing.T) (*achievement.Service, *sqlite.DB, *ledger.Service) {
	t.Helper()
	db := testDB(t)
	led := ledger.NewService(db)
	return achievement.NewService(db, led, signal.NewService(db)), db, led
}

func TestEvaluate_FirstCompletion(t *testing.T) {
	svc, db, led := testService(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_ = db.SetProfileValue("total_completed", "1")
	unlocked, err := svc.Evaluate(now)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].RuleID != "first_win" {
		t.Fatalf("expected first_win, got %v", unlocked)
	}

	bal, _ := led.Balance()
	if bal != 25 {
		t.Errorf("common rarity pays 25 coins, got %d", bal)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	svc, db, led := testService(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_ = db.SetProfileValue("total_completed", "1")
	if _, err := svc.Evaluate(now); err != nil {
		t.Fatalf("first evaluate: %v", err)
	}

	for i := 0; i < 3; i++ {
		unlocked, err := svc.Evaluate(now.Add(time.Hour))
		if err != nil {
			t.Fatalf("re-evaluate: %v", err)
		}
		if len(unlocked) != 0 {
			t.Fatalf("repeated evaluation must unlock nothing, got %v", unlocked)
		}
	}

	bal, _ := led.Balance()
	if bal != 25 {
		t.Errorf("coins must be credited exactly once, got %d", bal)
	}
}

func TestEvaluate_MultipleAtOnce(t *testing.T) {
	svc, db, _ := testService(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 10 completions satisfies first_win, goals_5, and goals_10 together.
	_ = db.SetProfileValue("total_completed", "10")
	unlocked, err := svc.Evaluate(now)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(unlocked) != 3 {
		t.Fatalf("expected 3 unlocks, got %d: %v", len(unlocked), unlocked)
	}
}

func TestEvaluate_RaisesSignals(t *testing.T) {
	db := testDB(t)
	led := ledger.NewService(db)
	sig := signal.NewService(db)
	svc := achievement.NewService(db, led, sig)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_ = db.SetProfileValue("streak_current", "7")
	if _, err := svc.Evaluate(now); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	pending, err := sig.Pending()
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Type != domain.SignalAchievement {
		t.Errorf("expected one achievement signal, got %v", pending)
	}
}

func TestCounts(t *testing.T) {
	svc, db, _ := testService(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	unlocked, total, err := svc.Counts()
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if unlocked != 0 || total != len(achievement.DefaultRules()) {
		t.Errorf("fresh install: expected 0/%d, got %d/%d",
			len(achievement.DefaultRules()), unlocked, total)
	}

	_ = db.SetProfileValue("total_completed", "1")
	_, _ = svc.Evaluate(now)

	unlocked, _, _ = svc.Counts()
	if unlocked != 1 {
		t.Errorf("expected 1 unlocked, got %d", unlocked)
	}
}
