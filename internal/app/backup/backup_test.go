package backup_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ascend-app/ascend/internal/app/backup"
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

var noon = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// seedState fills a database with one of everything.
func seedState(t *testing.T, db *sqlite.DB) {
	t.Helper()

	p, _ := db.LoadProfile()
	p.Coins = 420
	p.Level = 3
	p.XP = 55
	p.Streak = 7
	p.Stats.Physical = 40
	if err := db.SaveProfile(p); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	g := domain.Goal{
		ID: domain.NewGoalID(), Title: "Read 20 pages",
		Frequency: domain.FreqDaily, Type: domain.TrackNumeric,
		Difficulty: domain.DiffMedium, TargetValue: 20, CurrentValue: 20,
		Active: true, CreatedAt: noon, UpdatedAt: noon,
	}
	if err := db.UpsertGoal(g); err != nil {
		t.Fatalf("store goal: %v", err)
	}
	_ = db.InsertCompletion(domain.CompletionRecord{
		ID: domain.NewCompletionID(), GoalID: g.ID,
		CompletedAt: noon, Value: 20, CoinsEarned: 25,
	})

	_, _ = db.InsertAchievement(domain.Achievement{
		RuleID: "first_win", Title: "First Victory",
		Rarity: domain.RarityCommon, CoinsEarned: 25, EarnedAt: noon,
	})

	r := domain.Reward{ID: domain.NewRewardID(), Title: "Movie night", Cost: 50}
	_ = db.UpsertReward(r)
	_ = db.InsertPurchase(domain.PurchaseRecord{
		ID: domain.NewPurchaseID(), RewardID: r.ID,
		PurchasedAt: noon, CostPaid: 50,
	})
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := testDB(t)
	seedState(t, src)

	var buf bytes.Buffer
	if err := backup.NewService(src).Export(&buf, noon); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := testDB(t)
	if err := backup.NewService(dst).Import(&buf); err != nil {
		t.Fatalf("import: %v", err)
	}

	p, _ := dst.LoadProfile()
	if p.Coins != 420 || p.Level != 3 || p.Streak != 7 {
		t.Errorf("profile mismatch after restore: %+v", p)
	}
	if p.Stats.Physical != 40 {
		t.Errorf("stats mismatch: %+v", p.Stats)
	}

	goals, _ := dst.ListGoals()
	if len(goals) != 1 || goals[0].Title != "Read 20 pages" {
		t.Fatalf("goals mismatch: %v", goals)
	}
	completions, _ := dst.ListCompletions(goals[0].ID)
	if len(completions) != 1 {
		t.Errorf("completion history mismatch: %v", completions)
	}

	n, _ := dst.AchievementCount()
	if n != 1 {
		t.Errorf("achievements mismatch: %d", n)
	}

	rewards, _ := dst.ListRewards()
	if len(rewards) != 1 {
		t.Fatalf("rewards mismatch: %v", rewards)
	}
	purchases, _ := dst.ListPurchases(rewards[0].ID)
	if len(purchases) != 1 {
		t.Errorf("purchase history mismatch: %v", purchases)
	}
}

func TestImport_ReplacesExistingState(t *testing.T) {
	src := testDB(t)
	seedState(t, src)
	var buf bytes.Buffer
	_ = backup.NewService(src).Export(&buf, noon)

	dst := testDB(t)
	stale := domain.Goal{
		ID: domain.NewGoalID(), Title: "Stale goal",
		Frequency: domain.FreqDaily, Type: domain.TrackNumeric,
		Difficulty: domain.DiffEasy, TargetValue: 1,
		Active: true, CreatedAt: noon, UpdatedAt: noon,
	}
	_ = dst.UpsertGoal(stale)

	if err := backup.NewService(dst).Import(&buf); err != nil {
		t.Fatalf("import: %v", err)
	}

	goals, _ := dst.ListGoals()
	if len(goals) != 1 || goals[0].Title == "Stale goal" {
		t.Errorf("import is wholesale replacement, got %v", goals)
	}
}

func TestImport_CorruptLeavesStateUntouched(t *testing.T) {
	db := testDB(t)
	seedState(t, db)
	svc := backup.NewService(db)

	cases := []string{
		`{not json`,
		`{"version": 99, "profile": {"level": 1}}`,
		`{"version": 1, "profile": {"level": 0}}`,
		`{"version": 1, "profile": {"level": 1}, "goals": [{"id": "", "title": ""}]}`,
	}
	for _, c := range cases {
		err := svc.Import(strings.NewReader(c))
		if !errors.Is(err, domain.ErrCorruptBackup) {
			t.Errorf("input %q: expected ErrCorruptBackup, got %v", c, err)
		}
	}

	// The original state survived every failed import.
	goals, _ := db.ListGoals()
	if len(goals) != 1 {
		t.Errorf("state must be untouched after corrupt imports, got %v", goals)
	}
	p, _ := db.LoadProfile()
	if p.Coins != 420 {
		t.Errorf("profile must be untouched, got %+v", p)
	}
}

func TestParse_Version(t *testing.T) {
	b, err := backup.Parse(strings.NewReader(`{"version": 1, "profile": {"level": 2}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.Version != 1 || b.Profile.Level != 2 {
		t.Errorf("parse mismatch: %+v", b)
	}
}
