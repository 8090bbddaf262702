package sqlite_test

import (
	"errors"
	"testing"
	"time"

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

func sampleGoal() domain.Goal {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return domain.Goal{
		ID:          domain.NewGoalID(),
		Title:       "Read 20 pages",
		Frequency:   domain.FreqDaily,
		Type:        domain.TrackNumeric,
		Difficulty:  domain.DiffMedium,
		TargetValue: 20,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestGoals_RoundTrip(t *testing.T) {
	db := testDB(t)
	g := sampleGoal()

	if err := db.UpsertGoal(g); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := db.GetGoal(g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != g.Title || got.Frequency != g.Frequency || got.TargetValue != g.TargetValue {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(g.CreatedAt) {
		t.Errorf("created_at lost precision: %v != %v", got.CreatedAt, g.CreatedAt)
	}

	g.CurrentValue = 12
	if err := db.UpsertGoal(g); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, _ = db.GetGoal(g.ID)
	if got.CurrentValue != 12 {
		t.Errorf("upsert should update in place, got %v", got.CurrentValue)
	}

	goals, err := db.ListGoals()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(goals) != 1 {
		t.Errorf("expected 1 goal, got %d", len(goals))
	}
}

func TestGoals_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.GetGoal("no-such-id")
	if !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestGoals_DeleteCascadesCompletions(t *testing.T) {
	db := testDB(t)
	g := sampleGoal()
	_ = db.UpsertGoal(g)

	rec := domain.CompletionRecord{
		ID:          domain.NewCompletionID(),
		GoalID:      g.ID,
		CompletedAt: g.CreatedAt,
		Value:       20,
		CoinsEarned: 25,
	}
	if err := db.InsertCompletion(rec); err != nil {
		t.Fatalf("insert completion: %v", err)
	}

	if err := db.DeleteGoal(g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	completions, err := db.ListCompletions(g.ID)
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(completions) != 0 {
		t.Errorf("expected completions removed with the goal, got %d", len(completions))
	}
}

func TestProfile_RoundTrip(t *testing.T) {
	db := testDB(t)

	p, err := db.LoadProfile()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if p.Level != 1 {
		t.Errorf("fresh profile starts at level 1, got %d", p.Level)
	}

	p.Coins = 420
	p.Level = 3
	p.XP = 55
	p.Streak = 7
	p.LongestStreak = 12
	p.TotalCompleted = 9
	p.Stats.Physical = 40
	p.LastActivity = time.Date(2026, 3, 1, 22, 15, 0, 0, time.UTC)
	if err := db.SaveProfile(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.LoadProfile()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Coins != 420 || got.Level != 3 || got.XP != 55 {
		t.Errorf("economy fields mismatch: %+v", got)
	}
	if got.Streak != 7 || got.LongestStreak != 12 || got.TotalCompleted != 9 {
		t.Errorf("streak fields mismatch: %+v", got)
	}
	if got.Stats.Physical != 40 {
		t.Errorf("stats mismatch: %+v", got.Stats)
	}
	if !got.LastActivity.Equal(p.LastActivity) {
		t.Errorf("last activity lost precision: %v", got.LastActivity)
	}
}

func TestAchievements_InsertOrIgnore(t *testing.T) {
	db := testDB(t)
	a := domain.Achievement{
		RuleID: "first_win", Title: "First Victory",
		Rarity: domain.RarityCommon, CoinsEarned: 25,
		EarnedAt: time.Now(),
	}

	isNew, err := db.InsertAchievement(a)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !isNew {
		t.Error("first insert must report new")
	}

	isNew, err = db.InsertAchievement(a)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if isNew {
		t.Error("duplicate rule id must be ignored")
	}

	n, _ := db.AchievementCount()
	if n != 1 {
		t.Errorf("expected 1 stored achievement, got %d", n)
	}
}

func TestRewards_PurchaseHistory(t *testing.T) {
	db := testDB(t)
	r := domain.Reward{ID: domain.NewRewardID(), Title: "Movie night", Cost: 50}
	if err := db.UpsertReward(r); err != nil {
		t.Fatalf("upsert reward: %v", err)
	}

	p := domain.PurchaseRecord{
		ID: domain.NewPurchaseID(), RewardID: r.ID,
		PurchasedAt: time.Now(), CostPaid: 50,
	}
	if err := db.InsertPurchase(p); err != nil {
		t.Fatalf("insert purchase: %v", err)
	}

	got, err := db.GetPurchase(p.ID)
	if err != nil {
		t.Fatalf("get purchase: %v", err)
	}
	if got.Redeemed {
		t.Error("fresh purchase must not be redeemed")
	}

	at := time.Now()
	if err := db.MarkRedeemed(p.ID, at); err != nil {
		t.Fatalf("redeem: %v", err)
	}
	got, _ = db.GetPurchase(p.ID)
	if !got.Redeemed || got.RedeemedAt.IsZero() {
		t.Errorf("redeem flag not persisted: %+v", got)
	}

	_, err = db.GetPurchase("missing")
	if !errors.Is(err, domain.ErrPurchaseNotFound) {
		t.Errorf("expected ErrPurchaseNotFound, got %v", err)
	}
}

func TestResetAll(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertGoal(sampleGoal())
	_ = db.SetProfileValue("coins", "500")

	if err := db.ResetAll(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	goals, _ := db.ListGoals()
	if len(goals) != 0 {
		t.Errorf("goals survived reset: %d", len(goals))
	}
	v, _ := db.GetProfileValue("coins")
	if v != "" {
		t.Errorf("profile survived reset: %q", v)
	}
}
