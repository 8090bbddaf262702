package domain_test

import (
	"testing"

	"github.com/ascend-app/ascend/internal/domain"
)

func TestGoal_IsCompleted(t *testing.T) {
	g := domain.Goal{TargetValue: 20, CurrentValue: 19}
	if g.IsCompleted() {
		t.Error("19/20 should not be completed")
	}

	g.CurrentValue = 20
	if !g.IsCompleted() {
		t.Error("20/20 should be completed")
	}

	g.CurrentValue = 25
	if !g.IsCompleted() {
		t.Error("over target should still be completed")
	}

	g = domain.Goal{TargetValue: 0, CurrentValue: 0}
	if g.IsCompleted() {
		t.Error("zero target can never be completed")
	}
}

func TestGoal_Clamp(t *testing.T) {
	g := domain.Goal{TargetValue: 10}

	if v := g.Clamp(-3); v != 0 {
		t.Errorf("expected clamp to 0, got %v", v)
	}
	if v := g.Clamp(15); v != 10 {
		t.Errorf("expected clamp to target, got %v", v)
	}
	if v := g.Clamp(7); v != 7 {
		t.Errorf("in-range value should pass through, got %v", v)
	}
}

func TestGoal_ProgressPercent(t *testing.T) {
	g := domain.Goal{TargetValue: 20, CurrentValue: 5}
	if pct := g.ProgressPercent(); pct != 25 {
		t.Errorf("expected 25%%, got %v", pct)
	}

	g.CurrentValue = 30
	if pct := g.ProgressPercent(); pct != 100 {
		t.Errorf("expected cap at 100%%, got %v", pct)
	}

	g = domain.Goal{TargetValue: 0}
	if pct := g.ProgressPercent(); pct != 0 {
		t.Errorf("zero target should report 0%%, got %v", pct)
	}
}

func TestDifficulty_Scales(t *testing.T) {
	cases := []struct {
		diff    domain.Difficulty
		coins   int64
		penalty int64
		gain    int
		loss    int
	}{
		{domain.DiffEasy, 10, 5, 1, 2},
		{domain.DiffMedium, 25, 15, 2, 5},
		{domain.DiffHard, 50, 30, 3, 10},
		{domain.DiffEpic, 100, 50, 5, 15},
	}
	for _, c := range cases {
		if got := c.diff.CompletionCoins(); got != c.coins {
			t.Errorf("%s coins: expected %d, got %d", c.diff, c.coins, got)
		}
		if got := c.diff.CoinPenalty(); got != c.penalty {
			t.Errorf("%s coin penalty: expected %d, got %d", c.diff, c.penalty, got)
		}
		if got := c.diff.StatGain(); got != c.gain {
			t.Errorf("%s stat gain: expected %d, got %d", c.diff, c.gain, got)
		}
		if got := c.diff.StatPenalty(); got != c.loss {
			t.Errorf("%s stat penalty: expected %d, got %d", c.diff, c.loss, got)
		}
	}
}

func TestEnums_Validation(t *testing.T) {
	if !domain.FreqDaily.IsValid() || !domain.FreqYearly.IsValid() {
		t.Error("known frequencies must validate")
	}
	if domain.Frequency("hourly").IsValid() {
		t.Error("unknown frequency must not validate")
	}
	if domain.TrackingType("gauge").IsValid() {
		t.Error("unknown tracking type must not validate")
	}
	if domain.Difficulty("nightmare").IsValid() {
		t.Error("unknown difficulty must not validate")
	}
}
