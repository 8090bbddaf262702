// Package metrics provides Prometheus metrics for Ascend.
// Counters and gauges for completions, the coin economy, penalties,
// purchases, and progression. There is no exposition server — the CLI
// dumps the default gatherer on request.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Goals ──────────────────────────────────────────────────────────────────

// GoalsCompleted tracks rewarded completion edges by difficulty.
var GoalsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "goals_completed_total",
	Help:      "Total rewarded goal completions.",
}, []string{"difficulty"})

// HabitTicks tracks habit increments.
var HabitTicks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "habit_ticks_total",
	Help:      "Total habit increment events.",
})

// ─── Economy ────────────────────────────────────────────────────────────────

// CoinsEarned tracks total coins credited.
var CoinsEarned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "coins_earned_total",
	Help:      "Total coins credited.",
})

// CoinsSpent tracks total coins spent in the shop.
var CoinsSpent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "coins_spent_total",
	Help:      "Total coins spent on rewards.",
})

// CoinBalance tracks the current coin balance.
var CoinBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ascend",
	Name:      "coins_balance_current",
	Help:      "Current coin balance.",
})

// XPEarned tracks total experience credited.
var XPEarned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "xp_earned_total",
	Help:      "Total experience points credited.",
})

// Level tracks the current character level.
var Level = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ascend",
	Name:      "level_current",
	Help:      "Current character level.",
})

// StreakDays tracks the current daily streak.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ascend",
	Name:      "streak_days_current",
	Help:      "Current consecutive-day streak.",
})

// ─── Penalties / Shop / Achievements ────────────────────────────────────────

// PenaltiesApplied tracks applied penalties by reason.
var PenaltiesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "penalties_applied_total",
	Help:      "Total penalties applied.",
}, []string{"reason"})

// PurchasesMade tracks reward purchases.
var PurchasesMade = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "purchases_total",
	Help:      "Total reward purchases.",
})

// AchievementsUnlocked tracks unlocked achievements by rarity.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
}, []string{"rarity"})

// ─── Local Dump ─────────────────────────────────────────────────────────────

// WriteSnapshot dumps all registered ascend_* metrics as "name value" lines.
// Vec metrics include their label pairs in the name.
func WriteSnapshot(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})

	for _, fam := range families {
		name := fam.GetName()
		if !strings.HasPrefix(name, "ascend_") {
			continue
		}
		for _, m := range fam.GetMetric() {
			var label strings.Builder
			for _, lp := range m.GetLabel() {
				fmt.Fprintf(&label, "{%s=%s}", lp.GetName(), lp.GetValue())
			}
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			}
			if _, err := fmt.Fprintf(w, "%s%s %g\n", name, label.String(), value); err != nil {
				return err
			}
		}
	}
	return nil
}
