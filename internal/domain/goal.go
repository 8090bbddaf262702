// Package domain holds the pure record types of the progression engine.
// No behavior beyond derived read-only fields — engines live in internal/app.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ─── Goal Attributes ────────────────────────────────────────────────────────

// Frequency is how often a goal is meant to be fulfilled.
type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
	FreqYearly  Frequency = "yearly"
)

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	switch f {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
		return true
	default:
		return false
	}
}

// ParseFrequency parses user input into a Frequency.
func ParseFrequency(s string) (Frequency, bool) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	return f, f.IsValid()
}

// TrackingType is how progress toward a goal is measured.
type TrackingType string

const (
	// TrackBinary is done / not done (target 1).
	TrackBinary TrackingType = "binary"
	// TrackNumeric is progress toward a target number.
	TrackNumeric TrackingType = "numeric"
	// TrackHabit is a repeatable action rewarded on every occurrence.
	TrackHabit TrackingType = "habit"
)

// IsValid reports whether t is a known tracking type.
func (t TrackingType) IsValid() bool {
	switch t {
	case TrackBinary, TrackNumeric, TrackHabit:
		return true
	default:
		return false
	}
}

// ParseTrackingType parses user input into a TrackingType.
func ParseTrackingType(s string) (TrackingType, bool) {
	t := TrackingType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.IsValid()
}

// Difficulty scales rewards and penalties.
type Difficulty string

const (
	DiffEasy   Difficulty = "easy"
	DiffMedium Difficulty = "medium"
	DiffHard   Difficulty = "hard"
	DiffEpic   Difficulty = "epic"
)

// IsValid reports whether d is a known difficulty.
func (d Difficulty) IsValid() bool {
	switch d {
	case DiffEasy, DiffMedium, DiffHard, DiffEpic:
		return true
	default:
		return false
	}
}

// ParseDifficulty parses user input into a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	return d, d.IsValid()
}

// CompletionCoins is the coin reward for completing a goal of this difficulty.
func (d Difficulty) CompletionCoins() int64 {
	switch d {
	case DiffEasy:
		return 10
	case DiffMedium:
		return 25
	case DiffHard:
		return 50
	case DiffEpic:
		return 100
	default:
		return 10
	}
}

// CoinPenalty is the coin debit applied when a goal of this difficulty fails.
func (d Difficulty) CoinPenalty() int64 {
	switch d {
	case DiffEasy:
		return 5
	case DiffMedium:
		return 15
	case DiffHard:
		return 30
	case DiffEpic:
		return 50
	default:
		return 5
	}
}

// StatGain is the base character-stat gain for completing this difficulty.
func (d Difficulty) StatGain() int {
	switch d {
	case DiffEasy:
		return 1
	case DiffMedium:
		return 2
	case DiffHard:
		return 3
	case DiffEpic:
		return 5
	default:
		return 1
	}
}

// StatPenalty is the character-stat loss for failing this difficulty.
func (d Difficulty) StatPenalty() int {
	switch d {
	case DiffEasy:
		return 2
	case DiffMedium:
		return 5
	case DiffHard:
		return 10
	case DiffEpic:
		return 15
	default:
		return 2
	}
}

// ─── Goal ───────────────────────────────────────────────────────────────────

// Goal is a trackable unit of behavior.
// CurrentValue stays clamped to [0, TargetValue]; the completion history is
// append-only and entries are never mutated after insertion.
type Goal struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Frequency    Frequency          `json:"frequency"`
	Type         TrackingType       `json:"type"`
	Difficulty   Difficulty         `json:"difficulty"`
	TargetValue  float64            `json:"target_value"`
	CurrentValue float64            `json:"current_value"`
	Icon         string             `json:"icon"`
	Active       bool               `json:"active"`
	Repeating    bool               `json:"repeating"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Completions  []CompletionRecord `json:"completions,omitempty"`
}

// NewGoalID returns a fresh goal identifier.
func NewGoalID() string { return uuid.NewString() }

// NewCompletionID returns a fresh completion-record identifier.
func NewCompletionID() string { return uuid.NewString() }

// IsCompleted reports whether the goal has reached its target.
func (g Goal) IsCompleted() bool {
	return g.TargetValue > 0 && g.CurrentValue >= g.TargetValue
}

// ProgressPercent returns completion progress in [0,100].
func (g Goal) ProgressPercent() float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	pct := g.CurrentValue / g.TargetValue * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Clamp returns v forced into [0, TargetValue].
func (g Goal) Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > g.TargetValue {
		return g.TargetValue
	}
	return v
}

// CompletionRecord is immutable proof of one rewarded completion.
type CompletionRecord struct {
	ID          string    `json:"id"`
	GoalID      string    `json:"goal_id"`
	CompletedAt time.Time `json:"completed_at"`
	Value       float64   `json:"value"`
	CoinsEarned int64     `json:"coins_earned"`
}
