package domain

import (
	"time"

	"github.com/google/uuid"
)

// PenaltyReason classifies why a penalty was applied.
type PenaltyReason string

const (
	// PenaltyNotTouched — a daily goal saw no activity by day rollover.
	PenaltyNotTouched PenaltyReason = "not_touched"
	// PenaltyIncomplete — a goal ended its period below target.
	PenaltyIncomplete PenaltyReason = "incomplete"
	// PenaltyMarkedFailed — the user self-reported a failure.
	PenaltyMarkedFailed PenaltyReason = "marked_failed"
)

// PenaltyRecord is one applied penalty. The goal title is a denormalized
// snapshot so the briefing stays readable after the goal is deleted.
type PenaltyRecord struct {
	ID          string        `json:"id"`
	GoalID      string        `json:"goal_id"`
	GoalTitle   string        `json:"goal_title"`
	Date        time.Time     `json:"date"`
	CoinPenalty int64         `json:"coin_penalty"`
	StatPenalty int           `json:"stat_penalty"`
	Reason      PenaltyReason `json:"reason"`
}

// NewPenaltyID returns a fresh penalty identifier.
func NewPenaltyID() string { return uuid.NewString() }
