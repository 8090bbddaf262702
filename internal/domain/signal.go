package domain

import "time"

// SignalType categorizes one-shot UI feedback flags.
type SignalType string

const (
	SignalLevelUp     SignalType = "level_up"
	SignalAchievement SignalType = "achievement"
	SignalCoinsEarned SignalType = "coins_earned"
)

// Signal is a transient feedback event for the presentation layer.
// Each signal is consumable exactly once: reading it clears it.
type Signal struct {
	ID        int64      `json:"id"`
	Type      SignalType `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	Consumed  bool       `json:"consumed"`
}
