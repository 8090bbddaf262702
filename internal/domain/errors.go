package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// ErrGoalNotFound — operation referenced a goal id absent from the store.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrRewardNotFound — operation referenced an unknown reward id.
	ErrRewardNotFound = errors.New("reward not found")
	// ErrPurchaseNotFound — redemption referenced an unknown purchase id.
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrInsufficientCoins — spend attempted with balance below cost.
	// The balance is left unchanged.
	ErrInsufficientCoins = errors.New("insufficient coins")

	// ErrInvalidGoal — non-positive target, empty title, or unknown
	// frequency/type/difficulty. Rejected before any state changes.
	ErrInvalidGoal = errors.New("invalid goal")
	// ErrInvalidReward — empty title or non-positive cost.
	ErrInvalidReward = errors.New("invalid reward")

	// ErrAlreadyRedeemed — redemption is a one-way flag flip.
	ErrAlreadyRedeemed = errors.New("purchase already redeemed")

	// ErrCorruptBackup — import payload failed to parse; existing state
	// is left untouched.
	ErrCorruptBackup = errors.New("corrupt backup bundle")
)
