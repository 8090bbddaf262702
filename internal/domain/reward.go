package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reward is a purchasable item in the shop. Cost must be positive.
// Purchases accumulate in an append-only history; a reward can be bought
// again after earlier purchases (the single-purchase model is just a
// history of length one).
type Reward struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Cost        int64            `json:"cost"`
	Icon        string           `json:"icon"`
	Category    string           `json:"category"`
	Custom      bool             `json:"custom"`
	Purchases   []PurchaseRecord `json:"purchases,omitempty"`
}

// NewRewardID returns a fresh reward identifier.
func NewRewardID() string { return uuid.NewString() }

// PurchaseRecord is one purchase of a reward. Redemption is a one-way flag.
type PurchaseRecord struct {
	ID          string    `json:"id"`
	RewardID    string    `json:"reward_id"`
	PurchasedAt time.Time `json:"purchased_at"`
	CostPaid    int64     `json:"cost_paid"`
	Redeemed    bool      `json:"redeemed"`
	RedeemedAt  time.Time `json:"redeemed_at,omitzero"`
}

// NewPurchaseID returns a fresh purchase identifier.
func NewPurchaseID() string { return uuid.NewString() }
