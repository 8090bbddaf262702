// Package shop manages the reward catalog and purchases. A purchase is
// an atomic check-then-debit through the ledger's single spend gate;
// redemption flips a one-way flag on the purchase record.
package shop

import (
	"fmt"
	"strings"
	"time"

	"github.com/ascend-app/ascend/internal/app/ledger"
	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/metrics"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Service manages rewards and purchases.
type Service struct {
	db     *sqlite.DB
	ledger *ledger.Service
}

// NewService creates a shop.
func NewService(db *sqlite.DB, led *ledger.Service) *Service {
	return &Service{db: db, ledger: led}
}

// defaultCatalog seeds a fresh installation with a few starter rewards.
var defaultCatalog = []domain.Reward{
	{Title: "Movie night", Description: "Watch a movie guilt-free", Cost: 50, Icon: "tv", Category: "leisure"},
	{Title: "Dessert", Description: "A treat of your choice", Cost: 30, Icon: "birthday.cake", Category: "food"},
	{Title: "Lazy morning", Description: "Sleep in next weekend", Cost: 100, Icon: "bed", Category: "rest"},
	{Title: "New book", Description: "Buy that book on your list", Cost: 150, Icon: "book", Category: "shopping"},
}

// Seed inserts the default catalog when the shop is empty.
func (s *Service) Seed() error {
	existing, err := s.db.ListRewards()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, r := range defaultCatalog {
		r.ID = domain.NewRewardID()
		if err := s.db.UpsertReward(r); err != nil {
			return fmt.Errorf("seed reward %q: %w", r.Title, err)
		}
	}
	return nil
}

// Add stores a custom reward.
func (s *Service) Add(r domain.Reward) (domain.Reward, error) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return r, fmt.Errorf("empty title: %w", domain.ErrInvalidReward)
	}
	if r.Cost <= 0 {
		return r, fmt.Errorf("cost must be positive, got %d: %w", r.Cost, domain.ErrInvalidReward)
	}

	if r.ID == "" {
		r.ID = domain.NewRewardID()
	}
	r.Custom = true
	if err := s.db.UpsertReward(r); err != nil {
		return r, fmt.Errorf("store reward: %w", err)
	}
	return r, nil
}

// Delete removes a reward and its purchase history.
func (s *Service) Delete(id string) error {
	return s.db.DeleteReward(id)
}

// List returns the catalog with purchase histories attached.
func (s *Service) List() ([]domain.Reward, error) {
	rewards, err := s.db.ListRewards()
	if err != nil {
		return nil, err
	}
	for i := range rewards {
		purchases, err := s.db.ListPurchases(rewards[i].ID)
		if err != nil {
			return nil, err
		}
		rewards[i].Purchases = purchases
	}
	return rewards, nil
}

// Purchase buys a reward. The spend happens only when the balance covers
// the cost; on domain.ErrInsufficientCoins the balance is unchanged and
// no purchase record is created.
func (s *Service) Purchase(rewardID string, now time.Time) (domain.PurchaseRecord, error) {
	reward, err := s.db.GetReward(rewardID)
	if err != nil {
		return domain.PurchaseRecord{}, err
	}

	if err := s.ledger.SpendCoins(reward.Cost); err != nil {
		return domain.PurchaseRecord{}, err
	}

	rec := domain.PurchaseRecord{
		ID:          domain.NewPurchaseID(),
		RewardID:    reward.ID,
		PurchasedAt: now,
		CostPaid:    reward.Cost,
	}
	if err := s.db.InsertPurchase(rec); err != nil {
		return rec, fmt.Errorf("store purchase: %w", err)
	}

	metrics.PurchasesMade.Inc()
	return rec, nil
}

// Redeem flips the one-way redemption flag on a purchase.
func (s *Service) Redeem(purchaseID string, now time.Time) error {
	p, err := s.db.GetPurchase(purchaseID)
	if err != nil {
		return err
	}
	if p.Redeemed {
		return domain.ErrAlreadyRedeemed
	}
	return s.db.MarkRedeemed(purchaseID, now)
}
