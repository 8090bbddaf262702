// Package ledger owns the coin and XP bookkeeping.
// Coins never go negative; XP is normalized below the level threshold
// after every credit, cascading level-ups as needed.
package ledger

import (
	"fmt"
	"strconv"

	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/metrics"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Service manages the currency and experience economy.
type Service struct {
	db *sqlite.DB
}

// NewService creates a reward ledger.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Balance returns the current coin balance.
func (s *Service) Balance() (int64, error) {
	return s.getInt("coins")
}

// AddCoins credits coins. Amount must be non-negative — debits go through
// SpendCoins or Deduct, never through here.
func (s *Service) AddCoins(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("add amount must be non-negative, got %d", amount)
	}
	bal, err := s.getInt("coins")
	if err != nil {
		return err
	}
	if err := s.setInt("coins", bal+amount); err != nil {
		return err
	}
	metrics.CoinsEarned.Add(float64(amount))
	metrics.CoinBalance.Set(float64(bal + amount))
	return nil
}

// SpendCoins debits coins only if the balance covers the amount.
// This is the single gate for all purchases: on insufficient balance it
// returns domain.ErrInsufficientCoins and leaves the balance unchanged.
func (s *Service) SpendCoins(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("spend amount must be non-negative, got %d", amount)
	}
	bal, err := s.getInt("coins")
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf("have %d, need %d: %w", bal, amount, domain.ErrInsufficientCoins)
	}
	if err := s.setInt("coins", bal-amount); err != nil {
		return err
	}
	metrics.CoinsSpent.Add(float64(amount))
	metrics.CoinBalance.Set(float64(bal - amount))
	return nil
}

// Deduct debits coins for the penalty path, flooring the balance at zero.
// Returns the amount actually deducted.
func (s *Service) Deduct(amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("deduct amount must be non-negative, got %d", amount)
	}
	bal, err := s.getInt("coins")
	if err != nil {
		return 0, err
	}
	deducted := amount
	if deducted > bal {
		deducted = bal
	}
	if err := s.setInt("coins", bal-deducted); err != nil {
		return 0, err
	}
	metrics.CoinBalance.Set(float64(bal - deducted))
	return deducted, nil
}

// XPResult describes the outcome of an XP credit.
type XPResult struct {
	XPAdded     int64
	LevelBefore int
	LevelAfter  int
	BonusCoins  int64 // level-up bonuses credited, one per level gained
}

// LeveledUp reports whether any level was gained.
func (r XPResult) LeveledUp() bool { return r.LevelAfter > r.LevelBefore }

// AddXP credits experience and normalizes it below the level threshold:
// while xp >= level*100, subtract the threshold and advance one level.
// Each level gained awards a coin bonus of newLevel*50 through AddCoins,
// so a multi-level jump compounds a bonus per level.
func (s *Service) AddXP(amount int64) (XPResult, error) {
	var res XPResult
	if amount < 0 {
		return res, fmt.Errorf("xp amount must be non-negative, got %d", amount)
	}

	level, err := s.getLevel()
	if err != nil {
		return res, err
	}
	xp, err := s.getInt("xp")
	if err != nil {
		return res, err
	}

	res.XPAdded = amount
	res.LevelBefore = level
	xp += amount

	for xp >= domain.XPThreshold(level) {
		xp -= domain.XPThreshold(level)
		level++
		bonus := domain.LevelUpBonus(level)
		if err := s.AddCoins(bonus); err != nil {
			return res, err
		}
		res.BonusCoins += bonus
	}

	if err := s.setInt("xp", xp); err != nil {
		return res, err
	}
	if err := s.db.SetProfileValue("level", strconv.Itoa(level)); err != nil {
		return res, err
	}

	res.LevelAfter = level
	metrics.XPEarned.Add(float64(amount))
	metrics.Level.Set(float64(level))
	return res, nil
}

// Level returns the current level (minimum 1).
func (s *Service) Level() (int, error) {
	return s.getLevel()
}

// XP returns the current normalized XP.
func (s *Service) XP() (int64, error) {
	return s.getInt("xp")
}

func (s *Service) getLevel() (int, error) {
	v, err := s.db.GetProfileValue("level")
	if err != nil {
		return 0, err
	}
	level := 1
	if v != "" {
		level, _ = strconv.Atoi(v)
	}
	if level < 1 {
		level = 1
	}
	return level, nil
}

func (s *Service) getInt(key string) (int64, error) {
	v, err := s.db.GetProfileValue(key)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	if v == "" {
		return 0, nil
	}
	n, _ := strconv.ParseInt(v, 10, 64)
	return n, nil
}

func (s *Service) setInt(key string, v int64) error {
	if err := s.db.SetProfileValue(key, strconv.FormatInt(v, 10)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
