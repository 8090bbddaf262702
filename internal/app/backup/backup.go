// Package backup exports the full application state as a single JSON
// bundle and restores it wholesale. Import is all-or-nothing: the bundle
// is parsed and validated before any existing state is touched, so a
// corrupt file never leaves the database half-written.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// BundleVersion is the current export format version.
const BundleVersion = 1

// Bundle is the on-disk export format. Goals carry their completion
// history inline; rewards carry their purchase history.
type Bundle struct {
	Version      int                  `json:"version"`
	ExportedAt   time.Time            `json:"exported_at"`
	Profile      domain.UserProfile   `json:"profile"`
	Goals        []domain.Goal        `json:"goals"`
	Achievements []domain.Achievement `json:"achievements"`
	Rewards      []domain.Reward      `json:"rewards"`
}

// Service performs export and import against the store.
type Service struct {
	db *sqlite.DB
}

// NewService creates a backup service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Snapshot assembles the current state into a bundle.
func (s *Service) Snapshot(now time.Time) (*Bundle, error) {
	profile, err := s.db.LoadProfile()
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	goals, err := s.db.ListGoals()
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	for i := range goals {
		completions, err := s.db.ListCompletions(goals[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list completions: %w", err)
		}
		goals[i].Completions = completions
	}

	achievements, err := s.db.ListAchievements()
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	rewards, err := s.db.ListRewards()
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	for i := range rewards {
		purchases, err := s.db.ListPurchases(rewards[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list purchases: %w", err)
		}
		rewards[i].Purchases = purchases
	}

	return &Bundle{
		Version:      BundleVersion,
		ExportedAt:   now,
		Profile:      profile,
		Goals:        goals,
		Achievements: achievements,
		Rewards:      rewards,
	}, nil
}

// Export writes the current state as indented JSON.
func (s *Service) Export(w io.Writer, now time.Time) error {
	bundle, err := s.Snapshot(now)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bundle)
}

// ExportFile writes the bundle to path with owner-only permissions.
func (s *Service) ExportFile(path string, now time.Time) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()
	return s.Export(f, now)
}

// Parse decodes and validates a bundle without touching the database.
func Parse(r io.Reader) (*Bundle, error) {
	var bundle Bundle
	dec := json.NewDecoder(r)
	if err := dec.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptBackup, err)
	}
	if bundle.Version < 1 || bundle.Version > BundleVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", domain.ErrCorruptBackup, bundle.Version)
	}
	if bundle.Profile.Level < 1 {
		return nil, fmt.Errorf("%w: profile level %d", domain.ErrCorruptBackup, bundle.Profile.Level)
	}
	for _, g := range bundle.Goals {
		if g.ID == "" || g.Title == "" {
			return nil, fmt.Errorf("%w: goal missing id or title", domain.ErrCorruptBackup)
		}
	}
	for _, r := range bundle.Rewards {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: reward missing id", domain.ErrCorruptBackup)
		}
	}
	return &bundle, nil
}

// Import replaces the entire state with the bundle read from r.
// On a parse or validation error the existing state is untouched.
func (s *Service) Import(r io.Reader) error {
	bundle, err := Parse(r)
	if err != nil {
		return err
	}
	return s.Restore(bundle)
}

// ImportFile restores from a bundle file on disk.
func (s *Service) ImportFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()
	return s.Import(f)
}

// Restore wipes the database and writes the bundle's contents.
func (s *Service) Restore(bundle *Bundle) error {
	if err := s.db.ResetAll(); err != nil {
		return fmt.Errorf("reset state: %w", err)
	}

	if err := s.db.SaveProfile(bundle.Profile); err != nil {
		return fmt.Errorf("restore profile: %w", err)
	}
	for _, g := range bundle.Goals {
		completions := g.Completions
		g.Completions = nil
		if err := s.db.UpsertGoal(g); err != nil {
			return fmt.Errorf("restore goal %s: %w", g.ID, err)
		}
		for _, c := range completions {
			if err := s.db.InsertCompletion(c); err != nil {
				return fmt.Errorf("restore completion %s: %w", c.ID, err)
			}
		}
	}
	for _, a := range bundle.Achievements {
		if _, err := s.db.InsertAchievement(a); err != nil {
			return fmt.Errorf("restore achievement %s: %w", a.RuleID, err)
		}
	}
	for _, rw := range bundle.Rewards {
		purchases := rw.Purchases
		rw.Purchases = nil
		if err := s.db.UpsertReward(rw); err != nil {
			return fmt.Errorf("restore reward %s: %w", rw.ID, err)
		}
		for _, p := range purchases {
			if err := s.db.InsertPurchase(p); err != nil {
				return fmt.Errorf("restore purchase %s: %w", p.ID, err)
			}
		}
	}
	return nil
}
