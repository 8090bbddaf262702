// Package signal manages one-shot UI feedback flags: "just leveled up",
// "just unlocked an achievement", "just earned coins". Each signal is a
// transient event the presentation layer consumes exactly once.
package signal

import (
	"fmt"
	"time"

	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Service stores and hands out pending signals.
type Service struct {
	db *sqlite.DB
}

// NewService creates a signal service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Raise stores a new pending signal and returns its id.
func (s *Service) Raise(typ domain.SignalType, title, body string, now time.Time) (int64, error) {
	id, err := s.db.InsertSignal(domain.Signal{
		Type:      typ,
		Title:     title,
		Body:      body,
		CreatedAt: now,
	})
	if err != nil {
		return 0, fmt.Errorf("insert signal: %w", err)
	}
	return id, nil
}

// Pending returns unconsumed signals, oldest first.
func (s *Service) Pending() ([]domain.Signal, error) {
	return s.db.ListPendingSignals()
}

// Consume returns pending signals and clears them in one read. A second
// call returns nothing until new signals are raised.
func (s *Service) Consume() ([]domain.Signal, error) {
	pending, err := s.db.ListPendingSignals()
	if err != nil {
		return nil, err
	}
	for _, sig := range pending {
		if err := s.db.ConsumeSignal(sig.ID); err != nil {
			return nil, err
		}
	}
	return pending, nil
}
