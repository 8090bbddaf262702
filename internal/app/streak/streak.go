// Package streak maintains the daily activity streak.
// A day counts once; consecutive calendar days extend the streak, a gap of
// more than one day breaks it. Day boundaries use one configured location,
// and day math renormalizes through time.Date so DST transitions cannot
// shift a boundary.
package streak

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ascend-app/ascend/internal/app/ledger"
	"github.com/ascend-app/ascend/internal/infra/metrics"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Service manages the streak counters in the profile store.
type Service struct {
	db     *sqlite.DB
	ledger *ledger.Service
	loc    *time.Location
}

// NewService creates a streak tracker. All calendar-day arithmetic happens
// in loc.
func NewService(db *sqlite.DB, led *ledger.Service, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{db: db, ledger: led, loc: loc}
}

// State is the current streak snapshot.
type State struct {
	Current      int
	Longest      int
	LastActivity time.Time
}

// Result describes one Update call.
type Result struct {
	Current    int
	Longest    int
	Extended   bool  // streak grew by one
	Broken     bool  // gap > 1 day reset the streak
	BonusCoins int64 // milestone bonus credited this call, if any
}

// Current loads the streak state.
func (s *Service) Current() (State, error) {
	var st State

	cur, err := s.db.GetProfileValue("streak_current")
	if err != nil {
		return st, fmt.Errorf("get streak_current: %w", err)
	}
	if cur != "" {
		st.Current, _ = strconv.Atoi(cur)
	}

	longest, err := s.db.GetProfileValue("streak_longest")
	if err != nil {
		return st, fmt.Errorf("get streak_longest: %w", err)
	}
	if longest != "" {
		st.Longest, _ = strconv.Atoi(longest)
	}

	last, err := s.db.GetProfileValue("last_activity")
	if err != nil {
		return st, fmt.Errorf("get last_activity: %w", err)
	}
	if last != "" {
		ns, _ := strconv.ParseInt(last, 10, 64)
		st.LastActivity = time.Unix(0, ns)
	}

	return st, nil
}

// Update records activity at now and applies the streak transition:
//
//	same day        — no-op (already counted)
//	next day        — extend streak, track the longest high-water mark
//	gap > 1 day     — reset streak to zero
//
// Every branch except the same-day no-op moves last_activity to now.
// Milestone bonuses are evaluated after the transition: exactly 7 days
// pays 50 coins, exactly 30 pays 200, any other positive multiple of ten
// pays streak×5. Only the first matching branch fires.
func (s *Service) Update(now time.Time) (Result, error) {
	st, err := s.Current()
	if err != nil {
		return Result{}, err
	}

	res := Result{Current: st.Current, Longest: st.Longest}

	if st.LastActivity.IsZero() {
		res.Current = 1
		res.Extended = true
	} else {
		switch diff := DaysApart(st.LastActivity, now, s.loc); {
		case diff == 0:
			return res, nil // already counted today
		case diff == 1:
			res.Current = st.Current + 1
			res.Extended = true
		default:
			res.Current = 0
			res.Broken = true
		}
	}

	if res.Current > res.Longest {
		res.Longest = res.Current
	}

	if err := s.save(res.Current, res.Longest, now); err != nil {
		return res, err
	}

	bonus := milestoneBonus(res.Current)
	if bonus > 0 {
		if err := s.ledger.AddCoins(bonus); err != nil {
			return res, err
		}
		res.BonusCoins = bonus
	}

	metrics.StreakDays.Set(float64(res.Current))
	return res, nil
}

// milestoneBonus returns the coin bonus for the streak just reached.
// Branch order matters: the literal 7 and 30 checks take precedence over
// the modulo rule, so 10, 20, 40... pay streak×5 while 30 pays 200.
func milestoneBonus(streak int) int64 {
	switch {
	case streak == 7:
		return 50
	case streak == 30:
		return 200
	case streak > 0 && streak%10 == 0:
		return int64(streak) * 5
	default:
		return 0
	}
}

func (s *Service) save(current, longest int, lastActivity time.Time) error {
	pairs := map[string]string{
		"streak_current": strconv.Itoa(current),
		"streak_longest": strconv.Itoa(longest),
		"last_activity":  strconv.FormatInt(lastActivity.UnixNano(), 10),
	}
	for k, v := range pairs {
		if err := s.db.SetProfileValue(k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

// ─── Calendar Helpers ───────────────────────────────────────────────────────

// DayStart returns midnight of t's calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysApart returns the whole calendar days between a's day and b's day
// in loc. The division is rounded, not truncated: a DST transition makes
// a day 23 or 25 hours long, and rounding absorbs the skew.
func DaysApart(a, b time.Time, loc *time.Location) int {
	da := DayStart(a, loc)
	db := DayStart(b, loc)
	return int(math.Round(db.Sub(da).Hours() / 24))
}
