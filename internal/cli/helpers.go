package cli

import (
	"fmt"
	"strings"

	"github.com/ascend-app/ascend/internal/app"
	"github.com/ascend-app/ascend/internal/app/progress"
	"github.com/ascend-app/ascend/internal/domain"
)

// resolveGoal matches a goal by full ID, unique ID prefix, or exact
// title (case-insensitive), in that order.
func resolveGoal(a *app.App, ref string) (*domain.Goal, error) {
	if g, err := a.Progress.Get(ref); err == nil {
		return g, nil
	}

	goals, err := a.Progress.List(progress.Filter{})
	if err != nil {
		return nil, err
	}

	var byPrefix []*domain.Goal
	for i := range goals {
		if strings.HasPrefix(goals[i].ID, ref) {
			byPrefix = append(byPrefix, &goals[i])
		}
		if strings.EqualFold(goals[i].Title, ref) {
			return &goals[i], nil
		}
	}
	switch len(byPrefix) {
	case 1:
		return byPrefix[0], nil
	case 0:
		return nil, fmt.Errorf("no goal matches %q: %w", ref, domain.ErrGoalNotFound)
	default:
		return nil, fmt.Errorf("%q matches %d goals, be more specific", ref, len(byPrefix))
	}
}

// resolveReward matches a reward by full ID, unique ID prefix, or exact
// title (case-insensitive).
func resolveReward(a *app.App, ref string) (*domain.Reward, error) {
	rewards, err := a.Shop.List()
	if err != nil {
		return nil, err
	}

	var byPrefix []*domain.Reward
	for i := range rewards {
		if rewards[i].ID == ref || strings.EqualFold(rewards[i].Title, ref) {
			return &rewards[i], nil
		}
		if strings.HasPrefix(rewards[i].ID, ref) {
			byPrefix = append(byPrefix, &rewards[i])
		}
	}
	switch len(byPrefix) {
	case 1:
		return byPrefix[0], nil
	case 0:
		return nil, fmt.Errorf("no reward matches %q: %w", ref, domain.ErrRewardNotFound)
	default:
		return nil, fmt.Errorf("%q matches %d rewards, be more specific", ref, len(byPrefix))
	}
}

// resolvePurchase matches a purchase by full ID or unique ID prefix
// across every reward's history.
func resolvePurchase(a *app.App, ref string) (string, error) {
	rewards, err := a.Shop.List()
	if err != nil {
		return "", err
	}

	var byPrefix []string
	for _, r := range rewards {
		for _, p := range r.Purchases {
			if p.ID == ref {
				return p.ID, nil
			}
			if strings.HasPrefix(p.ID, ref) {
				byPrefix = append(byPrefix, p.ID)
			}
		}
	}
	switch len(byPrefix) {
	case 1:
		return byPrefix[0], nil
	case 0:
		return "", fmt.Errorf("no purchase matches %q: %w", ref, domain.ErrPurchaseNotFound)
	default:
		return "", fmt.Errorf("%q matches %d purchases, be more specific", ref, len(byPrefix))
	}
}

// shortID trims a UUID to its first segment for table display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// progressBar renders a 10-cell bar for a percentage.
func progressBar(pct float64) string {
	filled := int(pct / 10)
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// checkMark renders completion state for tables.
func checkMark(done bool) string {
	if done {
		return "✓"
	}
	return " "
}
