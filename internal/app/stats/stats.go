// Package stats maps goal activity onto the six bounded character stats.
// Discipline always moves; secondary categories come from a prioritized
// keyword/icon rule list matched against the goal's free text.
package stats

import (
	"strconv"
	"strings"

	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Rule binds a stat category to the keywords and icon fragments that
// select it. Rules are ordered: the penalty path honors first-match-wins.
type Rule struct {
	Category domain.StatCategory
	Keywords []string
	Icons    []string
}

// Matches reports whether the rule selects the given goal text and icon.
// Matching is case-insensitive substring search.
func (r Rule) Matches(text, icon string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	for _, frag := range r.Icons {
		if strings.Contains(icon, frag) {
			return true
		}
	}
	return false
}

// DefaultRules is the built-in classifier, one rule per secondary
// category. Keyword lists are a product-maintenance burden (especially
// multi-language ones); keeping them in one table makes swaps cheap.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: domain.StatPhysical,
			Keywords: []string{"sport", "training", "run", "pushup", "gym", "yoga", "stretch", "steps"},
			Icons:    []string{"figure", "dumbbell"},
		},
		{
			Category: domain.StatMental,
			Keywords: []string{"book", "learn", "course", "language", "education", "read", "code", "documentation"},
			Icons:    []string{"book", "graduationcap"},
		},
		{
			Category: domain.StatHealth,
			Keywords: []string{"water", "sleep", "health", "vitamin", "nutrition", "sugar"},
			Icons:    []string{"heart", "drop", "bed", "leaf"},
		},
		{
			Category: domain.StatCareer,
			Keywords: []string{"work", "business", "project", "meeting", "client", "finance"},
			Icons:    []string{"briefcase", "chart"},
		},
		{
			Category: domain.StatSocial,
			Keywords: []string{"family", "friends", "call", "spouse", "children", "parents", "date"},
			Icons:    []string{"person", "heart.fill", "house"},
		},
	}
}

// Service applies stat changes to the profile store.
type Service struct {
	db    *sqlite.DB
	rules []Rule
}

// NewService creates a stat engine with the default classifier.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db, rules: DefaultRules()}
}

// NewServiceWithRules creates a stat engine with a custom classifier.
func NewServiceWithRules(db *sqlite.DB, rules []Rule) *Service {
	return &Service{db: db, rules: rules}
}

// Categories returns every category whose rule matches the goal, in rule
// order. Multiple rules may match; all of them count on the gain path.
func (s *Service) Categories(g domain.Goal) []domain.StatCategory {
	text := strings.ToLower(g.Title + " " + g.Description + " " + g.Icon)
	icon := strings.ToLower(g.Icon)

	var cats []domain.StatCategory
	for _, r := range s.rules {
		if r.Matches(text, icon) {
			cats = append(cats, r.Category)
		}
	}
	return cats
}

// ApplyGain credits stats for a completed goal (or a habit tick when
// isHabit is set). Base gain is 1 for habits and difficulty-derived
// otherwise; an active streak adds +1 from 7 days and +2 from 30.
// Discipline always gains; every matching secondary category gains too,
// each independently clamped to [0,100].
func (s *Service) ApplyGain(g domain.Goal, isHabit bool) error {
	base := g.Difficulty.StatGain()
	if isHabit {
		base = 1
	}

	streak, err := s.currentStreak()
	if err != nil {
		return err
	}
	total := base + streakBonus(streak)

	if err := s.addStat(domain.StatDiscipline, total); err != nil {
		return err
	}
	for _, cat := range s.Categories(g) {
		if err := s.addStat(cat, total); err != nil {
			return err
		}
	}
	return nil
}

// ApplyPenalty debits stats for a failed goal. Discipline always loses
// the difficulty-derived amount; at most ONE secondary category loses,
// chosen by first-match-wins over the same rule list. The asymmetry with
// ApplyGain (all matches vs first match) is inherited behavior, kept
// deliberately.
func (s *Service) ApplyPenalty(g domain.Goal) error {
	penalty := g.Difficulty.StatPenalty()

	if err := s.addStat(domain.StatDiscipline, -penalty); err != nil {
		return err
	}
	if cats := s.Categories(g); len(cats) > 0 {
		return s.addStat(cats[0], -penalty)
	}
	return nil
}

// Current loads the six stats from the profile store.
func (s *Service) Current() (domain.CharacterStats, error) {
	var cs domain.CharacterStats
	for _, cat := range domain.AllStatCategories() {
		v, err := s.db.GetProfileValue("stat_" + string(cat))
		if err != nil {
			return cs, err
		}
		if v != "" {
			n, _ := strconv.Atoi(v)
			cs.Add(cat, n)
		}
	}
	return cs, nil
}

func streakBonus(streak int) int {
	switch {
	case streak >= 30:
		return 2
	case streak >= 7:
		return 1
	default:
		return 0
	}
}

func (s *Service) addStat(cat domain.StatCategory, delta int) error {
	key := "stat_" + string(cat)
	v, err := s.db.GetProfileValue(key)
	if err != nil {
		return err
	}
	cur := 0
	if v != "" {
		cur, _ = strconv.Atoi(v)
	}

	next := cur + delta
	if next < 0 {
		next = 0
	}
	if next > 100 {
		next = 100
	}
	return s.db.SetProfileValue(key, strconv.Itoa(next))
}

func (s *Service) currentStreak() (int, error) {
	v, err := s.db.GetProfileValue("streak_current")
	if err != nil {
		return 0, err
	}
	if v == "" {
		return 0, nil
	}
	n, _ := strconv.Atoi(v)
	return n, nil
}
