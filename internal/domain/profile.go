package domain

import "time"

// ─── Character Stats ────────────────────────────────────────────────────────

// StatCategory names one of the six bounded character attributes.
type StatCategory string

const (
	StatPhysical   StatCategory = "physical"
	StatMental     StatCategory = "mental"
	StatHealth     StatCategory = "health"
	StatCareer     StatCategory = "career"
	StatSocial     StatCategory = "social"
	StatDiscipline StatCategory = "discipline"
)

// AllStatCategories lists the six categories in display order.
func AllStatCategories() []StatCategory {
	return []StatCategory{
		StatPhysical, StatMental, StatHealth,
		StatCareer, StatSocial, StatDiscipline,
	}
}

// statMax is the upper bound for every character stat.
const statMax = 100

// CharacterStats holds six counters, each clamped to [0,100].
type CharacterStats struct {
	Physical   int `json:"physical"`
	Mental     int `json:"mental"`
	Health     int `json:"health"`
	Career     int `json:"career"`
	Social     int `json:"social"`
	Discipline int `json:"discipline"`
}

// Get returns the value for a category.
func (c CharacterStats) Get(cat StatCategory) int {
	switch cat {
	case StatPhysical:
		return c.Physical
	case StatMental:
		return c.Mental
	case StatHealth:
		return c.Health
	case StatCareer:
		return c.Career
	case StatSocial:
		return c.Social
	case StatDiscipline:
		return c.Discipline
	default:
		return 0
	}
}

// Add applies a delta to a category, clamping the result to [0,100].
func (c *CharacterStats) Add(cat StatCategory, delta int) {
	v := clampStat(c.Get(cat) + delta)
	switch cat {
	case StatPhysical:
		c.Physical = v
	case StatMental:
		c.Mental = v
	case StatHealth:
		c.Health = v
	case StatCareer:
		c.Career = v
	case StatSocial:
		c.Social = v
	case StatDiscipline:
		c.Discipline = v
	}
}

// Overall is the integer average of the six stats.
func (c CharacterStats) Overall() int {
	sum := c.Physical + c.Mental + c.Health + c.Career + c.Social + c.Discipline
	return sum / 6
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > statMax {
		return statMax
	}
	return v
}

// BodyType buckets the character's physique from physical + health.
type BodyType string

const (
	BodySlim     BodyType = "slim"
	BodyFit      BodyType = "fit"
	BodyAthletic BodyType = "athletic"
	BodyHeroic   BodyType = "heroic"
)

// BodyType tiers at thresholds 30/60/85 on avg(physical, health).
func (c CharacterStats) BodyType() BodyType {
	avg := (c.Physical + c.Health) / 2
	switch {
	case avg >= 85:
		return BodyHeroic
	case avg >= 60:
		return BodyAthletic
	case avg >= 30:
		return BodyFit
	default:
		return BodySlim
	}
}

// ─── User Profile ───────────────────────────────────────────────────────────

// UserProfile is the singleton per-installation aggregate.
// Invariant after any XP credit: XP < Level*100 (XPThreshold).
type UserProfile struct {
	Coins           int64          `json:"coins"`
	Level           int            `json:"level"`
	XP              int64          `json:"xp"`
	Streak          int            `json:"streak"`
	LongestStreak   int            `json:"longest_streak"`
	LastActivity    time.Time      `json:"last_activity"`
	TotalCompleted  int64          `json:"total_completed"`
	Stats           CharacterStats `json:"stats"`
	LastBriefing    time.Time      `json:"last_briefing"`
	ShowBriefing    bool           `json:"show_briefing"`
}

// NewProfile returns the default profile for a fresh installation.
func NewProfile() UserProfile {
	return UserProfile{Level: 1}
}

// XPThreshold is the XP needed to advance past the given level.
func XPThreshold(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(level) * 100
}

// LevelUpBonus is the coin bonus awarded on reaching newLevel.
func LevelUpBonus(newLevel int) int64 {
	return int64(newLevel) * 50
}

// XPToNextLevel returns XP remaining until the next level.
func (p UserProfile) XPToNextLevel() int64 {
	remaining := XPThreshold(p.Level) - p.XP
	if remaining < 0 {
		return 0
	}
	return remaining
}
