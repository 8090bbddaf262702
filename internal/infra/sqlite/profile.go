package sqlite

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/ascend-app/ascend/internal/domain"
)

// ─── Profile Key-Value ──────────────────────────────────────────────────────
// The user profile is a singleton stored as independent key-value pairs,
// so partial reads (just the coin balance, say) stay cheap.

// SetProfileValue stores one profile key-value pair.
func (d *DB) SetProfileValue(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO profile (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetProfileValue retrieves a profile value by key.
// Returns "" if key not found.
func (d *DB) GetProfileValue(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM profile WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// LoadProfile assembles the full profile from the key-value table.
// Missing keys fall back to fresh-installation defaults.
func (d *DB) LoadProfile() (domain.UserProfile, error) {
	p := domain.NewProfile()

	ints := map[string]*int{
		"level":          &p.Level,
		"streak_current": &p.Streak,
		"streak_longest": &p.LongestStreak,
	}
	for key, dst := range ints {
		v, err := d.GetProfileValue(key)
		if err != nil {
			return p, err
		}
		if v != "" {
			*dst, _ = strconv.Atoi(v)
		}
	}

	int64s := map[string]*int64{
		"coins":           &p.Coins,
		"xp":              &p.XP,
		"total_completed": &p.TotalCompleted,
	}
	for key, dst := range int64s {
		v, err := d.GetProfileValue(key)
		if err != nil {
			return p, err
		}
		if v != "" {
			*dst, _ = strconv.ParseInt(v, 10, 64)
		}
	}

	times := map[string]*time.Time{
		"last_activity": &p.LastActivity,
		"last_briefing": &p.LastBriefing,
	}
	for key, dst := range times {
		v, err := d.GetProfileValue(key)
		if err != nil {
			return p, err
		}
		if v != "" {
			ns, _ := strconv.ParseInt(v, 10, 64)
			*dst = time.Unix(0, ns)
		}
	}

	show, err := d.GetProfileValue("show_briefing")
	if err != nil {
		return p, err
	}
	p.ShowBriefing = show == "1"

	for _, cat := range domain.AllStatCategories() {
		v, err := d.GetProfileValue("stat_" + string(cat))
		if err != nil {
			return p, err
		}
		if v != "" {
			n, _ := strconv.Atoi(v)
			p.Stats.Add(cat, n) // fresh stats are zero, Add clamps
		}
	}

	if p.Level < 1 {
		p.Level = 1
	}
	return p, nil
}

// SaveProfile persists the full profile to the key-value table.
func (d *DB) SaveProfile(p domain.UserProfile) error {
	pairs := map[string]string{
		"coins":           strconv.FormatInt(p.Coins, 10),
		"level":           strconv.Itoa(p.Level),
		"xp":              strconv.FormatInt(p.XP, 10),
		"streak_current":  strconv.Itoa(p.Streak),
		"streak_longest":  strconv.Itoa(p.LongestStreak),
		"total_completed": strconv.FormatInt(p.TotalCompleted, 10),
		"last_activity":   formatTime(p.LastActivity),
		"last_briefing":   formatTime(p.LastBriefing),
		"show_briefing":   boolStr(p.ShowBriefing),
	}
	for _, cat := range domain.AllStatCategories() {
		pairs["stat_"+string(cat)] = strconv.Itoa(p.Stats.Get(cat))
	}

	for k, v := range pairs {
		if err := d.SetProfileValue(k, v); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
