package domain_test

import (
	"testing"

	"github.com/ascend-app/ascend/internal/domain"
)

func TestCharacterStats_Clamp(t *testing.T) {
	var cs domain.CharacterStats

	cs.Add(domain.StatPhysical, 98)
	cs.Add(domain.StatPhysical, 5)
	if cs.Physical != 100 {
		t.Errorf("expected cap at 100, got %d", cs.Physical)
	}

	cs.Add(domain.StatMental, -10)
	if cs.Mental != 0 {
		t.Errorf("expected floor at 0, got %d", cs.Mental)
	}
}

func TestCharacterStats_Overall(t *testing.T) {
	cs := domain.CharacterStats{
		Physical: 60, Mental: 60, Health: 60,
		Career: 60, Social: 60, Discipline: 60,
	}
	if cs.Overall() != 60 {
		t.Errorf("expected 60, got %d", cs.Overall())
	}

	cs.Discipline = 0
	if cs.Overall() != 50 {
		t.Errorf("expected integer average 50, got %d", cs.Overall())
	}
}

func TestCharacterStats_BodyType(t *testing.T) {
	cases := []struct {
		physical, health int
		want             domain.BodyType
	}{
		{0, 0, domain.BodySlim},
		{30, 30, domain.BodyFit},
		{60, 60, domain.BodyAthletic},
		{90, 80, domain.BodyHeroic},
		{29, 30, domain.BodySlim}, // avg 29 stays below the first tier
	}
	for _, c := range cases {
		cs := domain.CharacterStats{Physical: c.physical, Health: c.health}
		if got := cs.BodyType(); got != c.want {
			t.Errorf("physical=%d health=%d: expected %s, got %s",
				c.physical, c.health, c.want, got)
		}
	}
}

func TestXPThreshold(t *testing.T) {
	if domain.XPThreshold(1) != 100 {
		t.Errorf("level 1 threshold: got %d", domain.XPThreshold(1))
	}
	if domain.XPThreshold(7) != 700 {
		t.Errorf("level 7 threshold: got %d", domain.XPThreshold(7))
	}
	if domain.XPThreshold(0) != 100 {
		t.Errorf("sub-1 levels normalize to level 1, got %d", domain.XPThreshold(0))
	}
}

func TestLevelUpBonus(t *testing.T) {
	if domain.LevelUpBonus(2) != 100 {
		t.Errorf("reaching level 2 pays 100, got %d", domain.LevelUpBonus(2))
	}
	if domain.LevelUpBonus(10) != 500 {
		t.Errorf("reaching level 10 pays 500, got %d", domain.LevelUpBonus(10))
	}
}

func TestRarity_Coins(t *testing.T) {
	cases := map[domain.Rarity]int64{
		domain.RarityCommon:    25,
		domain.RarityRare:      50,
		domain.RarityEpic:      100,
		domain.RarityLegendary: 250,
	}
	for rarity, want := range cases {
		if got := rarity.Coins(); got != want {
			t.Errorf("%s: expected %d, got %d", rarity, want, got)
		}
	}
}
