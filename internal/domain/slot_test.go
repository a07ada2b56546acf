package domain

import (
	"testing"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
)

func TestDirectionForIndex(t *testing.T) {
	tests := []struct {
		index    int
		expected enums.Direction
	}{
		{0, enums.DirectionFront},
		{1, enums.DirectionBack},
		{2, enums.DirectionFront},
		{3, enums.DirectionBack},
		{4, enums.DirectionBoth},
	}

	for _, tt := range tests {
		if got := DirectionForIndex(tt.index); got != tt.expected {
			t.Errorf("DirectionForIndex(%d) = %v, want %v", tt.index, got, tt.expected)
		}
	}
}

func TestNewSlot_InitialUnlocks(t *testing.T) {
	for i := 0; i < SlotCount; i++ {
		s := NewSlot(i)
		wantUnlocked := i < 2
		if s.Unlocked != wantUnlocked {
			t.Errorf("slot %d unlocked = %v, want %v", i, s.Unlocked, wantUnlocked)
		}
		if s.IsOccupied() {
			t.Errorf("slot %d starts occupied", i)
		}
	}
}

func TestSlot_Multipliers(t *testing.T) {
	s := NewSlot(0)

	if got := s.DamageMult(); got != 1.0 {
		t.Errorf("DamageMult at level 0 = %v, want 1.0", got)
	}

	s.Stats.DamageLevel = 7
	s.Stats.AttackSpeedLevel = 25
	s.Stats.CDRLevel = 10

	if got := s.DamageMult(); got != 1.07 {
		t.Errorf("DamageMult at level 7 = %v, want 1.07", got)
	}
	if got := s.AttackSpeedMult(); got != 1.25 {
		t.Errorf("AttackSpeedMult at level 25 = %v, want 1.25", got)
	}
	if got := s.CDRFraction(); got != 0.10 {
		t.Errorf("CDRFraction at level 10 = %v, want 0.10", got)
	}
}

// Лестница цен: апгрейд уровня l стоит (l+1)*50, путь 0->5 стоит 750.
func TestSlot_UpgradeCostLadder(t *testing.T) {
	s := NewSlot(2)

	total := 0
	for lvl := 0; lvl < 5; lvl++ {
		cost := s.UpgradeCost(enums.StatDamage)
		want := (lvl + 1) * UpgradeCostBase
		if cost != want {
			t.Errorf("UpgradeCost at level %d = %d, want %d", lvl, cost, want)
		}
		total += cost
		s.Stats.Bump(enums.StatDamage)
	}

	if total != 750 {
		t.Errorf("total cost to level 5 = %d, want 750", total)
	}
	if s.Stats.DamageLevel != 5 {
		t.Errorf("DamageLevel = %d, want 5", s.Stats.DamageLevel)
	}
}

func TestSlotStats_BumpAndLevel(t *testing.T) {
	var stats SlotStats

	stats.Bump(enums.StatDamage)
	stats.Bump(enums.StatAttackSpeed)
	stats.Bump(enums.StatAttackSpeed)
	stats.Bump(enums.StatCooldownReduction)

	tests := []struct {
		stat     enums.SlotStat
		expected int
	}{
		{enums.StatDamage, 1},
		{enums.StatAttackSpeed, 2},
		{enums.StatCooldownReduction, 1},
	}
	for _, tt := range tests {
		if got := stats.Level(tt.stat); got != tt.expected {
			t.Errorf("Level(%v) = %d, want %d", tt.stat, got, tt.expected)
		}
	}

	// Уровни независимы: прокачка одного не трогает остальные.
	if stats.DamageLevel != 1 || stats.AttackSpeedLevel != 2 || stats.CDRLevel != 1 {
		t.Errorf("stats cross-talk: %+v", stats)
	}
}
