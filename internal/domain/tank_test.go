package domain

import (
	"testing"

	"github.com/umutterol/hellcrawler-sub001/internal/events"
)

func TestTank_DamageAndHealClamps(t *testing.T) {
	bus := events.NewDispatcher()
	tank := NewTank(bus, 1000)

	tank.TakeDamage(300)
	if tank.Health() != 700 {
		t.Fatalf("Health = %d, want 700", tank.Health())
	}

	// Лечение клампится по максимуму и возвращает фактэффект.
	if applied := tank.Heal(500); applied != 300 {
		t.Errorf("Heal(500) applied %d, want 300", applied)
	}
	if tank.Health() != 1000 {
		t.Errorf("Health = %d, want 1000", tank.Health())
	}
	if applied := tank.Heal(10); applied != 0 {
		t.Errorf("Heal at full health applied %d, want 0", applied)
	}

	// Урон не уводит здоровье ниже нуля.
	tank.TakeDamage(5000)
	if tank.Health() != 0 {
		t.Errorf("Health after overkill = %d, want 0", tank.Health())
	}
	if !tank.IsDestroyed() {
		t.Error("tank at 0 HP must report destroyed")
	}
}

func TestTank_Wallet(t *testing.T) {
	bus := events.NewDispatcher()
	tank := NewTank(bus, 100)

	tank.Earn(500)
	if tank.Gold() != 500 {
		t.Fatalf("Gold = %d, want 500", tank.Gold())
	}

	if !tank.Spend(200) {
		t.Error("Spend(200) with 500 gold must succeed")
	}
	if tank.Spend(400) {
		t.Error("Spend(400) with 300 gold must fail")
	}
	if tank.Gold() != 300 {
		t.Errorf("Gold = %d, want 300 (failed spend must not charge)", tank.Gold())
	}

	// Отрицательные суммы игнорируются.
	tank.Earn(-50)
	if tank.Spend(-10) {
		t.Error("negative Spend must fail")
	}
	if tank.Gold() != 300 {
		t.Errorf("Gold = %d, want 300", tank.Gold())
	}
}

func TestTank_Progression(t *testing.T) {
	bus := events.NewDispatcher()
	tank := NewTank(bus, 100)

	if tank.Level() != 1 {
		t.Fatalf("starting level = %d, want 1", tank.Level())
	}

	// Порог уровня: Level * XPPerLevel, остаток переносится.
	tank.GainXP(150)
	if tank.Level() != 2 || tank.XP() != 50 {
		t.Errorf("after 150 xp: level=%d xp=%d, want 2/50", tank.Level(), tank.XP())
	}

	// 50 + 200 = 250 >= 2*100, апаемся еще раз.
	tank.GainXP(200)
	if tank.Level() != 3 || tank.XP() != 50 {
		t.Errorf("after +200 xp: level=%d xp=%d, want 3/50", tank.Level(), tank.XP())
	}

	// Один большой транш может дать несколько уровней подряд.
	tank.GainXP(300 + 400) // пороги 300 и 400
	if tank.Level() != 5 || tank.XP() != 50 {
		t.Errorf("after +700 xp: level=%d xp=%d, want 5/50", tank.Level(), tank.XP())
	}
}
