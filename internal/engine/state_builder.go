package engine

import (
	"strconv"

	"github.com/umutterol/hellcrawler-sub001/internal/arena"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
)

// buildState собирает полный DTO-снапшот инстанса. Никакого состояния
// между вызовами: каждый снапшот - свежие слайсы, их можно безопасно
// сериализовать из другой горутины после передачи через канал.
func buildState(i *Instance) *api.StateView {
	return &api.StateView{
		TimeMs:      i.nowMs,
		Act:         i.act,
		Zone:        i.zone,
		Wave:        i.wave,
		Tank:        buildTankView(i.Tank),
		Slots:       buildSlotViews(i),
		Inventory:   buildInventoryViews(i.Manager.Inventory()),
		Enemies:     buildEnemyViews(i),
		Projectiles: buildProjectileViews(i),
	}
}

func buildTankView(t *domain.Tank) *api.TankView {
	return &api.TankView{
		Health:    t.Health(),
		MaxHealth: t.MaxHealth(),
		Level:     t.Level(),
		XP:        t.XP(),
		XPToNext:  t.Level() * domain.XPPerLevel,
		Gold:      t.Gold(),
	}
}

func buildSlotViews(i *Instance) []api.SlotView {
	views := make([]api.SlotView, 0, domain.SlotCount)

	for idx := 0; idx < domain.SlotCount; idx++ {
		slot := i.Manager.Slot(idx)
		if slot == nil {
			continue
		}

		view := api.SlotView{
			Index:     slot.Index,
			Unlocked:  slot.Unlocked,
			Direction: slot.Direction.String(),
			Stats:     buildSlotStatsView(slot),
		}

		if !slot.Unlocked {
			view.UnlockCost = i.lib.SlotCost(idx)
			view.ActGate = i.lib.SlotActGate(idx)
		}

		if slot.Equipped != nil {
			item := buildItemView(slot.Equipped)
			view.Item = &item
		}

		if mod := i.Manager.ModuleAt(idx); mod != nil {
			for _, s := range mod.Skills() {
				view.Skills = append(view.Skills, api.SkillView(s))
			}
		}

		views = append(views, view)
	}
	return views
}

func buildSlotStatsView(slot *domain.ModuleSlot) api.SlotStatsView {
	return api.SlotStatsView{
		DamageLevel:      slot.Stats.DamageLevel,
		AttackSpeedLevel: slot.Stats.AttackSpeedLevel,
		CDRLevel:         slot.Stats.CDRLevel,

		DamageCost:      (slot.Stats.DamageLevel + 1) * domain.UpgradeCostBase,
		AttackSpeedCost: (slot.Stats.AttackSpeedLevel + 1) * domain.UpgradeCostBase,
		CDRCost:         (slot.Stats.CDRLevel + 1) * domain.UpgradeCostBase,
	}
}

func buildItemView(item *domain.ModuleItem) api.ItemView {
	view := api.ItemView{
		ID:     item.ID.String(),
		Class:  item.Class.String(),
		Rarity: item.Rarity.String(),
	}
	for _, b := range item.Bonuses {
		view.Bonuses = append(view.Bonuses, api.BonusView{
			Type:  b.Type.String(),
			Value: b.Value,
		})
	}
	return view
}

func buildInventoryViews(items []*domain.ModuleItem) []api.ItemView {
	views := make([]api.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, buildItemView(item))
	}
	return views
}

func buildEnemyViews(i *Instance) []api.EnemyView {
	var views []api.EnemyView
	arena.ForEachActive(i.enemies, func(e *domain.Enemy) {
		views = append(views, api.EnemyView{
			ID:        strconv.FormatUint(uint64(e.ID()), 10),
			Archetype: e.Archetype(),
			Category:  e.Category().String(),
			X:         e.Pos.X,
			Y:         e.Pos.Y,
			Side:      e.Side.String(),
			Health:    e.Health(),
			MaxHealth: e.MaxHealth(),
			State:     e.State(),
		})
	})
	return views
}

func buildProjectileViews(i *Instance) []api.ProjectileView {
	var views []api.ProjectileView
	arena.ForEachActive(i.projectiles, func(p *domain.Projectile) {
		if !p.InFlight() {
			return
		}
		views = append(views, api.ProjectileView{
			ID:        strconv.FormatUint(uint64(p.ID()), 10),
			Kind:      p.Kind.String(),
			X:         p.Pos.X,
			Y:         p.Pos.Y,
			SlotIndex: p.SlotIndex,
			Crit:      p.IsCrit,
		})
	})
	return views
}
