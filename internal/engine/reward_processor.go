package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/events"
	"github.com/umutterol/hellcrawler-sub001/pkg/forge"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// RewardProcessor начисляет награды за убийства и катает дроп предметов.
// Подписывается на ENEMY_DIED первым: опыт и золото должны лечь в танк
// до того, как учет волны решит, что волна закрыта, и до возврата трупа.
type RewardProcessor struct {
	inst  *Instance
	kills int
}

func NewRewardProcessor(inst *Instance) *RewardProcessor {
	rp := &RewardProcessor{inst: inst}
	inst.Bus.SubscribeFunc(events.EventEnemyDied, rp.onEnemyDied)
	return rp
}

// Kills - счетчик убийств за весь запуск, для дебага и бенчмарка.
func (rp *RewardProcessor) Kills() int { return rp.kills }

func (rp *RewardProcessor) onEnemyDied(ev events.Event) {
	died, ok := ev.Data.(events.EnemyDied)
	if !ok {
		return
	}
	rp.kills++

	i := rp.inst
	i.Tank.GainXP(died.XPAwarded)
	i.Tank.Earn(died.GoldAwarded)

	rp.rollDrop(died)
}

// rollDrop решает, падает ли с убитого предмет, и кладет его в
// инвентарь. Переполненный инвентарь дроп не откатывает - предмет
// теряется с warn-логом, игрок сам довел инвентарь до лимита.
func (rp *RewardProcessor) rollDrop(died events.EnemyDied) {
	i := rp.inst

	def, err := i.lib.Enemy(died.EnemyType)
	if err != nil {
		return // архетип исчез при горячей замене контента
	}

	item, err := forge.RollDrop(i.lib, i.rng, enums.ParseCategory(def.Category))
	if err != nil {
		logger.Log.WithError(err).WithField("enemy", died.EnemyType).Warn("Drop roll failed")
		return
	}
	if item == nil {
		return // не повезло
	}

	if !i.Manager.AddItem(item) {
		logger.Log.WithFields(logrus.Fields{
			"component": "rewards",
			"item_id":   item.ID,
			"class":     item.Class.String(),
		}).Warn("Inventory full, drop lost")
		return
	}

	i.Bus.Emit(events.EventItemDropped, events.ItemDropped{
		ItemID:     item.ID,
		ModuleType: item.Class,
		Rarity:     item.Rarity,
		SourceID:   died.EnemyID,
	})
	i.AddLog(fmt.Sprintf("Выпал предмет: %s (%s).", item.Class, item.Rarity), "LOOT")
}
