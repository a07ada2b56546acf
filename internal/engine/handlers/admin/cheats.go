package admin

import (
	"fmt"
	"strings"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
	"github.com/umutterol/hellcrawler-sub001/pkg/forge"
)

// HandleCheat обрабатывает команду CHEAT - отладочная раздача ресурсов.
// Каждое ненулевое поле пейлоада применяется независимо, порядок фиксирован:
// золото, опыт, лечение, прыжок по актам, выдача предмета.
func HandleCheat(ctx handlers.Context, p api.CheatPayload) (handlers.Result, error) {
	var applied []string

	if p.Gold > 0 {
		ctx.Tank.Earn(p.Gold)
		applied = append(applied, fmt.Sprintf("+%d золота", p.Gold))
	}

	if p.XP > 0 {
		ctx.Tank.GainXP(p.XP)
		applied = append(applied, fmt.Sprintf("+%d опыта", p.XP))
	}

	if p.Heal {
		healed := ctx.Tank.Heal(ctx.Tank.MaxHealth())
		applied = append(applied, fmt.Sprintf("+%d HP", healed))
	}

	if p.Act > 0 {
		if err := ctx.Run.SetProgress(p.Act, 1, 1); err != nil {
			return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
		}
		applied = append(applied, fmt.Sprintf("акт %d", p.Act))
	}

	if p.Item != "" {
		class := enums.ParseWeaponClass(p.Item)
		if class == enums.WeaponUnknown {
			return handlers.Result{Msg: fmt.Sprintf("Неизвестный класс модуля: %s", p.Item), MsgType: "ERROR"}, nil
		}
		var rarity enums.Rarity
		if p.Rarity == "" {
			// Без явной редкости - честный ролл по таблице весов.
			rarity = forge.RollRarity(ctx.Run.Library(), ctx.Run.Rand())
		} else {
			rarity = enums.ParseRarity(p.Rarity)
		}

		item, err := forge.RollItem(ctx.Run.Library(), ctx.Run.Rand(), class, rarity)
		if err != nil {
			return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
		}
		if !ctx.Manager.AddItem(item) {
			return handlers.Result{Msg: "Инвентарь полон, предмет не выдан.", MsgType: "ERROR"}, nil
		}
		applied = append(applied, fmt.Sprintf("%s (%s)", class, rarity))
	}

	if len(applied) == 0 {
		return handlers.Result{Msg: "Чит без эффекта: пустой пейлоад.", MsgType: "ERROR"}, nil
	}

	return handlers.Result{
		Msg:     "⚡ Чит применен: " + strings.Join(applied, ", "),
		MsgType: "INFO",
	}, nil
}
