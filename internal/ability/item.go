package ability

import (
	"fmt"

	"tactics-server/internal/battle"
	"tactics-server/internal/domain"
)

// Item — расходуемый предмет из инвентаря. Каждое применение списывает
// один заряд у применяющего; нулевой остаток блокирует CanUse.
//
// Эффект предметов не зависит от статов применяющего:
//   - DAMAGE:  max(1, power - DEF/2) (бомбы, метательные склянки)
//   - HEAL:    hp = min(maxHp, hp + power)
//   - RESTORE: mp = min(maxMp, mp + power)
type Item struct {
	def Definition
}

// NewItem строит предмет из описания каталога.
func NewItem(def Definition) *Item {
	def.Type = TypeItem
	return &Item{def: def}
}

func (it *Item) Def() Definition { return it.def }

func (it *Item) CanUse(actor *domain.Unit, _ *battle.State) bool {
	return actor.Alive() && actor.ItemCount(it.def.ID) > 0
}

func (it *Item) ValidateTarget(actor *domain.Unit, target domain.TargetRef, s *battle.State) bool {
	return validateTarget(it.def, actor, target, s)
}

func (it *Item) Execute(actor *domain.Unit, target domain.TargetRef, s *battle.State) error {
	if !actor.ConsumeItem(it.def.ID) {
		return fmt.Errorf("item %s: no charges left", it.def.ID)
	}

	for _, t := range affectedUnits(it.def, actor, target, s) {
		switch it.def.EffectKind {
		case EffectDamage:
			dmg := it.def.Power - t.Stats.DEF/2
			if dmg < 1 {
				dmg = 1
			}
			t.TakeDamage(dmg)
		case EffectHeal:
			t.Heal(it.def.Power)
		case EffectBuff:
			applyBuff(t, it.def.BuffStat, it.def.Power)
		case EffectRestore:
			t.RestoreMP(it.def.Power)
		default:
			return fmt.Errorf("item %s: unknown effect kind %q", it.def.ID, it.def.EffectKind)
		}
	}
	return nil
}
