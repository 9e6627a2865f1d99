package ability

import (
	"fmt"

	"tactics-server/internal/battle"
	"tactics-server/internal/domain"
)

// Magic — заклинание. Расходует MPCost маны кастера.
//
// Формулы по роду эффекта:
//   - DAMAGE:  max(1, MAG + power - RES/2), деление целочисленное
//   - HEAL:    hp = min(maxHp, hp + power)
//   - BUFF:    +power к характеристике BuffStat
//   - RESTORE: mp = min(maxMp, mp + power)
type Magic struct {
	def Definition
}

// NewMagic строит заклинание из описания каталога.
func NewMagic(def Definition) *Magic {
	def.Type = TypeMagic
	return &Magic{def: def}
}

func (m *Magic) Def() Definition { return m.def }

func (m *Magic) CanUse(actor *domain.Unit, _ *battle.State) bool {
	return actor.Alive() && actor.Stats.MP >= m.def.MPCost
}

func (m *Magic) ValidateTarget(actor *domain.Unit, target domain.TargetRef, s *battle.State) bool {
	return validateTarget(m.def, actor, target, s)
}

func (m *Magic) Execute(actor *domain.Unit, target domain.TargetRef, s *battle.State) error {
	if !actor.SpendMP(m.def.MPCost) {
		return fmt.Errorf("magic %s: not enough mp", m.def.ID)
	}

	for _, t := range affectedUnits(m.def, actor, target, s) {
		switch m.def.EffectKind {
		case EffectDamage:
			dmg := actor.Stats.MAG + m.def.Power - t.Stats.RES/2
			if dmg < 1 {
				dmg = 1
			}
			t.TakeDamage(dmg)
		case EffectHeal:
			t.Heal(m.def.Power)
		case EffectBuff:
			applyBuff(t, m.def.BuffStat, m.def.Power)
		case EffectRestore:
			t.RestoreMP(m.def.Power)
		default:
			return fmt.Errorf("magic %s: unknown effect kind %q", m.def.ID, m.def.EffectKind)
		}
	}
	return nil
}
