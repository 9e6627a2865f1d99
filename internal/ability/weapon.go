package ability

import (
	"fmt"

	"tactics-server/internal/battle"
	"tactics-server/internal/domain"
)

// Weapon — физическая атака экипированным оружием.
// Урон: max(1, ATK + power - DEF/2), деление целочисленное (с усечением).
type Weapon struct {
	def Definition
}

// NewWeapon строит оружейную способность из описания каталога.
func NewWeapon(def Definition) *Weapon {
	def.Type = TypeWeapon
	return &Weapon{def: def}
}

func (w *Weapon) Def() Definition { return w.def }

func (w *Weapon) CanUse(actor *domain.Unit, _ *battle.State) bool {
	return actor.Alive()
}

func (w *Weapon) ValidateTarget(actor *domain.Unit, target domain.TargetRef, s *battle.State) bool {
	return validateTarget(w.def, actor, target, s)
}

func (w *Weapon) Execute(actor *domain.Unit, target domain.TargetRef, s *battle.State) error {
	hit := affectedUnits(w.def, actor, target, s)
	if len(hit) == 0 {
		return fmt.Errorf("weapon %s: no unit at target", w.def.ID)
	}
	for _, t := range hit {
		dmg := actor.Stats.ATK + w.def.Power - t.Stats.DEF/2
		if dmg < 1 {
			dmg = 1
		}
		t.TakeDamage(dmg)
	}
	return nil
}
