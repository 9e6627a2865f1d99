package ability

import (
	"fmt"

	"tactics-server/internal/battle"
	"tactics-server/internal/domain"
)

// Passive — пассивная способность. Живёт в каталоге и в слотах экипировки,
// но напрямую не применяется: её эффект учитывается на этапе сборки юнита.
type Passive struct {
	def Definition
}

// NewPassive строит пассивку из описания каталога.
func NewPassive(def Definition) *Passive {
	def.Type = TypePassive
	return &Passive{def: def}
}

func (p *Passive) Def() Definition { return p.def }

func (p *Passive) CanUse(_ *domain.Unit, _ *battle.State) bool { return false }

func (p *Passive) ValidateTarget(_ *domain.Unit, _ domain.TargetRef, _ *battle.State) bool {
	return false
}

func (p *Passive) Execute(_ *domain.Unit, _ domain.TargetRef, _ *battle.State) error {
	return fmt.Errorf("passive %s cannot be executed directly", p.def.ID)
}
