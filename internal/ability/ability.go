// Package ability содержит каталог способностей и правила их разрешения:
// кто может применить (CanUse), по кому (ValidateTarget) и что произойдёт
// (Execute). Поведение задаётся типом способности (weapon/magic/item/passive),
// а не замыканиями на экземпляр — каталог остаётся сериализуемым и
// загружается из данных.
package ability

import (
	"tactics-server/internal/battle"
	"tactics-server/internal/domain"
)

// Type — вид способности.
type Type string

const (
	TypeWeapon  Type = "WEAPON"
	TypeMagic   Type = "MAGIC"
	TypeItem    Type = "ITEM"
	TypePassive Type = "PASSIVE"
)

// TargetType — схема выбора цели.
type TargetType string

const (
	TargetSingleEnemy TargetType = "SINGLE_ENEMY"
	TargetSingleAlly  TargetType = "SINGLE_ALLY"
	TargetSingleAny   TargetType = "SINGLE_ANY"
	TargetAreaEnemy   TargetType = "AREA_ENEMY"
	TargetAreaAlly    TargetType = "AREA_ALLY"
	TargetAreaAny     TargetType = "AREA_ANY"
	TargetSelf        TargetType = "SELF"
)

// IsArea сообщает, бьёт ли способность по площади.
func (t TargetType) IsArea() bool {
	return t == TargetAreaEnemy || t == TargetAreaAlly || t == TargetAreaAny
}

// EffectKind — явный род эффекта.
// Раньше "лечение или урон" выводились из отношения команд и targetType;
// теперь это самостоятельное свойство способности: можно лечить врага
// и бить союзника, если дизайнеру так захочется.
type EffectKind string

const (
	EffectDamage  EffectKind = "DAMAGE"
	EffectHeal    EffectKind = "HEAL"
	EffectBuff    EffectKind = "BUFF"
	EffectRestore EffectKind = "RESTORE" // восстановление MP
)

// Definition — неизменяемое описание способности из каталога.
type Definition struct {
	ID         domain.AbilityID `yaml:"id" json:"id"`
	Name       string           `yaml:"name" json:"name"`
	Type       Type             `yaml:"type" json:"type"`
	TargetType TargetType       `yaml:"targetType" json:"targetType"`
	EffectKind EffectKind       `yaml:"effectKind" json:"effectKind"`
	Range      int              `yaml:"range" json:"range"`
	Radius     int              `yaml:"radius" json:"radius"` // площадь для Area*, манхэттен
	Power      int              `yaml:"power" json:"power"`
	Element    string           `yaml:"element" json:"element"`
	CastTime   int              `yaml:"castTime" json:"castTime"`
	Cooldown   int              `yaml:"cooldown" json:"cooldown"`
	MPCost     int              `yaml:"mpCost" json:"mpCost"`
	Uses       int              `yaml:"uses" json:"uses"` // стартовые заряды для предметов
	BuffStat   string           `yaml:"buffStat" json:"buffStat,omitempty"`
	Rarity     string           `yaml:"rarity" json:"rarity"`
}

// Ability — полиморфный контракт способности.
// Все три метода — чистые проверки/преобразования над переданным состоянием:
// фасад вызывает Execute на копии боя и коммитит её целиком.
type Ability interface {
	Def() Definition
	CanUse(actor *domain.Unit, s *battle.State) bool
	ValidateTarget(actor *domain.Unit, target domain.TargetRef, s *battle.State) bool
	Execute(actor *domain.Unit, target domain.TargetRef, s *battle.State) error
}

// --- Общие правила таргетинга ---

// anchorPos возвращает опорную клетку цели (позиция юнита или сама клетка).
func anchorPos(target domain.TargetRef, s *battle.State) (domain.Position, bool) {
	switch target.Kind {
	case domain.TargetKindUnit:
		u := s.Unit(target.UnitID)
		if u == nil {
			return domain.Position{}, false
		}
		return u.Pos, true
	case domain.TargetKindPosition:
		return target.Pos, true
	default:
		return domain.Position{}, false
	}
}

// validateTarget — общая проверка цели: дальность по манхэттену и
// командная принадлежность согласно схеме таргетинга.
func validateTarget(def Definition, actor *domain.Unit, target domain.TargetRef, s *battle.State) bool {
	anchor, ok := anchorPos(target, s)
	if !ok {
		return false
	}
	if actor.Pos.ManhattanTo(anchor) > def.Range {
		return false
	}

	switch def.TargetType {
	case TargetSelf:
		return target.Kind == domain.TargetKindUnit && target.UnitID == actor.ID

	case TargetSingleEnemy, TargetSingleAlly, TargetSingleAny:
		if target.Kind != domain.TargetKindUnit {
			return false
		}
		t := s.Unit(target.UnitID)
		if t == nil || !t.Alive() {
			return false
		}
		switch def.TargetType {
		case TargetSingleEnemy:
			return t.TeamID != actor.TeamID
		case TargetSingleAlly:
			return t.TeamID == actor.TeamID
		default:
			return true
		}

	case TargetAreaEnemy, TargetAreaAlly, TargetAreaAny:
		// Для площадных достаточно досягаемости опорной клетки;
		// командный фильтр применяется к задетым юнитам в Execute.
		return true

	default:
		return false
	}
}

// affectedUnits собирает юнитов, задетых способностью вокруг опорной клетки.
func affectedUnits(def Definition, actor *domain.Unit, target domain.TargetRef, s *battle.State) []*domain.Unit {
	anchor, ok := anchorPos(target, s)
	if !ok {
		return nil
	}

	if !def.TargetType.IsArea() {
		if target.Kind != domain.TargetKindUnit {
			return nil
		}
		if t := s.Unit(target.UnitID); t != nil {
			return []*domain.Unit{t}
		}
		return nil
	}

	hit := make([]*domain.Unit, 0)
	for _, u := range s.Units {
		if !u.Alive() || u.Pos.ManhattanTo(anchor) > def.Radius {
			continue
		}
		switch def.TargetType {
		case TargetAreaEnemy:
			if u.TeamID != actor.TeamID {
				hit = append(hit, u)
			}
		case TargetAreaAlly:
			if u.TeamID == actor.TeamID {
				hit = append(hit, u)
			}
		default:
			hit = append(hit, u)
		}
	}
	return hit
}

// applyBuff повышает именованную характеристику юнита.
func applyBuff(u *domain.Unit, stat string, amount int) {
	switch stat {
	case "atk":
		u.Stats.ATK += amount
	case "def":
		u.Stats.DEF += amount
	case "mag":
		u.Stats.MAG += amount
	case "res":
		u.Stats.RES += amount
	case "spd":
		u.Stats.SPD += amount
	case "mov":
		u.Stats.MOV += amount
	}
}
