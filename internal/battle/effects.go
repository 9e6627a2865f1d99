package battle

import "tactics-server/internal/domain"

// StatChange — одно наблюдаемое изменение характеристики юнита.
// Это то, что движок отдаёт слою отрисовки вместо событий изнутри
// способностей: рендеру достаточно дельт, чтобы показать урон/лечение/бафф.
type StatChange struct {
	UnitID domain.UnitID `json:"unitId"`
	Stat   string        `json:"stat"`
	Before int           `json:"before"`
	After  int           `json:"after"`
	Delta  int           `json:"delta"`
}

// statFields перечисляет отчётные поля. Любое изменение любого из них
// попадает в дифф — не только HP/MP.
var statFields = []struct {
	name string
	get  func(domain.Stats) int
}{
	{"hp", func(s domain.Stats) int { return s.HP }},
	{"maxHp", func(s domain.Stats) int { return s.MaxHP }},
	{"atk", func(s domain.Stats) int { return s.ATK }},
	{"def", func(s domain.Stats) int { return s.DEF }},
	{"mag", func(s domain.Stats) int { return s.MAG }},
	{"res", func(s domain.Stats) int { return s.RES }},
	{"spd", func(s domain.Stats) int { return s.SPD }},
	{"mov", func(s domain.Stats) int { return s.MOV }},
	{"jmp", func(s domain.Stats) int { return s.JMP }},
	{"mp", func(s domain.Stats) int { return s.MP }},
	{"maxMp", func(s domain.Stats) int { return s.MaxMP }},
	{"ct", func(s domain.Stats) int { return s.CT }},
}

// DiffEffects сравнивает статы юнитов двух состояний (до/после применения
// способности) и возвращает список изменений в порядке юнитов состояния before.
func DiffEffects(before, after *State) []StatChange {
	changes := make([]StatChange, 0)
	for _, prev := range before.Units {
		next := after.Unit(prev.ID)
		if next == nil {
			continue
		}
		for _, f := range statFields {
			b := f.get(prev.Stats)
			a := f.get(next.Stats)
			if a != b {
				changes = append(changes, StatChange{
					UnitID: prev.ID,
					Stat:   f.name,
					Before: b,
					After:  a,
					Delta:  a - b,
				})
			}
		}
	}
	return changes
}
