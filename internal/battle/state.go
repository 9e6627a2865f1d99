package battle

import (
	"tactics-server/internal/domain"
)

// CTThreshold — порог накопления CT, при котором юнит получает активацию.
const CTThreshold = 100

// State — агрегат боя: карта + юниты + счётчики + активный юнит.
//
// Инвариант: ActiveUnitID не пуст ровно тогда, когда какой-то юнит
// накопил CT >= 100 и ещё не закончил свою активацию.
// TurnCount растёт на единицу за каждую завершённую активацию,
// TickCount — за каждый тик планировщика, в который никто не активировался.
type State struct {
	Map          *domain.GridMap
	Units        []*domain.Unit
	TurnCount    int
	TickCount    int
	ActiveUnitID domain.UnitID // "" — активного юнита нет
}

// NewState создает пустое состояние боя поверх карты.
func NewState(m *domain.GridMap) *State {
	return &State{
		Map:   m,
		Units: make([]*domain.Unit, 0),
	}
}

// AddUnit регистрирует юнита в бою. Дедупликации нет — это забота setup.
func (s *State) AddUnit(u *domain.Unit) {
	s.Units = append(s.Units, u)
}

// Unit возвращает юнита по ID или nil.
func (s *State) Unit(id domain.UnitID) *domain.Unit {
	for _, u := range s.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// ActiveUnit возвращает активного юнита или nil.
func (s *State) ActiveUnit() *domain.Unit {
	if s.ActiveUnitID == "" {
		return nil
	}
	return s.Unit(s.ActiveUnitID)
}

// LivingUnitAt возвращает живого юнита на клетке или nil.
// Трупы не блокируют клетку и здесь не учитываются.
func (s *State) LivingUnitAt(pos Position) *domain.Unit {
	for _, u := range s.Units {
		if u.Alive() && u.Pos == pos {
			return u
		}
	}
	return nil
}

// Clone возвращает глубокую копию состояния.
// Фасад исполняет способности на копии и коммитит её целиком при успехе —
// так "частично применённый" эффект не может стать наблюдаемым.
func (s *State) Clone() *State {
	cp := &State{
		Map:          s.cloneMap(),
		Units:        make([]*domain.Unit, len(s.Units)),
		TurnCount:    s.TurnCount,
		TickCount:    s.TickCount,
		ActiveUnitID: s.ActiveUnitID,
	}
	for i, u := range s.Units {
		cp.Units[i] = u.Clone()
	}
	return cp
}

func (s *State) cloneMap() *domain.GridMap {
	m := domain.NewGridMap(s.Map.Width(), s.Map.Height())
	for _, t := range s.Map.Tiles() {
		m.SetTileHeight(t.Pos, t.Height)
		m.SetTilePassable(t.Pos, t.Passable)
	}
	return m
}

// Position — алиас для краткости внутри пакета.
type Position = domain.Position
