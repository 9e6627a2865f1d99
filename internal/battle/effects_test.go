package battle

import (
	"testing"

	"tactics-server/internal/domain"
)

func TestDiffEffects(t *testing.T) {
	before := NewState(domain.NewGridMap(5, 5))
	a := newTestUnit("a", domain.JobKnight, 0, Position{X: 0, Y: 0})
	b := newTestUnit("b", domain.JobMage, 1, Position{X: 1, Y: 0})
	before.AddUnit(a)
	before.AddUnit(b)

	after := before.Clone()
	after.Unit("a").Stats.HP -= 38
	after.Unit("b").Stats.MP -= 5
	after.Unit("b").Stats.ATK += 4

	changes := DiffEffects(before, after)
	if len(changes) != 3 {
		t.Fatalf("Expected 3 stat changes, got %d: %v", len(changes), changes)
	}

	// Порядок: по юнитам состояния before, внутри юнита — по списку полей.
	hp := changes[0]
	if hp.UnitID != "a" || hp.Stat != "hp" || hp.Delta != -38 || hp.Before-hp.After != 38 {
		t.Errorf("Unexpected hp change: %+v", hp)
	}
	atk := changes[1]
	if atk.UnitID != "b" || atk.Stat != "atk" || atk.Delta != 4 {
		t.Errorf("Unexpected atk change: %+v", atk)
	}
	mp := changes[2]
	if mp.UnitID != "b" || mp.Stat != "mp" || mp.Delta != -5 {
		t.Errorf("Unexpected mp change: %+v", mp)
	}
}

func TestDiffEffectsNoChanges(t *testing.T) {
	before := NewState(domain.NewGridMap(3, 3))
	before.AddUnit(newTestUnit("a", domain.JobKnight, 0, Position{}))

	changes := DiffEffects(before, before.Clone())
	if len(changes) != 0 {
		t.Errorf("Expected empty diff for identical states, got %v", changes)
	}
}

func TestStateCloneIsolation(t *testing.T) {
	s := NewState(domain.NewGridMap(4, 4))
	u := newTestUnit("a", domain.JobKnight, 0, Position{X: 1, Y: 1})
	s.AddUnit(u)
	s.Map.SetTilePassable(Position{X: 2, Y: 2}, false)
	s.ActiveUnitID = u.ID

	cp := s.Clone()
	cp.Unit("a").Stats.HP = 1
	cp.Unit("a").MoveTo(Position{X: 3, Y: 3})
	cp.Map.SetTilePassable(Position{X: 2, Y: 2}, true)
	cp.ActiveUnitID = ""
	cp.TurnCount = 99

	if u.Stats.HP == 1 || u.Pos != (Position{X: 1, Y: 1}) {
		t.Error("Clone must not share units with the original")
	}
	if s.Map.TileAt(Position{X: 2, Y: 2}).Passable {
		t.Error("Clone must not share the map with the original")
	}
	if s.ActiveUnitID != u.ID || s.TurnCount == 99 {
		t.Error("Clone must not share counters with the original")
	}
}
