package engine

import (
	"errors"
	"testing"

	"tactics-server/internal/ability"
	"tactics-server/internal/battle"
	"tactics-server/internal/domain"
)

// fireballDuel расставляет мага (team 0) и жреца (team 1, res 25) на
// дистанции 3 и отдаёт ход магу.
func fireballDuel(t *testing.T) (*Service, *domain.Unit, *domain.Unit) {
	t.Helper()
	svc := newTestService(t)
	mage := deploy(svc, "mage", domain.JobMage, 0, domain.Position{X: 2, Y: 2})
	priest := deploy(svc, "priest", domain.JobPriest, 1, domain.Position{X: 5, Y: 2})
	svc.state.ActiveUnitID = mage.ID
	return svc, mage, priest
}

// Fireball (power 20, mpCost 5) мага (mag 30) по жрецу (res 25):
// 30 + 20 - 25/2 = 38 урона с усечением при делении, 5 маны с кастера.
func TestExecuteFireball(t *testing.T) {
	svc, mage, priest := fireballDuel(t)
	hpBefore := priest.Stats.HP
	mpBefore := mage.Stats.MP

	target := priest.ID
	res := svc.ExecuteAbility(mage.ID, "fireball", &target, nil)
	if !res.Success {
		t.Fatalf("Expected success, got reason %q", res.Reason)
	}

	// Юниты пересоздаются коммитом копии — перечитываем из состояния.
	mage = svc.state.Unit("mage")
	priest = svc.state.Unit("priest")

	if got := hpBefore - priest.Stats.HP; got != 38 {
		t.Errorf("Expected 38 damage, got %d", got)
	}
	if mage.Stats.MP != mpBefore-5 {
		t.Errorf("Expected MP %d, got %d", mpBefore-5, mage.Stats.MP)
	}
	if mage.ActionState != domain.ActionStateActionUsed {
		t.Errorf("Expected ACTION_USED, got %v", mage.ActionState)
	}
	if svc.state.ActiveUnitID != mage.ID {
		t.Error("Ability from IDLE must not end the activation")
	}

	// Эффекты: дельта HP жреца и дельта MP мага, оба видимы рендеру.
	var sawHP, sawMP bool
	for _, e := range res.Effects {
		if e.UnitID == "priest" && e.Stat == "hp" && e.Delta == -38 {
			sawHP = true
		}
		if e.UnitID == "mage" && e.Stat == "mp" && e.Delta == -5 {
			sawMP = true
		}
	}
	if !sawHP || !sawMP {
		t.Errorf("Expected hp and mp deltas in effects, got %+v", res.Effects)
	}
}

// Запрос чужим юнитом отклоняется с not_active_unit и не трогает состояние.
func TestExecuteNotActiveUnit(t *testing.T) {
	svc, mage, priest := fireballDuel(t)
	svc.state.ActiveUnitID = priest.ID

	hpBefore := priest.Stats.HP
	mpBefore := mage.Stats.MP

	target := priest.ID
	res := svc.ExecuteAbility(mage.ID, "fireball", &target, nil)
	if res.Success || res.Reason != ReasonNotActiveUnit {
		t.Fatalf("Expected not_active_unit, got %+v", res)
	}
	if priest.Stats.HP != hpBefore || mage.Stats.MP != mpBefore {
		t.Error("Rejected request must not change any stats")
	}
	if mage.ActionState != domain.ActionStateIdle {
		t.Error("Rejected request must not consume the action")
	}
}

// Порядок предусловий строгий: каждая более ранняя проверка перекрывает
// все последующие.
func TestExecutePreconditionOrder(t *testing.T) {
	svc, mage, priest := fireballDuel(t)
	target := priest.ID

	// Неизвестный актор перекрывает неизвестную способность.
	if res := svc.ExecuteAbility("ghost", "no_such", &target, nil); res.Reason != ReasonSourceUnitNotFound {
		t.Errorf("Expected source_unit_not_found, got %q", res.Reason)
	}

	// Неизвестная способность перекрывает "не твой ход".
	if res := svc.ExecuteAbility(priest.ID, "no_such", &target, nil); res.Reason != ReasonAbilityNotFound {
		t.Errorf("Expected ability_not_found, got %q", res.Reason)
	}

	// "Не твой ход" перекрывает нехватку маны.
	priest.Stats.MP = 0
	if res := svc.ExecuteAbility(priest.ID, "fireball", &target, nil); res.Reason != ReasonNotActiveUnit {
		t.Errorf("Expected not_active_unit, got %q", res.Reason)
	}

	// Законченный ход перекрывает CanUse.
	mage.Stats.MP = 0
	mage.ActionState = domain.ActionStateTurnEnded
	if res := svc.ExecuteAbility(mage.ID, "fireball", &target, nil); res.Reason != ReasonTurnAlreadyEnded {
		t.Errorf("Expected turn_already_ended, got %q", res.Reason)
	}

	// CanUse перекрывает таргетинг.
	mage.ActionState = domain.ActionStateIdle
	if res := svc.ExecuteAbility(mage.ID, "fireball", nil, nil); res.Reason != ReasonCannotUseAbility {
		t.Errorf("Expected cannot_use_ability, got %q", res.Reason)
	}

	// Таргетинг: цель не указана вовсе.
	mage.Stats.MP = 40
	if res := svc.ExecuteAbility(mage.ID, "fireball", nil, nil); res.Reason != ReasonNoTargetSpecified {
		t.Errorf("Expected no_target_specified, got %q", res.Reason)
	}

	// Двусмысленный запрос (оба аргумента) — тоже no_target_specified.
	pos := priest.Pos
	if res := svc.ExecuteAbility(mage.ID, "fireball", &target, &pos); res.Reason != ReasonNoTargetSpecified {
		t.Errorf("Expected no_target_specified for ambiguous target, got %q", res.Reason)
	}

	// Несуществующая цель.
	ghost := domain.UnitID("ghost")
	if res := svc.ExecuteAbility(mage.ID, "fireball", &ghost, nil); res.Reason != ReasonTargetUnitNotFound {
		t.Errorf("Expected target_unit_not_found, got %q", res.Reason)
	}

	// Пустая клетка для одиночной способности.
	empty := domain.Position{X: 3, Y: 3}
	if res := svc.ExecuteAbility(mage.ID, "fireball", nil, &empty); res.Reason != ReasonTargetUnitNotFound {
		t.Errorf("Expected target_unit_not_found for empty cell, got %q", res.Reason)
	}

	// Живая, но нелегальная цель (союзник для SINGLE_ENEMY).
	self := mage.ID
	if res := svc.ExecuteAbility(mage.ID, "fireball", &self, nil); res.Reason != ReasonInvalidTarget {
		t.Errorf("Expected invalid_target, got %q", res.Reason)
	}

	// Вне дальности.
	priest.MoveTo(domain.Position{X: 9, Y: 9})
	if res := svc.ExecuteAbility(mage.ID, "fireball", &target, nil); res.Reason != ReasonInvalidTarget {
		t.Errorf("Expected invalid_target for out-of-range, got %q", res.Reason)
	}
}

// Площадная способность принимает клетку напрямую, без разрешения в юнита.
func TestExecuteAreaByPosition(t *testing.T) {
	svc := newTestService(t)
	mage := deploy(svc, "mage", domain.JobMage, 0, domain.Position{X: 2, Y: 2})
	foe1 := deploy(svc, "foe1", domain.JobKnight, 1, domain.Position{X: 4, Y: 2})
	foe2 := deploy(svc, "foe2", domain.JobKnight, 1, domain.Position{X: 4, Y: 3})
	svc.state.ActiveUnitID = mage.ID

	anchor := domain.Position{X: 4, Y: 2}
	res := svc.ExecuteAbility(mage.ID, "ice_nova", nil, &anchor)
	if !res.Success {
		t.Fatalf("Expected area cast to succeed, got reason %q", res.Reason)
	}

	if svc.state.Unit(foe1.ID).Stats.HP == foe1.Stats.MaxHP ||
		svc.state.Unit(foe2.ID).Stats.HP == foe2.Stats.MaxHP {
		t.Error("Both enemies inside the nova radius must take damage")
	}
}

// --- Изоляция сбоев внутри способностей ---

type faultyAbility struct {
	def           ability.Definition
	panicValidate bool
	panicExecute  bool
	failExecute   bool
}

func (f *faultyAbility) Def() ability.Definition { return f.def }

func (f *faultyAbility) CanUse(actor *domain.Unit, _ *battle.State) bool { return actor.Alive() }

func (f *faultyAbility) ValidateTarget(_ *domain.Unit, _ domain.TargetRef, _ *battle.State) bool {
	if f.panicValidate {
		panic("validation exploded")
	}
	return true
}

func (f *faultyAbility) Execute(actor *domain.Unit, target domain.TargetRef, s *battle.State) error {
	// Частичная мутация до сбоя: она не должна пережить откат.
	if t := s.Unit(target.UnitID); t != nil {
		t.TakeDamage(10)
	}
	if f.panicExecute {
		panic("execution exploded")
	}
	if f.failExecute {
		return errors.New("scripted failure")
	}
	return nil
}

func TestExecutePanicIsolation(t *testing.T) {
	cases := []struct {
		name   string
		fault  *faultyAbility
		reason Reason
	}{
		{"panic in validate", &faultyAbility{panicValidate: true}, ReasonTargetValidationError},
		{"panic in execute", &faultyAbility{panicExecute: true}, ReasonExecutionError},
		{"error from execute", &faultyAbility{failExecute: true}, ReasonExecutionError},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc, mage, priest := fireballDuel(t)
			c.fault.def = ability.Definition{ID: "cursed", Type: ability.TypeMagic, TargetType: ability.TargetSingleAny, Range: 5}
			if err := svc.RegisterAbility(c.fault); err != nil {
				t.Fatalf("RegisterAbility failed: %v", err)
			}

			hpBefore := priest.Stats.HP
			target := priest.ID
			res := svc.ExecuteAbility(mage.ID, "cursed", &target, nil)
			if res.Success || res.Reason != c.reason {
				t.Fatalf("Expected %q, got %+v", c.reason, res)
			}
			if svc.state.Unit(priest.ID).Stats.HP != hpBefore {
				t.Error("Failed execution must leave the original state untouched")
			}
			if svc.state.Unit(mage.ID).ActionState != domain.ActionStateIdle {
				t.Error("Failed execution must not consume the action")
			}
			if svc.state.ActiveUnitID != mage.ID {
				t.Error("Failed execution must keep the activation open")
			}
		})
	}
}

// Предмет: заряд списывается только при успешном применении.
func TestExecuteItemCharges(t *testing.T) {
	svc := newTestService(t)
	knight := deploy(svc, "knight", domain.JobKnight, 0, domain.Position{X: 3, Y: 3})
	knight.Stats.HP = 50
	knight.Inventory["potion"] = 1
	svc.state.ActiveUnitID = knight.ID

	target := knight.ID
	res := svc.ExecuteAbility(knight.ID, "potion", &target, nil)
	if !res.Success {
		t.Fatalf("Expected potion to succeed, got reason %q", res.Reason)
	}

	knight = svc.state.Unit("knight")
	if knight.Stats.HP != 80 {
		t.Errorf("Expected HP 80 after potion, got %d", knight.Stats.HP)
	}
	if knight.ItemCount("potion") != 0 {
		t.Errorf("Expected potion consumed, got %d charges", knight.ItemCount("potion"))
	}

	// Без зарядов применение блокируется CanUse.
	svc.state.ActiveUnitID = knight.ID
	knight.ActionState = domain.ActionStateIdle
	res = svc.ExecuteAbility(knight.ID, "potion", &target, nil)
	if res.Success || res.Reason != ReasonCannotUseAbility {
		t.Errorf("Expected cannot_use_ability with no charges, got %+v", res)
	}
}
