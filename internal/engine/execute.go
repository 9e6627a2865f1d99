package engine

import (
	"github.com/sirupsen/logrus"

	"tactics-server/internal/ability"
	"tactics-server/internal/battle"
	"tactics-server/internal/domain"
)

// ExecuteAbility применяет способность actor'а.
//
// Предусловия проверяются строго по порядку, short-circuit, каждое со своей
// причиной: актор существует → способность в каталоге → ход актора →
// ход не закончен → CanUse → цель указана и разрешается → ValidateTarget.
//
// Успешное применение исполняется на КОПИИ состояния и коммитится целиком;
// panic внутри способности гасится и возвращается как execution_error /
// target_validation_error, исходное состояние при этом не меняется.
func (s *Service) ExecuteAbility(
	actorID domain.UnitID,
	abilityID domain.AbilityID,
	targetUnit *domain.UnitID,
	targetPos *domain.Position,
) AbilityResult {
	actor := s.state.Unit(actorID)
	if actor == nil {
		return abilityFailure(ReasonSourceUnitNotFound)
	}

	ab := s.registry.Get(abilityID)
	if ab == nil {
		return abilityFailure(ReasonAbilityNotFound)
	}

	if s.state.ActiveUnitID != actorID {
		return abilityFailure(ReasonNotActiveUnit)
	}

	if actor.ActionState == domain.ActionStateTurnEnded {
		return abilityFailure(ReasonTurnAlreadyEnded)
	}

	if !ab.CanUse(actor, s.state) {
		return abilityFailure(ReasonCannotUseAbility)
	}

	target, reason := s.resolveTarget(ab, targetUnit, targetPos)
	if reason != ReasonNone {
		return abilityFailure(reason)
	}

	valid, panicked := s.safeValidateTarget(ab, actor, target)
	if panicked {
		return abilityFailure(ReasonTargetValidationError)
	}
	if !valid {
		return abilityFailure(ReasonInvalidTarget)
	}

	// Применяем на копии: частично применённый эффект не должен быть
	// наблюдаем ни при ошибке, ни при панике внутри Execute.
	next := s.state.Clone()
	if ok := s.safeExecute(ab, next.Unit(actorID), target, next); !ok {
		return abilityFailure(ReasonExecutionError)
	}

	effects := battle.DiffEffects(s.state, next)
	s.state = next

	actor = s.state.Unit(actorID)
	actor.ActionState = actor.ActionState.NextAfterAction()
	if actor.ActionState == domain.ActionStateTurnEnded {
		s.state.CompleteActivation(actor)
	}

	s.log.WithFields(logrus.Fields{
		"actor_id": actorID,
		"ability":  abilityID,
		"effects":  len(effects),
		"state":    actor.ActionState.String(),
	}).Info("Ability resolved")

	return AbilityResult{Success: true, Effects: effects}
}

// resolveTarget превращает пару опциональных аргументов в TargetRef.
// Должен быть задан ровно один из них. Клетка для одиночных способностей
// разрешается в стоящего на ней живого юнита.
func (s *Service) resolveTarget(
	ab ability.Ability,
	targetUnit *domain.UnitID,
	targetPos *domain.Position,
) (domain.TargetRef, Reason) {
	var zero domain.TargetRef

	if targetUnit == nil && targetPos == nil {
		return zero, ReasonNoTargetSpecified
	}
	if targetUnit != nil && targetPos != nil {
		// Двусмысленный запрос: считаем, что цель не указана корректно.
		return zero, ReasonNoTargetSpecified
	}

	if targetUnit != nil {
		if s.state.Unit(*targetUnit) == nil {
			return zero, ReasonTargetUnitNotFound
		}
		return domain.UnitTarget(*targetUnit), ReasonNone
	}

	if ab.Def().TargetType.IsArea() {
		return domain.PositionTarget(*targetPos), ReasonNone
	}

	occupant := s.state.LivingUnitAt(*targetPos)
	if occupant == nil {
		return zero, ReasonTargetUnitNotFound
	}
	return domain.UnitTarget(occupant.ID), ReasonNone
}

// safeValidateTarget вызывает ValidateTarget под recover.
func (s *Service) safeValidateTarget(ab ability.Ability, actor *domain.Unit, target domain.TargetRef) (valid, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"ability": ab.Def().ID,
				"panic":   r,
			}).Error("Ability target validation panicked")
			valid, panicked = false, true
		}
	}()
	return ab.ValidateTarget(actor, target, s.state), false
}

// safeExecute вызывает Execute на копии состояния под recover.
func (s *Service) safeExecute(ab ability.Ability, actor *domain.Unit, target domain.TargetRef, next *battle.State) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"ability": ab.Def().ID,
				"panic":   r,
			}).Error("Ability execution panicked")
			ok = false
		}
	}()

	if err := ab.Execute(actor, target, next); err != nil {
		s.log.WithError(err).WithField("ability", ab.Def().ID).Warn("Ability execution failed")
		return false
	}
	return true
}
