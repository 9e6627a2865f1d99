package engine

import "tactics-server/internal/battle"

// Reason — типизированная причина отказа. Ядро не паникует на нарушении
// правил: любой нелегальный запрос возвращается с причиной в результате.
type Reason string

const (
	ReasonNone Reason = ""

	// Порядок проверок ExecuteAbility (short-circuit, см. Service.ExecuteAbility):
	ReasonSourceUnitNotFound Reason = "source_unit_not_found"
	ReasonAbilityNotFound    Reason = "ability_not_found"
	ReasonNotActiveUnit      Reason = "not_active_unit"
	ReasonTurnAlreadyEnded   Reason = "turn_already_ended"
	ReasonCannotUseAbility   Reason = "cannot_use_ability"
	ReasonTargetUnitNotFound Reason = "target_unit_not_found"
	ReasonNoTargetSpecified  Reason = "no_target_specified"
	ReasonInvalidTarget      Reason = "invalid_target"

	// Сбои внутри способности (panic в ValidateTarget/Execute) гасятся
	// на границе фасада; состояние боя остаётся нетронутым.
	ReasonTargetValidationError Reason = "target_validation_error"
	ReasonExecutionError        Reason = "execution_error"
)

// AbilityResult — итог ExecuteAbility.
// Effects: наблюдаемые дельты статов (до/после), по ним рендер показывает
// урон, лечение и баффы, не заглядывая внутрь способностей.
type AbilityResult struct {
	Success bool                `json:"success"`
	Reason  Reason              `json:"reason,omitempty"`
	Effects []battle.StatChange `json:"effects,omitempty"`
}

// ActionResult — итог явного паса (MarkActionUsed).
type ActionResult struct {
	Success bool   `json:"success"`
	Reason  Reason `json:"reason,omitempty"`
}

func abilityFailure(reason Reason) AbilityResult {
	return AbilityResult{Success: false, Reason: reason}
}
