package actions

import (
	"tactics-server/internal/domain"
	"tactics-server/internal/engine"
	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
)

// HandleAbility применяет команду ABILITY {actorId, abilityId, цель}.
// Перевод на границе: строковые ID из JSON превращаются в доменные,
// опциональная цель — в пару указателей для фасада.
func HandleAbility(ctx handlers.Context, p api.AbilityPayload) (handlers.Result, error) {
	var targetUnit *domain.UnitID
	if p.TargetUnitID != nil {
		id := domain.UnitID(*p.TargetUnitID)
		targetUnit = &id
	}

	var targetPos *domain.Position
	if p.Target != nil {
		pos := domain.Position{X: p.Target.X, Y: p.Target.Y}
		targetPos = &pos
	}

	res := ctx.Service.ExecuteAbility(
		domain.UnitID(p.ActorID),
		domain.AbilityID(p.AbilityID),
		targetUnit,
		targetPos,
	)

	reply := ctx.Service.Snapshot(false)
	reply.Type = "RESULT"
	reply.Result = &api.CommandResult{
		Success: res.Success,
		Reason:  string(res.Reason),
		Effects: engine.EffectViews(res.Effects),
	}

	return handlers.Result{Reply: reply, StateChanged: res.Success}, nil
}
