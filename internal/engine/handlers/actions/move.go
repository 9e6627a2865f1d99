package actions

import (
	"tactics-server/internal/domain"
	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
)

// HandleMove применяет команду MOVE {unitId, x, y} через фасад.
// Вся легальность (активный юнит, дальность, занятость) уже внутри
// Service.MoveUnit: здесь только перевод DTO и упаковка результата.
func HandleMove(ctx handlers.Context, p api.MovePayload) (handlers.Result, error) {
	target := domain.Position{X: p.X, Y: p.Y}
	ok := ctx.Service.MoveUnit(domain.UnitID(p.UnitID), target)

	reply := ctx.Service.Snapshot(false)
	reply.Type = "RESULT"
	reply.Result = &api.CommandResult{Success: ok}
	if !ok {
		reply.Result.Reason = "illegal_move"
	}

	return handlers.Result{Reply: reply, StateChanged: ok}, nil
}
