package actions

import (
	"tactics-server/internal/domain"
	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
)

// HandlePass — явный пас: юнит тратит действие без эффекта.
func HandlePass(ctx handlers.Context, p api.PassPayload) (handlers.Result, error) {
	res := ctx.Service.MarkActionUsed(domain.UnitID(p.UnitID))

	reply := ctx.Service.Snapshot(false)
	reply.Type = "RESULT"
	reply.Result = &api.CommandResult{
		Success: res.Success,
		Reason:  string(res.Reason),
	}

	return handlers.Result{Reply: reply, StateChanged: res.Success}, nil
}
