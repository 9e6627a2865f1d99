package actions

import (
	"tactics-server/internal/domain"
	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
)

// HandleMoveRange отдаёт клиенту легальные клетки перемещения юнита
// (подсветка на карте). Состояние не меняет.
func HandleMoveRange(ctx handlers.Context, p api.MoveRangePayload) (handlers.Result, error) {
	cells := ctx.Service.UnitMoveRange(domain.UnitID(p.UnitID))

	views := make([]api.PositionView, 0, len(cells))
	for _, c := range cells {
		views = append(views, api.PositionView{X: c.X, Y: c.Y})
	}

	return handlers.Result{
		Reply: &api.ServerResponse{
			Type:      "MOVE_RANGE",
			MoveRange: views,
		},
	}, nil
}
