package actions

import (
	"tactics-server/internal/engine/handlers"
)

// HandleInit отдаёт клиенту полный снапшот: террейн, каталог, юниты.
// Состояние не меняет и хода не тратит.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{Reply: ctx.Service.Snapshot(true)}, nil
}
