package actions

import (
	"tactics-server/internal/engine/handlers"
)

// HandleTick продвигает планировщик на один шаг по запросу клиента.
// Обычно тики гонит серверный таймер, но headless-клиенты (тесты, боты)
// могут вести симуляцию сами.
func HandleTick(ctx handlers.Context) (handlers.Result, error) {
	ctx.Service.ProcessTick()
	return handlers.Result{StateChanged: true}, nil
}
