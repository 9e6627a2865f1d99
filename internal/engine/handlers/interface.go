package handlers

import (
	"encoding/json"

	"tactics-server/internal/engine"
	"tactics-server/pkg/api"
)

// Context передает хендлеру фасад боевой сессии.
// Хендлеры не трогают состояние напрямую — только через операции Service.
type Context struct {
	Service *engine.Service
}

// Result - результат выполнения команды.
// Reply уходит лично отправителю; StateChanged=true означает, что всем
// подписчикам нужно разослать свежий снапшот.
type Result struct {
	Reply        *api.ServerResponse
	StateChanged bool
}

// HandlerFunc - это контракт для любой команды (MOVE, ABILITY, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого ответа
func EmptyResult() Result {
	return Result{}
}
