// Package api описывает проводной протокол между боевым сервером и
// клиентами (рендер/UI). Это чистые DTO без доменных зависимостей:
// по ним же cmd/schemagen генерирует JSON Schema для фронтенда.
package api

import "encoding/json"

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse — корневой объект сообщений сервера.
// Синхронизация - это полный снапшот списка юнитов плюс счётчики боя,
// не дельта-протокол: при каждом изменении состояния клиент получает всё.
type ServerResponse struct {
	// Type тип сообщения: INIT, UPDATE, MOVE_RANGE, RESULT.
	Type string `json:"type"`

	// ActiveUnitID ID юнита, чья сейчас активация. Пусто — никто не ходит,
	// сервер копит CT тиками.
	ActiveUnitID string `json:"activeUnitId,omitempty"`

	// TurnCount число завершённых активаций.
	TurnCount int `json:"turnCount"`

	// TickCount число "тихих" тиков планировщика.
	TickCount int `json:"tickCount"`

	// Grid размеры карты (шлётся в INIT).
	Grid *GridMeta `json:"grid,omitempty"`

	// Tiles террейн карты (шлётся в INIT; террейн в бою не меняется сам по себе).
	Tiles []TileView `json:"tiles,omitempty"`

	// Units полный список юнитов.
	Units []UnitView `json:"units,omitempty"`

	// Abilities каталог способностей (шлётся в INIT).
	Abilities []AbilityView `json:"abilities,omitempty"`

	// MoveRange ответ на команду MOVE_RANGE.
	MoveRange []PositionView `json:"moveRange,omitempty"`

	// Result итог команды (ABILITY, PASS, MOVE).
	Result *CommandResult `json:"result,omitempty"`
}

// GridMeta содержит размеры карты.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// PositionView — клетка поля.
type PositionView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TileView — DTO тайла для рендера.
type TileView struct {
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Height   int  `json:"height"`
	Passable bool `json:"passable"`
}

// UnitView — DTO юнита. Поля снапшота, на которые опирается клиент:
// идентичность, позиция, команда и боевые статы с CT.
type UnitView struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Job    string       `json:"job"`
	TeamID int          `json:"teamId"`
	Pos    PositionView `json:"pos"`
	Facing string       `json:"facing"`

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
	ATK   int `json:"atk"`
	DEF   int `json:"def"`
	MAG   int `json:"mag"`
	RES   int `json:"res"`
	SPD   int `json:"spd"`
	MOV   int `json:"mov"`
	MP    int `json:"mp"`
	MaxMP int `json:"maxMp"`
	CT    int `json:"ct"`

	ActionState string `json:"actionState"`
}

// AbilityView — DTO записи каталога способностей.
type AbilityView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	TargetType string `json:"targetType"`
	EffectKind string `json:"effectKind"`
	Range      int    `json:"range"`
	Radius     int    `json:"radius,omitempty"`
	Power      int    `json:"power"`
	Element    string `json:"element,omitempty"`
	MPCost     int    `json:"mpCost,omitempty"`
	Rarity     string `json:"rarity,omitempty"`
}

// EffectView — одно наблюдаемое изменение стата (урон/лечение/бафф).
type EffectView struct {
	UnitID string `json:"unitId"`
	Stat   string `json:"stat"`
	Before int    `json:"before"`
	After  int    `json:"after"`
	Delta  int    `json:"delta"`
}

// CommandResult — итог выполнения команды.
// Success=false всегда сопровождается машинной причиной Reason.
type CommandResult struct {
	Success bool         `json:"success"`
	Reason  string       `json:"reason,omitempty"`
	Effects []EffectView `json:"effects,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand — корневой объект сообщений клиента.
type ClientCommand struct {
	// Token идентификатор сессии клиента.
	Token string `json:"token,omitempty"`

	// Action название команды: INIT, TICK, MOVE, MOVE_RANGE, ABILITY, PASS.
	Action string `json:"action"`

	// Payload данные команды, структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// MovePayload — команда MOVE: юнит и целевая клетка.
type MovePayload struct {
	UnitID string `json:"unitId"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// MoveRangePayload — команда MOVE_RANGE.
type MoveRangePayload struct {
	UnitID string `json:"unitId"`
}

// AbilityPayload — команда ABILITY. Ровно одно из TargetUnitID/Target
// должно быть задано.
type AbilityPayload struct {
	ActorID      string        `json:"actorId"`
	AbilityID    string        `json:"abilityId"`
	TargetUnitID *string       `json:"targetUnitId,omitempty"`
	Target       *PositionView `json:"target,omitempty"`
}

// PassPayload — команда PASS: явная трата действия.
type PassPayload struct {
	UnitID string `json:"unitId"`
}
