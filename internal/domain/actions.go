package domain

import "strings"

// ActionType - Внутренний числовой идентификатор команды от клиента.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionTick
	ActionMove
	ActionMoveRange
	ActionAbility
	ActionPass
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":       ActionInit,
	"TICK":       ActionTick,
	"MOVE":       ActionMove,
	"MOVE_RANGE": ActionMoveRange,
	"ABILITY":    ActionAbility,
	"PASS":       ActionPass,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:      "INIT",
	ActionTick:      "TICK",
	ActionMove:      "MOVE",
	ActionMoveRange: "MOVE_RANGE",
	ActionAbility:   "ABILITY",
	ActionPass:      "PASS",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Нечувствительно к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
