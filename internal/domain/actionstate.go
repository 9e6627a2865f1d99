package domain

// ActionState — состояние юнита в рамках текущей активации.
//
// Машина состояний хода:
//
//	Idle → {Moved | ActionUsed} → TurnEnded
//
// Юнит получает ровно одно перемещение и одно действие за активацию,
// в любом порядке. Использовать оба — или любое из них дважды —
// значит закончить ход. TurnEnded терминально до следующей активации,
// когда фасад возвращает юнита в Idle.
type ActionState uint8

const (
	ActionStateIdle ActionState = iota
	ActionStateMoved
	ActionStateActionUsed
	ActionStateTurnEnded
)

var actionStateNames = map[ActionState]string{
	ActionStateIdle:       "IDLE",
	ActionStateMoved:      "MOVED",
	ActionStateActionUsed: "ACTION_USED",
	ActionStateTurnEnded:  "TURN_ENDED",
}

func (s ActionState) String() string {
	if name, ok := actionStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// NextAfterMove возвращает состояние после перемещения.
func (s ActionState) NextAfterMove() ActionState {
	switch s {
	case ActionStateIdle:
		return ActionStateMoved
	default:
		// Повторное перемещение или перемещение после действия заканчивает ход.
		return ActionStateTurnEnded
	}
}

// NextAfterAction возвращает состояние после действия (способность или пас).
func (s ActionState) NextAfterAction() ActionState {
	switch s {
	case ActionStateIdle:
		return ActionStateActionUsed
	default:
		return ActionStateTurnEnded
	}
}
