// Package storage пишет и читает журнал боя — бинарную ленту принятых
// команд. Журнал не save-файл: это лог для детерминированного
// воспроизведения и разбора сессии постфактум.
package storage

import (
	"encoding/json"

	"tactics-server/internal/domain"
)

// JournalEntry — одна принятая команда.
type JournalEntry struct {
	Tick    int
	Turn    int
	Action  domain.ActionType
	Token   string
	Payload json.RawMessage
}

// Journal — лента команд одной боевой сессии.
type Journal struct {
	StartedAt int64 // unix seconds
	Entries   []JournalEntry
}

// NewJournal создает пустой журнал.
func NewJournal(startedAt int64) *Journal {
	return &Journal{
		StartedAt: startedAt,
		Entries:   make([]JournalEntry, 0),
	}
}

// Record добавляет команду в ленту.
func (j *Journal) Record(tick, turn int, cmd domain.InternalCommand) {
	j.Entries = append(j.Entries, JournalEntry{
		Tick:    tick,
		Turn:    turn,
		Action:  cmd.Action,
		Token:   cmd.Token,
		Payload: cmd.Payload,
	})
}
