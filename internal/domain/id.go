package domain

import (
	"crypto/rand"
	"encoding/hex"
)

// UnitID — непрозрачный уникальный идентификатор юнита.
type UnitID string

func (id UnitID) String() string { return string(id) }

// GenerateID создает простой уникальный ID (замена UUID для снижения зависимостей)
func GenerateID() UnitID {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return UnitID(hex.EncodeToString(b))
}
