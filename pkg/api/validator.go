package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO.
// Хендлеры прогоняют payload через Validate до вызова логики.
type Validator interface {
	Validate() error
}

func (p MovePayload) Validate() error {
	if p.UnitID == "" {
		return errors.New("unitId is required")
	}
	return nil
}

func (p MoveRangePayload) Validate() error {
	if p.UnitID == "" {
		return errors.New("unitId is required")
	}
	return nil
}

func (p AbilityPayload) Validate() error {
	if p.ActorID == "" {
		return errors.New("actorId is required")
	}
	if p.AbilityID == "" {
		return errors.New("abilityId is required")
	}
	return nil
}

func (p PassPayload) Validate() error {
	if p.UnitID == "" {
		return errors.New("unitId is required")
	}
	return nil
}
