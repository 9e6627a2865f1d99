package ability

import (
	"fmt"
	"sort"

	"tactics-server/internal/domain"
	"tactics-server/pkg/logger"
)

// Registry — каталог способностей одной боевой сессии.
// Заполняется при setup и явными вызовами Register; после этого только
// читается. Ядро однопоточное, синхронизация не нужна.
type Registry struct {
	abilities map[domain.AbilityID]Ability
}

// NewRegistry создает пустой каталог.
func NewRegistry() *Registry {
	return &Registry{abilities: make(map[domain.AbilityID]Ability)}
}

// Register кладёт способность в каталог. Повторная регистрация того же ID
// заменяет запись — это осознанная точка расширения для модов/отладки.
func (r *Registry) Register(a Ability) error {
	def := a.Def()
	if def.ID == "" {
		return fmt.Errorf("ability has empty id")
	}
	if _, exists := r.abilities[def.ID]; exists {
		logger.WithComponent("ability_registry").
			WithField("ability_id", def.ID).
			Warn("Re-registering ability, previous definition replaced")
	}
	r.abilities[def.ID] = a
	return nil
}

// Get возвращает способность по ID или nil.
func (r *Registry) Get(id domain.AbilityID) Ability {
	return r.abilities[id]
}

// All возвращает все способности, отсортированные по ID (детерминизм для
// снапшотов и тестов).
func (r *Registry) All() []Ability {
	out := make([]Ability, 0, len(r.abilities))
	for _, a := range r.abilities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Def().ID < out[j].Def().ID
	})
	return out
}

// Len возвращает размер каталога.
func (r *Registry) Len() int {
	return len(r.abilities)
}

// FromDefinition конструирует способность нужного конкретного типа.
func FromDefinition(def Definition) (Ability, error) {
	switch def.Type {
	case TypeWeapon:
		return NewWeapon(def), nil
	case TypeMagic:
		return NewMagic(def), nil
	case TypeItem:
		return NewItem(def), nil
	case TypePassive:
		return NewPassive(def), nil
	default:
		return nil, fmt.Errorf("unknown ability type %q for %s", def.Type, def.ID)
	}
}
