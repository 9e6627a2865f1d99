// Package content загружает игровые данные: каталог способностей и
// конфигурацию стартового боя. Данные лежат в YAML — их правит гейм-дизайн,
// код только валидирует. Дефолтные файлы вшиты в бинарник через go:embed,
// внешние можно подложить флагом при запуске.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tactics-server/internal/ability"
	"tactics-server/internal/domain"
)

//go:embed abilities.yaml
var defaultAbilitiesYAML []byte

//go:embed battle.yaml
var defaultBattleYAML []byte

// abilitiesFile — корневая структура abilities.yaml.
type abilitiesFile struct {
	Abilities []ability.Definition `yaml:"abilities"`
}

// TerrainCell — одна правка террейна поверх плоской карты.
type TerrainCell struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Height int `yaml:"height"`
}

// MapConfig — размеры карты и правки террейна.
type MapConfig struct {
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	Walls   []TerrainCell `yaml:"walls"`
	Heights []TerrainCell `yaml:"heights"`
}

// UnitConfig — описание одного юнита ростера.
type UnitConfig struct {
	Name   string                   `yaml:"name"`
	Job    domain.Job               `yaml:"job"`
	Team   int                      `yaml:"team"`
	Pos    domain.Position          `yaml:"pos"`
	Weapon domain.AbilityID         `yaml:"weapon"`
	Magic  []domain.AbilityID       `yaml:"magic"`
	Items  map[domain.AbilityID]int `yaml:"items"`
}

// BattleConfig — конфигурация стартового боя.
type BattleConfig struct {
	Map   MapConfig    `yaml:"map"`
	Units []UnitConfig `yaml:"units"`
}

// LoadAbilityDefinitions читает каталог способностей.
// Пустой path означает вшитый файл по умолчанию.
func LoadAbilityDefinitions(path string) ([]ability.Definition, error) {
	raw := defaultAbilitiesYAML
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read abilities file: %w", err)
		}
	}

	var file abilitiesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse abilities yaml: %w", err)
	}
	if len(file.Abilities) == 0 {
		return nil, fmt.Errorf("ability catalog is empty")
	}

	seen := make(map[domain.AbilityID]bool, len(file.Abilities))
	for _, def := range file.Abilities {
		if def.ID == "" {
			return nil, fmt.Errorf("ability without id in catalog")
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("duplicate ability id %q", def.ID)
		}
		seen[def.ID] = true
	}
	return file.Abilities, nil
}

// LoadBattleConfig читает конфигурацию боя.
// Пустой path означает вшитый файл по умолчанию.
func LoadBattleConfig(path string) (*BattleConfig, error) {
	raw := defaultBattleYAML
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read battle file: %w", err)
		}
	}

	var cfg BattleConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse battle yaml: %w", err)
	}
	if cfg.Map.Width <= 0 || cfg.Map.Height <= 0 {
		return nil, fmt.Errorf("battle map has invalid size %dx%d", cfg.Map.Width, cfg.Map.Height)
	}
	if len(cfg.Units) == 0 {
		return nil, fmt.Errorf("battle roster is empty")
	}
	return &cfg, nil
}
