package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultAbilities(t *testing.T) {
	defs, err := LoadAbilityDefinitions("")
	if err != nil {
		t.Fatalf("LoadAbilityDefinitions failed: %v", err)
	}
	if len(defs) == 0 {
		t.Fatal("Expected non-empty default catalog")
	}

	byID := make(map[string]bool, len(defs))
	for _, def := range defs {
		if def.ID == "" || def.Type == "" {
			t.Errorf("Catalog entry missing id or type: %+v", def)
		}
		byID[string(def.ID)] = true
	}
	for _, id := range []string{"sword_slash", "fireball", "heal", "potion"} {
		if !byID[id] {
			t.Errorf("Expected %s in the default catalog", id)
		}
	}
}

func TestLoadDefaultBattle(t *testing.T) {
	cfg, err := LoadBattleConfig("")
	if err != nil {
		t.Fatalf("LoadBattleConfig failed: %v", err)
	}
	if cfg.Map.Width != 13 || cfg.Map.Height != 13 {
		t.Errorf("Expected 13x13 default map, got %dx%d", cfg.Map.Width, cfg.Map.Height)
	}
	if len(cfg.Units) != 6 {
		t.Errorf("Expected 6 units in the default roster, got %d", len(cfg.Units))
	}
	for _, uc := range cfg.Units {
		if uc.Name == "" || uc.Job == "" {
			t.Errorf("Roster entry missing name or job: %+v", uc)
		}
		if uc.Pos.X < 0 || uc.Pos.X >= cfg.Map.Width || uc.Pos.Y < 0 || uc.Pos.Y >= cfg.Map.Height {
			t.Errorf("Unit %s deployed out of bounds at %v", uc.Name, uc.Pos)
		}
	}
}

func TestLoadAbilitiesValidation(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		return p
	}

	if _, err := LoadAbilityDefinitions(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := LoadAbilityDefinitions(write("empty.yaml", "abilities: []")); err == nil {
		t.Error("Expected error for empty catalog")
	}
	if _, err := LoadAbilityDefinitions(write("noid.yaml", "abilities:\n  - name: Nameless\n    type: WEAPON")); err == nil {
		t.Error("Expected error for ability without id")
	}
	dup := "abilities:\n  - id: x\n    type: WEAPON\n  - id: x\n    type: MAGIC"
	if _, err := LoadAbilityDefinitions(write("dup.yaml", dup)); err == nil {
		t.Error("Expected error for duplicate ability id")
	}
	if _, err := LoadAbilityDefinitions(write("garbage.yaml", "{{{")); err == nil {
		t.Error("Expected error for malformed yaml")
	}
}

func TestLoadBattleValidation(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		return p
	}

	badSize := "map:\n  width: 0\n  height: 13\nunits:\n  - name: A\n    job: KNIGHT"
	if _, err := LoadBattleConfig(write("size.yaml", badSize)); err == nil {
		t.Error("Expected error for zero map width")
	}
	noUnits := "map:\n  width: 5\n  height: 5\nunits: []"
	if _, err := LoadBattleConfig(write("empty.yaml", noUnits)); err == nil {
		t.Error("Expected error for empty roster")
	}
}
