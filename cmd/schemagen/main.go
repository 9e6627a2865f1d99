// schemagen генерирует JSON Schema проводного протокола (pkg/api)
// для фронтенда: клиентская команда и ответ сервера.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"tactics-server/pkg/api"
)

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "schemas", "directory to write JSON schemas")
	flag.Parse()

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	targets := []struct {
		name  string
		value any
		title string
	}{
		{"client_command", new(api.ClientCommand), "Tactics Client Command"},
		{"server_response", new(api.ServerResponse), "Tactics Server Response"},
		{"move_payload", new(api.MovePayload), "MOVE Payload"},
		{"ability_payload", new(api.AbilityPayload), "ABILITY Payload"},
		{"pass_payload", new(api.PassPayload), "PASS Payload"},
	}

	for _, t := range targets {
		schema := reflector.Reflect(t.value)
		schema.Title = t.title

		if err := writeSchema(filepath.Join(outDir, t.name+".schema.json"), schema); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", t.name, err)
			os.Exit(1)
		}
	}
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}

	return nil
}
