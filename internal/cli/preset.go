package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset pre-fills a run from a YAML file:
//
//	kind: wifi
//	caption: false
//	values:
//	  ssid: home
//	  password: secret
type Preset struct {
	Kind    string            `yaml:"kind"`
	Caption *bool             `yaml:"caption"`
	Values  map[string]string `yaml:"values"`
}

// LoadPreset reads and parses a preset file
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("cli: read preset %s: %w", path, err)
	}
	return ParsePreset(data)
}

// ParsePreset parses preset YAML. Unknown top-level keys are rejected.
func ParsePreset(data []byte) (Preset, error) {
	var preset Preset
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Preset{}, fmt.Errorf("cli: parse preset: %w", err)
	}
	if len(node.Content) == 0 {
		return preset, nil
	}
	if err := node.Content[0].Decode(&preset); err != nil {
		return Preset{}, fmt.Errorf("cli: decode preset: %w", err)
	}
	if err := checkPresetKeys(node.Content[0]); err != nil {
		return Preset{}, err
	}
	return preset, nil
}

func checkPresetKeys(root *yaml.Node) error {
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("cli: preset must be a mapping")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		switch key := root.Content[i].Value; key {
		case "kind", "caption", "values":
		default:
			return fmt.Errorf("cli: unknown preset key %q (line %d)", key, root.Content[i].Line)
		}
	}
	return nil
}
