package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the editor configuration.
// Search order: customPath -> ~/.leveleditor/configs/editor.yaml -> ./configs/editor.yaml -> embedded default
// Files are merged over the defaults, so a partial file only overrides
// the keys it sets.
func Load(customPath string) (EditorConfig, error) {
	cfg := baseConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Normalize()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("editor.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				cfg.Normalize()
				return cfg, nil
			}
			cfg = baseConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/editor.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			cfg.Normalize()
			return cfg, nil
		}
		cfg = baseConfig()
	}

	cfg.Normalize()
	return cfg, nil
}

// baseConfig returns the embedded default YAML, or the hardcoded
// defaults if the embed cannot be parsed.
func baseConfig() EditorConfig {
	var cfg EditorConfig
	if err := yaml.Unmarshal(defaultEditorYAML, &cfg); err != nil {
		return DefaultEditorConfig()
	}
	return cfg
}

// Marshal renders cfg as YAML.
func Marshal(cfg EditorConfig) ([]byte, error) {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".leveleditor", "configs", filename)
}
