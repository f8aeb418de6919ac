package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// applyOverrides merges any override files found in dir into base.
func applyOverrides(base *Config, dir string) (*Config, error) {
	overrides := []string{
		filepath.Join(dir, "mira.override.yml"),
		filepath.Join(dir, "mira.override.yaml"),
		filepath.Join(dir, ".mira.override.yml"),
		filepath.Join(dir, ".mira.override.yaml"),
	}

	result := base
	for _, overrideFile := range overrides {
		if _, err := os.Stat(overrideFile); err != nil {
			continue
		}

		data, err := os.ReadFile(overrideFile)
		if err != nil {
			continue
		}

		expanded := expandEnvVars(string(data))

		var override Config
		if err := yaml.Unmarshal([]byte(expanded), &override); err != nil {
			continue
		}

		result = mergeConfigs(result, &override)
	}

	return result, nil
}

// mergeConfigs merges override configuration into base. Scalar fields win
// when non-zero; the extensions map merges key by key.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	if override.Backend.Mode != "" {
		result.Backend.Mode = override.Backend.Mode
	}
	if override.Backend.URL != "" {
		result.Backend.URL = override.Backend.URL
	}
	if override.Backend.TimeoutSeconds > 0 {
		result.Backend.TimeoutSeconds = override.Backend.TimeoutSeconds
	}

	if override.Wizard.MinPhotos > 0 {
		result.Wizard.MinPhotos = override.Wizard.MinPhotos
	}
	if override.Wizard.MinIntents > 0 {
		result.Wizard.MinIntents = override.Wizard.MinIntents
	}
	if override.Wizard.MaxIntents > 0 {
		result.Wizard.MaxIntents = override.Wizard.MaxIntents
	}
	if override.Wizard.MinBio > 0 {
		result.Wizard.MinBio = override.Wizard.MinBio
	}
	if override.Wizard.MaxBio > 0 {
		result.Wizard.MaxBio = override.Wizard.MaxBio
	}
	if override.Wizard.GridCapacity > 0 {
		result.Wizard.GridCapacity = override.Wizard.GridCapacity
	}

	if override.Media.MediaDir != "" {
		result.Media.MediaDir = override.Media.MediaDir
	}
	if override.Media.ImportDir != "" {
		result.Media.ImportDir = override.Media.ImportDir
	}
	if len(override.Media.Exclude) > 0 {
		result.Media.Exclude = override.Media.Exclude
	}

	if override.Chat.HistoryPath != "" {
		result.Chat.HistoryPath = override.Chat.HistoryPath
	}
	if override.Chat.ResendPendingOnStart {
		result.Chat.ResendPendingOnStart = true
	}

	if override.TUI != nil {
		if result.TUI == nil {
			result.TUI = override.TUI
		} else {
			tui := *result.TUI
			if override.TUI.Theme != "" {
				tui.Theme = override.TUI.Theme
			}
			if override.TUI.Icons != "" {
				tui.Icons = override.TUI.Icons
			}
			if override.TUI.Preset != "" {
				tui.Preset = override.TUI.Preset
			}
			if override.TUI.Keybindings != nil {
				tui.Keybindings = override.TUI.Keybindings
			}
			result.TUI = &tui
		}
	}

	if len(override.Extensions) > 0 {
		if result.Extensions == nil {
			result.Extensions = make(map[string]interface{}, len(override.Extensions))
		} else {
			merged := make(map[string]interface{}, len(result.Extensions)+len(override.Extensions))
			for k, v := range result.Extensions {
				merged[k] = v
			}
			result.Extensions = merged
		}
		for k, v := range override.Extensions {
			result.Extensions[k] = v
		}
	}

	return &result
}
