package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OverrideLayer is one override file that contributed to the final config.
type OverrideLayer struct {
	Path   string
	Config *Config
}

// LayeredConfig exposes each configuration layer separately, for the
// config-layers debugging command. Final is the merged result the rest of
// the app sees.
type LayeredConfig struct {
	Global    *Config
	Project   *Config
	Overrides []OverrideLayer
	Final     *Config
	FilePaths map[ConfigSource]string
}

// LoadLayered loads each config layer without merging them away, then
// produces the same final config LoadFrom would.
func LoadLayered(startDir string) (*LayeredConfig, error) {
	layered := &LayeredConfig{
		FilePaths: make(map[ConfigSource]string),
	}

	if globalPath := globalConfigPath(); globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			global, err := loadRaw(globalPath)
			if err == nil {
				layered.Global = global
				layered.FilePaths[SourceGlobal] = globalPath
			}
		}
	}

	projectPath, err := FindConfigFile(startDir)
	if err == nil {
		project, err := loadRaw(projectPath)
		if err != nil {
			return nil, err
		}
		layered.Project = project
		layered.FilePaths[SourceProject] = projectPath

		dir := filepath.Dir(projectPath)
		for _, name := range []string{"mira.override.yml", "mira.override.yaml", ".mira.override.yml", ".mira.override.yaml"} {
			overridePath := filepath.Join(dir, name)
			data, err := os.ReadFile(overridePath)
			if err != nil {
				continue
			}
			var override Config
			if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &override); err != nil {
				continue
			}
			layered.Overrides = append(layered.Overrides, OverrideLayer{
				Path:   overridePath,
				Config: &override,
			})
		}
	}

	final, err := LoadFrom(startDir)
	if err != nil {
		return nil, err
	}
	layered.Final = final

	return layered, nil
}
