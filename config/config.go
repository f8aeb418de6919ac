package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/miralabs/mira/errors"
	"github.com/miralabs/mira/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Config file names searched in a directory, in priority order.
var configFileNames = []string{"mira.yml", "mira.yaml", "mira.toml"}

// Load reads and parses a Mira configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	return LoadFromBytes(data, strings.HasSuffix(path, ".toml"))
}

// LoadFromBytes parses configuration data, expands environment variables,
// applies defaults, and validates the result.
func LoadFromBytes(data []byte, isTOML bool) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if isTOML {
		if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML config")
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML config")
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDefault loads configuration with hierarchical merging:
// 1. Global config (~/.config/mira/mira.yml) - base layer
// 2. Project config (mira.yml, walking up from the current directory)
// 3. Local override (mira.override.yml) - overrides all
// A completely absent configuration is not an error; defaults apply.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the
// given directory.
func LoadFrom(startDir string) (*Config, error) {
	var finalConfig *Config

	// 1. Global config (optional)
	if globalPath := globalConfigPath(); globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			if global, err := loadRaw(globalPath); err == nil {
				finalConfig = global
			}
		}
	}

	// 2. Project config (optional; defaults-only operation is supported)
	projectPath, err := FindConfigFile(startDir)
	if err == nil {
		project, err := loadRaw(projectPath)
		if err != nil {
			return nil, err
		}
		if finalConfig == nil {
			finalConfig = project
		} else {
			finalConfig = mergeConfigs(finalConfig, project)
		}

		// 3. Local overrides next to the project config
		merged, err := applyOverrides(finalConfig, filepath.Dir(projectPath))
		if err != nil {
			return nil, err
		}
		finalConfig = merged
	}

	if finalConfig == nil {
		finalConfig = &Config{}
	}

	finalConfig.ApplyDefaults()
	if err := finalConfig.Validate(); err != nil {
		return nil, err
	}

	return finalConfig, nil
}

// loadRaw reads and parses a config file without defaults or validation,
// so layers merge before either applies.
func loadRaw(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config").
			WithDetail("path", path)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if strings.HasSuffix(path, ".toml") {
		if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config").
				WithDetail("path", path)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config").
				WithDetail("path", path)
		}
	}

	return &cfg, nil
}

// FindConfigFile walks up from startDir looking for a config file.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(filepath.Join(startDir, configFileNames[0]))
		}
		dir = parent
	}
}

// globalConfigPath returns the path of the global config file, or empty.
func globalConfigPath() string {
	configDir := paths.ConfigDir()
	if configDir == "" {
		return ""
	}
	for _, name := range configFileNames {
		candidate := filepath.Join(configDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(configDir, configFileNames[0])
}

// expandEnvVars replaces ${VAR} references with environment values.
// Unset variables expand to the empty string.
func expandEnvVars(input string) string {
	return envVarRegex.ReplaceAllStringFunc(input, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}
