package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadFromBytesDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("version: \"1.0\"\n"), false)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Backend.Mode)
	assert.Equal(t, 15, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, 2, cfg.Wizard.MinPhotos)
	assert.Equal(t, 1, cfg.Wizard.MinIntents)
	assert.Equal(t, 3, cfg.Wizard.MaxIntents)
	assert.Equal(t, 30, cfg.Wizard.MinBio)
	assert.Equal(t, 300, cfg.Wizard.MaxBio)
	assert.Equal(t, 9, cfg.Wizard.GridCapacity)
}

func TestLoadFromBytesTOML(t *testing.T) {
	data := `
version = "1.0"

[backend]
mode = "live"
url = "wss://api.example.com/ws"
`
	cfg, err := LoadFromBytes([]byte(data), true)
	require.NoError(t, err)
	assert.Equal(t, "live", cfg.Backend.Mode)
	assert.Equal(t, "wss://api.example.com/ws", cfg.Backend.URL)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad mode", "version: \"1.0\"\nbackend:\n  mode: staging\n"},
		{"live without url", "version: \"1.0\"\nbackend:\n  mode: live\n"},
		{"intents range inverted", "version: \"1.0\"\nwizard:\n  min_intents: 4\n  max_intents: 2\n"},
		{"bio range inverted", "version: \"1.0\"\nwizard:\n  min_bio: 100\n  max_bio: 50\n"},
		{"min photos over capacity", "version: \"1.0\"\nwizard:\n  min_photos: 12\n  grid_capacity: 9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yaml), false)
			assert.Error(t, err)
		})
	}
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("MIRA_TEST_URL", "wss://env.example.com/ws")

	data := "version: \"1.0\"\nbackend:\n  mode: live\n  url: ${MIRA_TEST_URL}\n"
	cfg, err := LoadFromBytes([]byte(data), false)
	require.NoError(t, err)
	assert.Equal(t, "wss://env.example.com/ws", cfg.Backend.URL)
}

func TestLoadFromLayering(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("MIRA_HOME", home)

	// Global layer sets a live backend and a bio minimum
	writeFile(t, filepath.Join(home, "config", "mira", "mira.yml"),
		"version: \"1.0\"\nbackend:\n  mode: live\n  url: wss://global.example.com/ws\nwizard:\n  min_bio: 40\n")

	// Project layer overrides the bio minimum
	writeFile(t, filepath.Join(project, "mira.yml"),
		"version: \"1.0\"\nwizard:\n  min_bio: 50\n")

	// Local override wins for the backend URL
	writeFile(t, filepath.Join(project, "mira.override.yml"),
		"backend:\n  url: wss://local.example.com/ws\n")

	cfg, err := LoadFrom(project)
	require.NoError(t, err)

	assert.Equal(t, "live", cfg.Backend.Mode)
	assert.Equal(t, "wss://local.example.com/ws", cfg.Backend.URL)
	assert.Equal(t, 50, cfg.Wizard.MinBio)
	// Unset fields still pick up defaults
	assert.Equal(t, 9, cfg.Wizard.GridCapacity)
}

func TestLoadFromWithoutAnyConfig(t *testing.T) {
	t.Setenv("MIRA_HOME", t.TempDir())

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Backend.Mode)
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))
	writeFile(t, filepath.Join(root, "mira.yml"), "version: \"1.0\"\n")

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "mira.yml"), found)
}

func TestUnmarshalExtension(t *testing.T) {
	data := `
version: "1.0"
logging:
  level: debug
  report_caller: true
`
	cfg, err := LoadFromBytes([]byte(data), false)
	require.NoError(t, err)

	var logCfg struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.True(t, logCfg.ReportCaller)

	// Missing extensions leave the target zero-valued
	var missing struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("absent", &missing))
	assert.Empty(t, missing.Level)
}

func TestSchemaValidator(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	good := &Config{Version: "1.0"}
	good.ApplyDefaults()
	assert.NoError(t, v.Validate(good))

	bad := &Config{Version: "1.0", Backend: BackendConfig{Mode: "staging", TimeoutSeconds: 5}}
	assert.Error(t, v.Validate(bad))
}
