package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

//go:generate go run ../tools/config-schema-generator/

// BackendConfig selects and configures the data source. The mode is chosen
// once at startup; components receive the selected client and never branch
// on it themselves.
type BackendConfig struct {
	// Mode is "demo" (in-memory fixtures) or "live" (websocket backend).
	Mode string `yaml:"mode,omitempty" toml:"mode,omitempty" jsonschema:"description=Data source mode: demo or live,enum=demo,enum=live"`
	// URL is the websocket endpoint for live mode.
	URL string `yaml:"url,omitempty" toml:"url,omitempty" jsonschema:"description=Websocket endpoint for live mode"`
	// TimeoutSeconds bounds each backend round-trip.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty" jsonschema:"description=Per-request timeout in seconds"`
}

// WizardConfig carries the step-completion thresholds for the
// private-profile setup flow.
type WizardConfig struct {
	MinPhotos    int `yaml:"min_photos,omitempty" toml:"min_photos,omitempty" jsonschema:"description=Minimum selected photos to pass the photo step"`
	MinIntents   int `yaml:"min_intents,omitempty" toml:"min_intents,omitempty" jsonschema:"description=Minimum chosen intents"`
	MaxIntents   int `yaml:"max_intents,omitempty" toml:"max_intents,omitempty" jsonschema:"description=Maximum chosen intents"`
	MinBio       int `yaml:"min_bio,omitempty" toml:"min_bio,omitempty" jsonschema:"description=Minimum bio length in characters after trimming"`
	MaxBio       int `yaml:"max_bio,omitempty" toml:"max_bio,omitempty" jsonschema:"description=Maximum bio length in characters after trimming"`
	GridCapacity int `yaml:"grid_capacity,omitempty" toml:"grid_capacity,omitempty" jsonschema:"description=Photo grid slot count"`
}

// MediaConfig configures the media library and the import watcher.
type MediaConfig struct {
	// MediaDir overrides the permanent media library directory.
	MediaDir string `yaml:"media_dir,omitempty" toml:"media_dir,omitempty" jsonschema:"description=Permanent media library directory"`
	// ImportDir overrides the watched import directory.
	ImportDir string `yaml:"import_dir,omitempty" toml:"import_dir,omitempty" jsonschema:"description=Directory watched for incoming photos"`
	// Exclude lists dockerignore-style patterns for files the import
	// watcher must skip (thumbnails, sidecar files).
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty" jsonschema:"description=Patterns the import watcher skips"`
}

// ChatConfig configures message history and the send path.
type ChatConfig struct {
	// HistoryPath overrides the history database location.
	HistoryPath string `yaml:"history_path,omitempty" toml:"history_path,omitempty" jsonschema:"description=Path to the chat history database"`
	// ResendPendingOnStart replays queued outbox messages at startup.
	ResendPendingOnStart bool `yaml:"resend_pending_on_start,omitempty" toml:"resend_pending_on_start,omitempty" jsonschema:"description=Replay queued outbox messages at startup"`
}

// KeybindingSectionConfig maps an action name to the key sequences bound
// to it, e.g. up: ["k", "up"].
type KeybindingSectionConfig map[string][]string

// KeybindingsConfig holds keybinding overrides, grouped the way help
// screens group them, plus per-TUI overrides keyed by "package" then
// "tui" name.
type KeybindingsConfig struct {
	Navigation KeybindingSectionConfig                       `yaml:"navigation,omitempty" toml:"navigation,omitempty" jsonschema:"description=Navigation key overrides"`
	Selection  KeybindingSectionConfig                       `yaml:"selection,omitempty" toml:"selection,omitempty" jsonschema:"description=Selection key overrides"`
	Actions    KeybindingSectionConfig                       `yaml:"actions,omitempty" toml:"actions,omitempty" jsonschema:"description=Action key overrides"`
	Search     KeybindingSectionConfig                       `yaml:"search,omitempty" toml:"search,omitempty" jsonschema:"description=Search key overrides"`
	View       KeybindingSectionConfig                       `yaml:"view,omitempty" toml:"view,omitempty" jsonschema:"description=View key overrides"`
	Fold       KeybindingSectionConfig                       `yaml:"fold,omitempty" toml:"fold,omitempty" jsonschema:"description=Fold key overrides"`
	System     KeybindingSectionConfig                       `yaml:"system,omitempty" toml:"system,omitempty" jsonschema:"description=System key overrides"`
	Overrides  map[string]map[string]KeybindingSectionConfig `yaml:"overrides,omitempty" toml:"overrides,omitempty" jsonschema:"description=Per-TUI key overrides"`
}

// TUIConfig configures terminal rendering and keybindings.
type TUIConfig struct {
	// Theme selects the color palette (kanagawa, gruvbox, terminal).
	Theme string `yaml:"theme,omitempty" toml:"theme,omitempty" jsonschema:"description=Color theme name"`
	// Icons is "nerd" (default) or "ascii".
	Icons string `yaml:"icons,omitempty" toml:"icons,omitempty" jsonschema:"description=Icon set: nerd or ascii"`
	// Preset selects the base keymap (vim, emacs, arrows).
	Preset      string             `yaml:"preset,omitempty" toml:"preset,omitempty" jsonschema:"description=Keymap preset: vim emacs or arrows"`
	Keybindings *KeybindingsConfig `yaml:"keybindings,omitempty" toml:"keybindings,omitempty" jsonschema:"description=Keybinding overrides"`
}

// Config is the root of mira.yml.
type Config struct {
	Version string        `yaml:"version" toml:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`
	Backend BackendConfig `yaml:"backend,omitempty" toml:"backend,omitempty" jsonschema:"description=Data source selection"`
	Wizard  WizardConfig  `yaml:"wizard,omitempty" toml:"wizard,omitempty" jsonschema:"description=Wizard step thresholds"`
	Media   MediaConfig   `yaml:"media,omitempty" toml:"media,omitempty" jsonschema:"description=Media library and import watcher"`
	Chat    ChatConfig    `yaml:"chat,omitempty" toml:"chat,omitempty" jsonschema:"description=Chat history and send behaviour"`
	TUI     *TUIConfig    `yaml:"tui,omitempty" toml:"tui,omitempty" jsonschema:"description=Terminal rendering and keybindings"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// ApplyDefaults fills in product defaults for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Backend.Mode == "" {
		c.Backend.Mode = "demo"
	}
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = 15
	}
	if c.Wizard.MinPhotos <= 0 {
		c.Wizard.MinPhotos = 2
	}
	if c.Wizard.MinIntents <= 0 {
		c.Wizard.MinIntents = 1
	}
	if c.Wizard.MaxIntents <= 0 {
		c.Wizard.MaxIntents = 3
	}
	if c.Wizard.MinBio <= 0 {
		c.Wizard.MinBio = 30
	}
	if c.Wizard.MaxBio <= 0 {
		c.Wizard.MaxBio = 300
	}
	if c.Wizard.GridCapacity <= 0 {
		c.Wizard.GridCapacity = 9
	}
}

// UnmarshalExtension decodes a specific extension's configuration from the
// generic Extensions map into a strongly-typed target struct.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// ConfigSource identifies the origin of a configuration value.
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceGlobal  ConfigSource = "global"
	SourceProject ConfigSource = "project"
	SourceLocal   ConfigSource = "local"
)
