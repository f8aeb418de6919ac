// Package state persists small key/value app state across process restarts.
//
// Every key is written independently through a load-modify-save cycle, and
// the file is replaced atomically, so a crash mid-write loses at most the
// key being written and never corrupts previously persisted keys.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/miralabs/mira/pkg/paths"
	"gopkg.in/yaml.v3"
)

// State represents the local Mira state as a generic map of key-value pairs.
// This allows any Mira component to store arbitrary state data.
type State map[string]interface{}

// stateFilePath returns the path to the state file, state.yml in the
// Mira state directory.
func stateFilePath() (string, error) {
	dir := paths.StateDir()
	if dir == "" {
		return "", fmt.Errorf("cannot resolve state directory")
	}
	return filepath.Join(dir, "state.yml"), nil
}

// Load loads the state from the state file.
// Returns an empty state if the file doesn't exist.
func Load() (State, error) {
	path, err := stateFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty state if file doesn't exist
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	if state == nil {
		state = make(State)
	}

	return state, nil
}

// Save saves the state to the state file. The write goes through a temp
// file and rename so readers never observe a half-written file.
func Save(state State) error {
	path, err := stateFilePath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.yml")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close state file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}

// Get retrieves a value from the state by key.
// Returns the value and true if found, nil and false otherwise.
func Get(key string) (interface{}, bool, error) {
	state, err := Load()
	if err != nil {
		return nil, false, err
	}

	val, ok := state[key]
	return val, ok, nil
}

// GetString is a convenience function to get a string value from state.
// Returns empty string if the key doesn't exist or the value is not a string.
func GetString(key string) (string, error) {
	val, ok, err := Get(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", nil
	}

	return str, nil
}

// GetBool is a convenience function to get a boolean value from state.
// Returns false if the key doesn't exist or the value is not a bool.
func GetBool(key string) (bool, error) {
	val, ok, err := Get(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	b, ok := val.(bool)
	if !ok {
		return false, nil
	}

	return b, nil
}

// GetInt is a convenience function to get an integer value from state.
// Returns 0 if the key doesn't exist or the value is not an integer.
func GetInt(key string) (int, error) {
	val, ok, err := Get(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	switch n := val.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, nil
}

// GetStringSlice is a convenience function to get a string slice from state.
// Returns nil if the key doesn't exist or the value is not a sequence of
// strings.
func GetStringSlice(key string) ([]string, error) {
	val, ok, err := Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	// YAML round-trips sequences as []interface{}
	raw, ok := val.([]interface{})
	if !ok {
		if ss, ok := val.([]string); ok {
			return ss, nil
		}
		return nil, nil
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, nil
		}
		out = append(out, s)
	}
	return out, nil
}

// Set sets a value in the state.
func Set(key string, value interface{}) error {
	state, err := Load()
	if err != nil {
		return err
	}

	state[key] = value
	return Save(state)
}

// SetMany sets several values in the state with a single load/save cycle.
// Used where two keys must land together, such as the photo id/url pair.
func SetMany(values map[string]interface{}) error {
	state, err := Load()
	if err != nil {
		return err
	}

	for k, v := range values {
		state[k] = v
	}
	return Save(state)
}

// Delete removes a key from the state.
func Delete(key string) error {
	state, err := Load()
	if err != nil {
		return err
	}

	delete(state, key)
	return Save(state)
}
