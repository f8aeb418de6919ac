package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateOperations(t *testing.T) {
	// Point MIRA_HOME at a temp directory so state lands in isolation
	tmpDir := t.TempDir()
	t.Setenv("MIRA_HOME", tmpDir)

	t.Run("Load empty state", func(t *testing.T) {
		state, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if state == nil {
			t.Fatal("Load() returned nil state")
		}
		if len(state) != 0 {
			t.Errorf("Load() returned non-empty state: %v", state)
		}
	})

	t.Run("Set and Get string value", func(t *testing.T) {
		key := "test.key"
		value := "test-value"

		if err := Set(key, value); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := GetString(key)
		if err != nil {
			t.Fatalf("GetString() error = %v", err)
		}
		if got != value {
			t.Errorf("GetString() = %v, want %v", got, value)
		}
	})

	t.Run("Get with generic Get function", func(t *testing.T) {
		key := "test.another"
		value := "another-value"

		if err := Set(key, value); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, ok, err := Get(key)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok {
			t.Fatal("Get() returned ok=false")
		}
		if got != value {
			t.Errorf("Get() = %v, want %v", got, value)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		got, ok, err := Get("non.existent")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("Get() returned ok=true for non-existent key")
		}
		if got != nil {
			t.Errorf("Get() = %v, want nil", got)
		}
	})

	t.Run("Bool round-trip", func(t *testing.T) {
		if err := Set("room.muted", true); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, err := GetBool("room.muted")
		if err != nil {
			t.Fatalf("GetBool() error = %v", err)
		}
		if !got {
			t.Error("GetBool() = false, want true")
		}

		// Missing key defaults to false
		got, err = GetBool("room.missing")
		if err != nil {
			t.Fatalf("GetBool() error = %v", err)
		}
		if got {
			t.Error("GetBool() for missing key = true, want false")
		}
	})

	t.Run("String slice round-trip", func(t *testing.T) {
		want := []string{"http://a.jpg", "http://b.jpg"}
		if err := Set("wizard.photo_urls", want); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := GetStringSlice("wizard.photo_urls")
		if err != nil {
			t.Fatalf("GetStringSlice() error = %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("GetStringSlice() len = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("GetStringSlice()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("SetMany lands keys together", func(t *testing.T) {
		err := SetMany(map[string]interface{}{
			"wizard.photo_ids":  []string{"p1", "p2"},
			"wizard.photo_urls": []string{"http://1.jpg", "http://2.jpg"},
		})
		if err != nil {
			t.Fatalf("SetMany() error = %v", err)
		}

		ids, err := GetStringSlice("wizard.photo_ids")
		if err != nil {
			t.Fatalf("GetStringSlice() error = %v", err)
		}
		urls, err := GetStringSlice("wizard.photo_urls")
		if err != nil {
			t.Fatalf("GetStringSlice() error = %v", err)
		}
		if len(ids) != 2 || len(urls) != 2 {
			t.Errorf("SetMany() persisted %d ids, %d urls; want 2, 2", len(ids), len(urls))
		}
	})

	t.Run("Delete key", func(t *testing.T) {
		key := "test.delete"
		value := "to-be-deleted"

		// Set a value
		if err := Set(key, value); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		// Verify it exists
		_, ok, err := Get(key)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok {
			t.Fatal("Get() returned ok=false after Set()")
		}

		// Delete it
		if err := Delete(key); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		// Verify it's gone
		_, ok, err = Get(key)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("Get() returned ok=true after Delete()")
		}
	})

	t.Run("State file location", func(t *testing.T) {
		// Set a value to ensure state file is created
		if err := Set("test.location", "value"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		// Check that state file exists under $MIRA_HOME/state/mira/state.yml
		statePath := filepath.Join(tmpDir, "state", "mira", "state.yml")
		if _, err := os.Stat(statePath); os.IsNotExist(err) {
			t.Errorf("state file not found at %s", statePath)
		}

		// No stray temp files should remain after atomic writes
		entries, err := os.ReadDir(filepath.Dir(statePath))
		if err != nil {
			t.Fatalf("read state dir: %v", err)
		}
		for _, e := range entries {
			if e.Name() != "state.yml" {
				t.Errorf("unexpected file in state dir: %s", e.Name())
			}
		}
	})
}
