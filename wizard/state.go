// Package wizard implements the gated multi-step private-profile setup flow:
// the persisted state store, the per-step completion predicates, and the
// resumability guard that decides where the flow re-enters after a restart.
package wizard

import (
	"crypto/sha1"
	"encoding/hex"
	"sync"

	"github.com/miralabs/mira/errors"
	"github.com/miralabs/mira/logging"
	"github.com/miralabs/mira/state"
	"github.com/sirupsen/logrus"
)

// Persisted state keys. Each field is written independently so a crash
// between writes loses at most the last field update.
const (
	keyPhotoIDs  = "wizard.photo_ids"
	keyPhotoURLs = "wizard.photo_urls"
	keyBlur      = "wizard.blur_my_photo"
	keyIntents   = "wizard.intent_keys"
	keyBio       = "wizard.private_bio"
	keyStep      = "wizard.current_step"
	keyComplete  = "wizard.setup_complete"
	keyImported  = "wizard.phase1_imported"
)

// State is the accumulated wizard state for the private-profile setup.
// SelectedPhotoIDs and SelectedPhotoURLs are index-aligned: same length,
// same order, always.
type State struct {
	SelectedPhotoIDs  []string
	SelectedPhotoURLs []string
	BlurMyPhoto       bool
	IntentKeys        []string
	PrivateBio        string
	CurrentStep       Step
	SetupComplete     bool
}

// Snapshot is a read-only copy of the store's state plus hydration status.
// Gating logic must check HasHydrated before acting on the rest.
type Snapshot struct {
	State
	HasHydrated bool
}

// Store is the single process-wide holder of in-progress wizard state.
// Each setter touches only its own field and persists it immediately;
// no two steps own the same field.
type Store struct {
	mu       sync.Mutex
	st       State
	hydrated bool
	imported bool
	failed   map[string]bool
	log      *logrus.Entry
}

// NewStore creates an empty, un-hydrated wizard store.
func NewStore() *Store {
	return &Store{
		failed: make(map[string]bool),
		log:    logging.NewLogger("wizard"),
	}
}

// Hydrate loads previously persisted wizard state into the store. It is
// called once at startup; calling it again is a no-op. Persistence errors
// leave the store empty but still mark it hydrated, so a missing state
// file behaves as a fresh start rather than blocking the flow forever.
func (s *Store) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return nil
	}

	ids, err := state.GetStringSlice(keyPhotoIDs)
	if err != nil {
		s.hydrated = true
		return errors.StateCorrupt(keyPhotoIDs, err)
	}
	urls, _ := state.GetStringSlice(keyPhotoURLs)

	// The pair is persisted together; a mismatch means a torn historical
	// write, so drop the selection rather than surface misaligned arrays.
	if len(ids) != len(urls) {
		s.log.WithFields(logrus.Fields{"ids": len(ids), "urls": len(urls)}).
			Warn("Dropping misaligned persisted photo selection")
		ids, urls = nil, nil
	}

	s.st.SelectedPhotoIDs = ids
	s.st.SelectedPhotoURLs = urls
	s.st.BlurMyPhoto, _ = state.GetBool(keyBlur)
	s.st.IntentKeys, _ = state.GetStringSlice(keyIntents)
	s.st.PrivateBio, _ = state.GetString(keyBio)
	step, _ := state.GetInt(keyStep)
	s.st.CurrentStep = Step(step)
	s.st.SetupComplete, _ = state.GetBool(keyComplete)
	s.imported, _ = state.GetBool(keyImported)

	s.hydrated = true
	s.log.WithField("complete", s.st.SetupComplete).Debug("Wizard state hydrated")
	return nil
}

// Snapshot returns a copy of the current state. Slices are copied so
// callers can never mutate store internals through a snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.copyStateLocked(), HasHydrated: s.hydrated}
}

func (s *Store) copyStateLocked() State {
	cp := s.st
	cp.SelectedPhotoIDs = append([]string(nil), s.st.SelectedPhotoIDs...)
	cp.SelectedPhotoURLs = append([]string(nil), s.st.SelectedPhotoURLs...)
	cp.IntentKeys = append([]string(nil), s.st.IntentKeys...)
	return cp
}

// FailedURLs returns a copy of the set of photo URLs whose load has failed
// this session. The set is not persisted; a restart retries every URL.
func (s *Store) FailedURLs() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.failed))
	for k, v := range s.failed {
		out[k] = v
	}
	return out
}

// SetSelectedPhotos replaces both photo arrays atomically. Callers must
// pass them index-aligned; a length mismatch is rejected so the two arrays
// can never be observed out of sync.
func (s *Store) SetSelectedPhotos(ids, urls []string) error {
	if len(ids) != len(urls) {
		return errors.PhotosMisaligned(len(ids), len(urls))
	}

	s.mu.Lock()
	s.st.SelectedPhotoIDs = append([]string(nil), ids...)
	s.st.SelectedPhotoURLs = append([]string(nil), urls...)
	s.mu.Unlock()

	return state.SetMany(map[string]interface{}{
		keyPhotoIDs:  ids,
		keyPhotoURLs: urls,
	})
}

// SetIntentKeys replaces the chosen intent set. Duplicates are dropped,
// first occurrence wins, order preserved for display.
func (s *Store) SetIntentKeys(keys []string) error {
	seen := make(map[string]bool, len(keys))
	deduped := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, k)
	}

	s.mu.Lock()
	s.st.IntentKeys = deduped
	s.mu.Unlock()

	return state.Set(keyIntents, deduped)
}

// SetPrivateBio replaces the free-text bio.
func (s *Store) SetPrivateBio(text string) error {
	s.mu.Lock()
	s.st.PrivateBio = text
	s.mu.Unlock()
	return state.Set(keyBio, text)
}

// SetBlurMyPhoto sets the blur display preference.
func (s *Store) SetBlurMyPhoto(blur bool) error {
	s.mu.Lock()
	s.st.BlurMyPhoto = blur
	s.mu.Unlock()
	return state.Set(keyBlur, blur)
}

// SetCurrentStep records the last-entered step. Used for resumability and
// analytics, never for gating.
func (s *Store) SetCurrentStep(step Step) error {
	s.mu.Lock()
	s.st.CurrentStep = step
	s.mu.Unlock()
	return state.Set(keyStep, int(step))
}

// CompleteSetup marks setup as finished. It is the only operation allowed
// to set the flag and is idempotent: a second call observes the flag
// already set and performs no further writes.
func (s *Store) CompleteSetup() error {
	s.mu.Lock()
	if s.st.SetupComplete {
		s.mu.Unlock()
		return nil
	}
	s.st.SetupComplete = true
	s.mu.Unlock()

	s.log.Info("Private profile setup complete")
	return state.Set(keyComplete, true)
}

// ImportPhase1Data seeds the wizard selection from an externally chosen
// photo list exactly once. Repeated calls, including across restarts, are
// no-ops so re-renders never duplicate the import.
func (s *Store) ImportPhase1Data(urls []string) error {
	s.mu.Lock()
	if s.imported {
		s.mu.Unlock()
		return nil
	}
	s.imported = true

	ids := make([]string, 0, len(urls))
	kept := make([]string, 0, len(urls))
	for _, u := range urls {
		if !ValidPhotoURL(u) {
			continue
		}
		ids = append(ids, PhotoID(u))
		kept = append(kept, u)
	}
	s.st.SelectedPhotoIDs = ids
	s.st.SelectedPhotoURLs = kept
	s.mu.Unlock()

	s.log.WithField("count", len(kept)).Debug("Imported phase-1 photos")

	if err := state.Set(keyImported, true); err != nil {
		return err
	}
	return state.SetMany(map[string]interface{}{
		keyPhotoIDs:  ids,
		keyPhotoURLs: kept,
	})
}

// MarkPhotoFailed records a URL whose image failed to load. The URL stops
// counting toward step completion and is pruned from the live selection so
// a stale selection never silently persists.
func (s *Store) MarkPhotoFailed(url string) error {
	s.mu.Lock()
	s.failed[url] = true

	ids := make([]string, 0, len(s.st.SelectedPhotoIDs))
	urls := make([]string, 0, len(s.st.SelectedPhotoURLs))
	removed := false
	for i, u := range s.st.SelectedPhotoURLs {
		if u == url {
			removed = true
			continue
		}
		ids = append(ids, s.st.SelectedPhotoIDs[i])
		urls = append(urls, u)
	}
	s.st.SelectedPhotoIDs = ids
	s.st.SelectedPhotoURLs = urls
	s.mu.Unlock()

	if !removed {
		return nil
	}
	s.log.WithField("url", url).Warn("Pruned failed photo from selection")
	return state.SetMany(map[string]interface{}{
		keyPhotoIDs:  ids,
		keyPhotoURLs: urls,
	})
}

// PhotoID derives a stable identifier for a photo URL, so re-importing the
// same URL always yields the same id.
func PhotoID(url string) string {
	sum := sha1.Sum([]byte(url))
	return "ph_" + hex.EncodeToString(sum[:6])
}
