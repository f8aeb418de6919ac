package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miralabs/mira/testutil"
)

func TestGuardWaitsForHydration(t *testing.T) {
	g := NewGuard(DefaultThresholds())

	// Un-hydrated state yields no decision regardless of the complete flag
	snap := Snapshot{State: State{SetupComplete: true}, HasHydrated: false}
	for i := 0; i < 3; i++ {
		decision, _, fire := g.Check(snap, nil)
		assert.Equal(t, DecisionNone, decision)
		assert.False(t, fire)
	}
	assert.False(t, g.Decided())
}

func TestGuardSkipsToCompleteExactlyOnce(t *testing.T) {
	g := NewGuard(DefaultThresholds())

	snap := Snapshot{State: State{SetupComplete: true}, HasHydrated: true}

	decision, _, fire := g.Check(snap, nil)
	assert.Equal(t, DecisionSkipToComplete, decision)
	assert.True(t, fire, "first hydrated check must fire navigation")

	// Re-renders re-check the guard; it must not fire again
	for i := 0; i < 5; i++ {
		decision, _, fire = g.Check(snap, nil)
		assert.Equal(t, DecisionSkipToComplete, decision)
		assert.False(t, fire)
	}
}

func TestGuardResumesAtFirstIncompleteStep(t *testing.T) {
	g := NewGuard(DefaultThresholds())

	st := State{
		SelectedPhotoIDs:  []string{"a", "b"},
		SelectedPhotoURLs: []string{"http://a.jpg", "http://b.jpg"},
	}
	decision, resumeAt, fire := g.Check(Snapshot{State: st, HasHydrated: true}, nil)
	assert.Equal(t, DecisionResume, decision)
	assert.Equal(t, StepIntents, resumeAt)
	assert.True(t, fire)
}

func TestGuardDecisionLatchedBeforeStateChanges(t *testing.T) {
	g := NewGuard(DefaultThresholds())

	decision, resumeAt, _ := g.Check(Snapshot{HasHydrated: true}, nil)
	require.Equal(t, DecisionResume, decision)
	require.Equal(t, StepPhotos, resumeAt)

	// Later state changes do not move an already latched decision
	complete := Snapshot{State: State{SetupComplete: true}, HasHydrated: true}
	decision, resumeAt, fire := g.Check(complete, nil)
	assert.Equal(t, DecisionResume, decision)
	assert.Equal(t, StepPhotos, resumeAt)
	assert.False(t, fire)
}

// Full end-to-end pass through the wizard: import, deselect, reselect,
// bio, intents, complete, relaunch.
func TestWizardEndToEnd(t *testing.T) {
	testutil.TempHome(t)
	th := DefaultThresholds()

	store := NewStore()
	require.NoError(t, store.Hydrate())

	// Import the phase-1 photos; selection seeds to both URLs
	require.NoError(t, store.ImportPhase1Data([]string{"http://a.jpg", "http://b.jpg"}))
	snap := store.Snapshot()
	require.Equal(t, []string{"http://a.jpg", "http://b.jpg"}, snap.SelectedPhotoURLs)
	assert.True(t, CanContinuePhotos(snap.State, store.FailedURLs(), th))

	// Deselect a.jpg: the gate closes
	require.NoError(t, store.SetSelectedPhotos(
		[]string{PhotoID("http://b.jpg")}, []string{"http://b.jpg"}))
	assert.False(t, CanContinuePhotos(store.Snapshot().State, store.FailedURLs(), th))

	// Reselect it: the gate reopens
	require.NoError(t, store.SetSelectedPhotos(
		[]string{PhotoID("http://a.jpg"), PhotoID("http://b.jpg")},
		[]string{"http://a.jpg", "http://b.jpg"}))
	assert.True(t, CanContinuePhotos(store.Snapshot().State, store.FailedURLs(), th))

	// Bio of 35 characters passes the desire gate
	require.NoError(t, store.SetPrivateBio(strings.Repeat("d", 35)))
	assert.True(t, CanContinueDesire(store.Snapshot().State, th))

	// Two intents within [1,3] pass the intents gate
	require.NoError(t, store.SetIntentKeys([]string{"travel", "music"}))
	assert.True(t, CanContinueIntents(store.Snapshot().State, th))

	require.True(t, AllComplete(store.Snapshot().State, store.FailedURLs(), th))
	require.NoError(t, store.CompleteSetup())

	// Relaunch: fresh store, fresh guard; redirect goes straight past the
	// wizard once hydrated
	relaunch := NewStore()
	guard := NewGuard(th)

	decision, _, fire := guard.Check(relaunch.Snapshot(), nil)
	assert.Equal(t, DecisionNone, decision, "no decision before hydration")
	assert.False(t, fire)

	require.NoError(t, relaunch.Hydrate())
	decision, _, fire = guard.Check(relaunch.Snapshot(), nil)
	assert.Equal(t, DecisionSkipToComplete, decision)
	assert.True(t, fire)
}
