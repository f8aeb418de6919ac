package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miralabs/mira/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	testutil.TempHome(t)
	s := NewStore()
	require.NoError(t, s.Hydrate())
	return s
}

func TestSetSelectedPhotosAlignment(t *testing.T) {
	s := newTestStore(t)

	calls := [][2][]string{
		{{"a"}, {"http://a.jpg"}},
		{{"a", "b"}, {"http://a.jpg", "http://b.jpg"}},
		{{}, {}},
		{{"c", "d", "e"}, {"http://c.jpg", "http://d.jpg", "http://e.jpg"}},
	}
	for _, call := range calls {
		require.NoError(t, s.SetSelectedPhotos(call[0], call[1]))
		snap := s.Snapshot()
		assert.Equal(t, len(snap.SelectedPhotoIDs), len(snap.SelectedPhotoURLs))
	}

	// Mismatched lengths are rejected and leave state untouched
	err := s.SetSelectedPhotos([]string{"x"}, []string{"http://x.jpg", "http://y.jpg"})
	require.Error(t, err)
	snap := s.Snapshot()
	assert.Len(t, snap.SelectedPhotoIDs, 3)
	assert.Len(t, snap.SelectedPhotoURLs, 3)
}

func TestCompleteSetupIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CompleteSetup())
	first := s.Snapshot()
	require.True(t, first.SetupComplete)

	require.NoError(t, s.CompleteSetup())
	second := s.Snapshot()
	assert.Equal(t, first.State, second.State)
	assert.True(t, second.SetupComplete)
}

func TestImportPhase1DataOneShot(t *testing.T) {
	s := newTestStore(t)

	urls := []string{"http://a.jpg", "http://b.jpg", "undefined", ""}
	require.NoError(t, s.ImportPhase1Data(urls))

	snap := s.Snapshot()
	// Invalid entries filtered, selection auto-seeded
	require.Equal(t, []string{"http://a.jpg", "http://b.jpg"}, snap.SelectedPhotoURLs)
	require.Len(t, snap.SelectedPhotoIDs, 2)

	// A second import, as happens on re-render, must not re-append
	require.NoError(t, s.ImportPhase1Data([]string{"http://c.jpg"}))
	snap = s.Snapshot()
	assert.Equal(t, []string{"http://a.jpg", "http://b.jpg"}, snap.SelectedPhotoURLs)
}

func TestImportGuardSurvivesRestart(t *testing.T) {
	testutil.TempHome(t)

	s := NewStore()
	require.NoError(t, s.Hydrate())
	require.NoError(t, s.ImportPhase1Data([]string{"http://a.jpg"}))

	// Simulate relaunch: fresh store over the same persisted state
	s2 := NewStore()
	require.NoError(t, s2.Hydrate())
	require.NoError(t, s2.ImportPhase1Data([]string{"http://other.jpg"}))

	snap := s2.Snapshot()
	assert.Equal(t, []string{"http://a.jpg"}, snap.SelectedPhotoURLs)
}

func TestMarkPhotoFailedPrunesSelection(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetSelectedPhotos(
		[]string{"a", "b"},
		[]string{"http://a.jpg", "http://b.jpg"},
	))

	require.NoError(t, s.MarkPhotoFailed("http://a.jpg"))

	snap := s.Snapshot()
	assert.Equal(t, []string{"b"}, snap.SelectedPhotoIDs)
	assert.Equal(t, []string{"http://b.jpg"}, snap.SelectedPhotoURLs)
	assert.True(t, s.FailedURLs()["http://a.jpg"])

	// Failing a URL that is not selected records it without touching state
	require.NoError(t, s.MarkPhotoFailed("http://zzz.jpg"))
	assert.True(t, s.FailedURLs()["http://zzz.jpg"])
	assert.Equal(t, []string{"http://b.jpg"}, s.Snapshot().SelectedPhotoURLs)
}

func TestSetIntentKeysDedupes(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetIntentKeys([]string{"travel", "travel", "", "music"}))
	assert.Equal(t, []string{"travel", "music"}, s.Snapshot().IntentKeys)
}

func TestHydrateRoundTrip(t *testing.T) {
	testutil.TempHome(t)

	s := NewStore()
	require.NoError(t, s.Hydrate())
	require.NoError(t, s.SetSelectedPhotos([]string{"a"}, []string{"http://a.jpg"}))
	require.NoError(t, s.SetIntentKeys([]string{"travel"}))
	require.NoError(t, s.SetPrivateBio("hello"))
	require.NoError(t, s.SetBlurMyPhoto(true))
	require.NoError(t, s.SetCurrentStep(StepDesire))

	s2 := NewStore()
	pre := s2.Snapshot()
	assert.False(t, pre.HasHydrated)

	require.NoError(t, s2.Hydrate())
	snap := s2.Snapshot()
	assert.True(t, snap.HasHydrated)
	assert.Equal(t, []string{"http://a.jpg"}, snap.SelectedPhotoURLs)
	assert.Equal(t, []string{"travel"}, snap.IntentKeys)
	assert.Equal(t, "hello", snap.PrivateBio)
	assert.True(t, snap.BlurMyPhoto)
	assert.Equal(t, StepDesire, snap.CurrentStep)
	assert.False(t, snap.SetupComplete)
}

func TestPhotoIDStable(t *testing.T) {
	assert.Equal(t, PhotoID("http://a.jpg"), PhotoID("http://a.jpg"))
	assert.NotEqual(t, PhotoID("http://a.jpg"), PhotoID("http://b.jpg"))
}
