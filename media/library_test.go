package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miralabs/mira/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := NewLibrary(t.TempDir())
	require.NoError(t, err)
	return lib
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCopyToPermanentCopiesIntoLibrary(t *testing.T) {
	lib := newTestLibrary(t)
	src := writeSource(t, "selfie.jpg", "jpeg-bytes")

	uri, err := lib.CopyToPermanent(src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "file://"+lib.Dir()))

	data, err := os.ReadFile(stripFileScheme(uri))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestCopyToPermanentAlreadyPermanentIsIdentity(t *testing.T) {
	lib := newTestLibrary(t)
	src := writeSource(t, "selfie.jpg", "jpeg-bytes")

	first, err := lib.CopyToPermanent(src)
	require.NoError(t, err)

	// A second call with the already-permanent URI returns the same URI
	// and leaves the library untouched.
	before := libraryEntries(t, lib)
	second, err := lib.CopyToPermanent(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, before, libraryEntries(t, lib))
}

func TestCopyToPermanentSameBytesSameDestination(t *testing.T) {
	lib := newTestLibrary(t)
	a := writeSource(t, "a.jpg", "identical-bytes")
	b := writeSource(t, "b.jpg", "identical-bytes")

	uriA, err := lib.CopyToPermanent(a)
	require.NoError(t, err)
	uriB, err := lib.CopyToPermanent(b)
	require.NoError(t, err)

	assert.Equal(t, uriA, uriB)
	assert.Len(t, libraryEntries(t, lib), 1)
}

func TestCopyToPermanentRemoteURLPassesThrough(t *testing.T) {
	lib := newTestLibrary(t)

	uri, err := lib.CopyToPermanent("https://cdn.example.com/photos/1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photos/1.jpg", uri)
	assert.Empty(t, libraryEntries(t, lib))
}

func TestCopyToPermanentFileSchemeSource(t *testing.T) {
	lib := newTestLibrary(t)
	src := writeSource(t, "selfie.png", "png-bytes")

	uri, err := lib.CopyToPermanent("file://" + src)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(uri, ".png"))
}

func TestCopyToPermanentMissingSource(t *testing.T) {
	lib := newTestLibrary(t)

	_, err := lib.CopyToPermanent(filepath.Join(t.TempDir(), "gone.jpg"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeMediaNotFound))
}

func TestCopyToPermanentEmptyURI(t *testing.T) {
	lib := newTestLibrary(t)

	_, err := lib.CopyToPermanent("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeMediaNotFound))
}

func TestCopyToPermanentLeavesNoTempFiles(t *testing.T) {
	lib := newTestLibrary(t)
	src := writeSource(t, "selfie.jpg", "jpeg-bytes")

	_, err := lib.CopyToPermanent(src)
	require.NoError(t, err)

	for _, name := range libraryEntries(t, lib) {
		assert.False(t, strings.HasPrefix(name, ".copy-"), "leftover temp file %s", name)
	}
}

func libraryEntries(t *testing.T, lib *Library) []string {
	t.Helper()
	entries, err := os.ReadDir(lib.Dir())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
