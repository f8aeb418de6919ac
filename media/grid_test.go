package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func slotKinds(grid []Slot) []SlotKind {
	kinds := make([]SlotKind, len(grid))
	for i, s := range grid {
		kinds[i] = s.Kind
	}
	return kinds
}

func TestBuildGridEmpty(t *testing.T) {
	grid := BuildGrid(nil, nil, nil, 4)

	assert.Len(t, grid, 4)
	assert.Equal(t, []SlotKind{SlotUpload, SlotPlaceholder, SlotPlaceholder, SlotPlaceholder}, slotKinds(grid))
}

func TestBuildGridMergesImportedAndUploaded(t *testing.T) {
	imported := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
	uploaded := []string{"file:///media/c.jpg"}

	grid := BuildGrid(imported, uploaded, nil, 9)

	assert.Equal(t, SlotPhoto, grid[0].Kind)
	assert.Equal(t, "https://cdn.example.com/a.jpg", grid[0].URL)
	assert.Equal(t, "file:///media/c.jpg", grid[2].URL)
	assert.Equal(t, SlotUpload, grid[3].Kind)
	assert.Equal(t, SlotPlaceholder, grid[8].Kind)
}

func TestBuildGridDropsInvalidFailedAndDuplicate(t *testing.T) {
	imported := []string{
		"https://cdn.example.com/a.jpg",
		"undefined",
		"",
		"https://cdn.example.com/broken.jpg",
		"https://cdn.example.com/a.jpg", // duplicate
	}
	failed := map[string]bool{"https://cdn.example.com/broken.jpg": true}

	grid := BuildGrid(imported, nil, failed, 9)

	assert.Equal(t, SlotPhoto, grid[0].Kind)
	assert.Equal(t, SlotUpload, grid[1].Kind)
}

func TestBuildGridUploadedDuplicateOfImported(t *testing.T) {
	shared := "https://cdn.example.com/a.jpg"

	grid := BuildGrid([]string{shared}, []string{shared}, nil, 9)

	assert.Equal(t, SlotPhoto, grid[0].Kind)
	assert.Equal(t, SlotUpload, grid[1].Kind)
}

func TestBuildGridFullCapacityHasNoUploadSlot(t *testing.T) {
	photos := []string{
		"https://cdn.example.com/1.jpg",
		"https://cdn.example.com/2.jpg",
		"https://cdn.example.com/3.jpg",
	}

	grid := BuildGrid(photos, nil, nil, 3)

	assert.Len(t, grid, 3)
	for _, s := range grid {
		assert.Equal(t, SlotPhoto, s.Kind)
	}
}

func TestBuildGridTruncatesToCapacity(t *testing.T) {
	photos := []string{
		"https://cdn.example.com/1.jpg",
		"https://cdn.example.com/2.jpg",
		"https://cdn.example.com/3.jpg",
		"https://cdn.example.com/4.jpg",
	}

	grid := BuildGrid(photos, nil, nil, 2)

	assert.Len(t, grid, 2)
	assert.Equal(t, "https://cdn.example.com/1.jpg", grid[0].URL)
	assert.Equal(t, "https://cdn.example.com/2.jpg", grid[1].URL)
}

func TestBuildGridZeroCapacity(t *testing.T) {
	assert.Nil(t, BuildGrid([]string{"https://cdn.example.com/1.jpg"}, nil, nil, 0))
}
