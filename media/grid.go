package media

import (
	"github.com/miralabs/mira/wizard"
)

// SlotKind says what a grid position renders as.
type SlotKind int

const (
	// SlotPhoto shows a selected or candidate photo.
	SlotPhoto SlotKind = iota
	// SlotUpload is the single "add new photo" affordance.
	SlotUpload
	// SlotPlaceholder is an inert empty position.
	SlotPlaceholder
)

// Slot is one position in the photo selection grid.
type Slot struct {
	Kind SlotKind
	URL  string
}

// BuildGrid assembles the photo grid shown on selection steps. Candidates
// merge the externally imported list with locally uploaded photos,
// dropping invalid and failed URLs and deduplicating by value. The result
// is truncated to capacity; the first position past the photos becomes
// the upload affordance and the rest are placeholders, so no slot is ever
// blank.
func BuildGrid(imported, uploaded []string, failed map[string]bool, capacity int) []Slot {
	if capacity <= 0 {
		return nil
	}

	seen := make(map[string]bool)
	photos := make([]string, 0, capacity)
	for _, list := range [][]string{imported, uploaded} {
		for _, url := range list {
			if !wizard.ValidPhotoURL(url) || failed[url] || seen[url] {
				continue
			}
			seen[url] = true
			photos = append(photos, url)
			if len(photos) == capacity {
				break
			}
		}
		if len(photos) == capacity {
			break
		}
	}

	grid := make([]Slot, 0, capacity)
	for _, url := range photos {
		grid = append(grid, Slot{Kind: SlotPhoto, URL: url})
	}

	if len(grid) < capacity {
		grid = append(grid, Slot{Kind: SlotUpload})
	}
	for len(grid) < capacity {
		grid = append(grid, Slot{Kind: SlotPlaceholder})
	}

	return grid
}
