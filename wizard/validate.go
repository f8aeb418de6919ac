package wizard

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Thresholds holds the minimum-completion criteria for each step. Values
// come from config; zero values fall back to the defaults.
type Thresholds struct {
	MinPhotos  int
	MinIntents int
	MaxIntents int
	MinBio     int
	MaxBio     int
}

// DefaultThresholds returns the product defaults for the private-profile
// phase: two photos, one to three intents, a 30-300 character bio.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinPhotos:  2,
		MinIntents: 1,
		MaxIntents: 3,
		MinBio:     30,
		MaxBio:     300,
	}
}

// normalized fills in defaults for unset fields so a partially configured
// Thresholds never disables a gate outright.
func (t Thresholds) normalized() Thresholds {
	d := DefaultThresholds()
	if t.MinPhotos <= 0 {
		t.MinPhotos = d.MinPhotos
	}
	if t.MinIntents <= 0 {
		t.MinIntents = d.MinIntents
	}
	if t.MaxIntents <= 0 {
		t.MaxIntents = d.MaxIntents
	}
	if t.MinBio <= 0 {
		t.MinBio = d.MinBio
	}
	if t.MaxBio <= 0 {
		t.MaxBio = d.MaxBio
	}
	return t
}

// ValidPhotoURL reports whether a URL can count toward photo selection:
// non-empty, not the literal "undefined"/"null" that leaks out of client
// serialization bugs, and carrying an accepted scheme.
func ValidPhotoURL(url string) bool {
	if url == "" || url == "undefined" || url == "null" {
		return false
	}
	return strings.HasPrefix(url, "http://") ||
		strings.HasPrefix(url, "https://") ||
		strings.HasPrefix(url, "file://")
}

// CanContinuePhotos reports whether enough valid, non-failed photos are
// selected. Failed URLs never count even if still present in the state.
func CanContinuePhotos(st State, failed map[string]bool, th Thresholds) bool {
	th = th.normalized()
	count := 0
	for _, u := range st.SelectedPhotoURLs {
		if !ValidPhotoURL(u) || failed[u] {
			continue
		}
		count++
	}
	return count >= th.MinPhotos
}

// CanContinueIntents reports whether the chosen intent count is within the
// allowed range. The count may be out of range transiently while editing;
// only the gate cares.
func CanContinueIntents(st State, th Thresholds) bool {
	th = th.normalized()
	n := len(st.IntentKeys)
	return n >= th.MinIntents && n <= th.MaxIntents
}

// CanContinueDesire reports whether the trimmed bio length is within
// bounds. Length is counted in characters, not bytes.
func CanContinueDesire(st State, th Thresholds) bool {
	th = th.normalized()
	n := utf8.RuneCountInString(strings.TrimSpace(st.PrivateBio))
	return n >= th.MinBio && n <= th.MaxBio
}

// StepComplete reports whether a single step's minimum requirements are
// met. Review has no inputs of its own; it is complete when every gated
// step before it is.
func StepComplete(step Step, st State, failed map[string]bool, th Thresholds) bool {
	switch step {
	case StepPhotos:
		return CanContinuePhotos(st, failed, th)
	case StepIntents:
		return CanContinueIntents(st, th)
	case StepDesire:
		return CanContinueDesire(st, th)
	case StepReview:
		return CanContinuePhotos(st, failed, th) &&
			CanContinueIntents(st, th) &&
			CanContinueDesire(st, th)
	}
	return false
}

// AllComplete reports whether every gated step is satisfied. Used both to
// enable the final confirm action and to skip the wizard on relaunch.
func AllComplete(st State, failed map[string]bool, th Thresholds) bool {
	return StepComplete(StepReview, st, failed, th)
}

// MissingRequirements lists human-readable hints for the current step's
// unmet criteria, e.g. "1 more photo needed". An empty slice means the
// step gate is open.
func MissingRequirements(step Step, st State, failed map[string]bool, th Thresholds) []string {
	th = th.normalized()
	var hints []string

	switch step {
	case StepPhotos:
		count := 0
		for _, u := range st.SelectedPhotoURLs {
			if ValidPhotoURL(u) && !failed[u] {
				count++
			}
		}
		if count < th.MinPhotos {
			hints = append(hints, pluralHint(th.MinPhotos-count, "more photo needed", "more photos needed"))
		}
	case StepIntents:
		n := len(st.IntentKeys)
		if n < th.MinIntents {
			hints = append(hints, pluralHint(th.MinIntents-n, "more intent needed", "more intents needed"))
		} else if n > th.MaxIntents {
			hints = append(hints, pluralHint(n-th.MaxIntents, "intent over the limit", "intents over the limit"))
		}
	case StepDesire:
		n := utf8.RuneCountInString(strings.TrimSpace(st.PrivateBio))
		if n < th.MinBio {
			hints = append(hints, pluralHint(th.MinBio-n, "more character needed", "more characters needed"))
		} else if n > th.MaxBio {
			hints = append(hints, pluralHint(n-th.MaxBio, "character over the limit", "characters over the limit"))
		}
	case StepReview:
		for _, s := range []Step{StepPhotos, StepIntents, StepDesire} {
			hints = append(hints, MissingRequirements(s, st, failed, th)...)
		}
	}
	return hints
}

func pluralHint(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
