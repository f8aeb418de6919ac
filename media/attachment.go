// Package media handles composer attachments, the permanent media
// library, the photo selection grid, and the import watcher that stands
// in for camera-roll delivery.
package media

// Kind enumerates attachment media types.
type Kind string

const (
	KindAudio Kind = "audio"
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// Attachment is one piece of media attached to a composed message.
// A composer holds at most one attachment; replacing it clears the
// previous one.
type Attachment struct {
	Kind Kind `json:"kind"`
	// URI is an opaque resource handle: a file:// path in the media
	// library or a remote URL.
	URI string `json:"uri"`
	// DurationMS is set for audio and video only.
	DurationMS int `json:"duration_ms,omitempty"`
	// IsFrontCamera controls mirror-correction at render time.
	IsFrontCamera bool `json:"is_front_camera,omitempty"`
}

// Valid reports whether the attachment carries a usable kind and URI.
func (a *Attachment) Valid() bool {
	if a == nil || a.URI == "" {
		return false
	}
	switch a.Kind {
	case KindAudio, KindPhoto, KindVideo:
		return true
	}
	return false
}

// TimedKind reports whether the attachment kind carries a duration.
func (a *Attachment) TimedKind() bool {
	return a != nil && (a.Kind == KindAudio || a.Kind == KindVideo)
}
