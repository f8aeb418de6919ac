package media

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/miralabs/mira/errors"
	"github.com/miralabs/mira/logging"
	"github.com/sirupsen/logrus"
)

// Library is the app's permanent media storage. Picked files are copied
// in from transient picker/cache locations; files already inside the
// library and remote URLs pass through untouched.
type Library struct {
	dir string
	log *logrus.Entry
}

// NewLibrary creates a library rooted at dir, creating it if needed.
func NewLibrary(dir string) (*Library, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMediaCopyFailed, "failed to create media directory").
			WithDetail("dir", dir)
	}
	return &Library{dir: dir, log: logging.NewLogger("media")}, nil
}

// Dir returns the library root.
func (l *Library) Dir() string {
	return l.dir
}

// CopyToPermanent moves a picked resource into permanent storage and
// returns its library URI. The operation is idempotent:
//
//   - remote URLs are returned unchanged,
//   - URIs already inside the library are returned unchanged,
//   - re-copying the same source lands on the same content-addressed
//     destination and performs no second file write.
//
// Steps may re-run the copy on retry after a partial failure, so every
// path through here must be safe to repeat.
func (l *Library) CopyToPermanent(uri string) (string, error) {
	if uri == "" {
		return "", errors.MediaNotFound(uri)
	}

	// Remote resources are not copied; the backend serves them.
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri, nil
	}

	srcPath := stripFileScheme(uri)

	// Already permanent: hand back the same reference.
	if inside, err := filepath.Rel(l.dir, srcPath); err == nil && !strings.HasPrefix(inside, "..") {
		return fileURI(srcPath), nil
	}

	src, err := os.Open(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.MediaNotFound(uri)
		}
		return "", errors.MediaCopyFailed(uri, err)
	}
	defer src.Close()

	// Content-addressed destination: a retried copy of the same bytes
	// resolves to the same path.
	hasher := sha256.New()
	if _, err := io.Copy(hasher, src); err != nil {
		return "", errors.MediaCopyFailed(uri, err)
	}
	sum := hex.EncodeToString(hasher.Sum(nil))[:16]
	destPath := filepath.Join(l.dir, sum+strings.ToLower(filepath.Ext(srcPath)))

	if _, err := os.Stat(destPath); err == nil {
		// Destination already holds these bytes; no second write.
		return fileURI(destPath), nil
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", errors.MediaCopyFailed(uri, err)
	}

	// Write through a temp file and rename so a crash mid-copy never
	// leaves a half-written library entry.
	tmp, err := os.CreateTemp(l.dir, ".copy-*")
	if err != nil {
		return "", errors.MediaCopyFailed(uri, err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", errors.MediaCopyFailed(uri, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", errors.MediaCopyFailed(uri, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", errors.MediaCopyFailed(uri, err)
	}

	l.log.WithFields(logrus.Fields{"src": srcPath, "dest": destPath}).Debug("Copied media into library")
	return fileURI(destPath), nil
}

func stripFileScheme(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

func fileURI(path string) string {
	return "file://" + path
}
