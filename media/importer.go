package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/miralabs/mira/errors"
	"github.com/miralabs/mira/logging"
	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"
)

// photoExtensions lists file extensions the importer treats as photos.
var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
}

// Importer surfaces photos that arrive in the import directory, the
// desktop stand-in for camera-roll delivery. Files matching an exclude
// pattern (thumbnails, sidecar files) are skipped.
type Importer struct {
	dir     string
	matcher *patternmatcher.PatternMatcher
	log     *logrus.Entry
}

// NewImporter creates an importer over dir with dockerignore-style
// exclude patterns.
func NewImporter(dir string, exclude []string) (*Importer, error) {
	matcher, err := patternmatcher.New(exclude)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeImportWatch, "invalid exclude pattern").
			WithDetail("patterns", strings.Join(exclude, ", "))
	}
	return &Importer{
		dir:     dir,
		matcher: matcher,
		log:     logging.NewLogger("media-import"),
	}, nil
}

// Scan walks the import directory once and returns the URIs of all
// eligible photos, in name order. A missing directory is an empty
// result, not an error: the user simply has nothing to import yet.
func (i *Importer) Scan() ([]string, error) {
	entries, err := os.ReadDir(i.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeImportWatch, "failed to read import directory").
			WithDetail("dir", i.dir)
	}

	var uris []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !i.eligible(entry.Name()) {
			continue
		}
		uris = append(uris, fileURI(filepath.Join(i.dir, entry.Name())))
	}
	return uris, nil
}

// Watch emits the URI of every eligible photo that lands in the import
// directory until ctx is cancelled. The returned channel closes when the
// watcher stops; callers must treat a closed channel as "no longer
// mounted" and stop applying results.
func (i *Importer) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeImportWatch, "failed to create watcher")
	}

	if err := watcher.Add(i.dir); err != nil {
		watcher.Close()
		return nil, errors.Wrap(err, errors.ErrCodeImportWatch, "failed to watch import directory").
			WithDetail("dir", i.dir)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if !i.eligible(filepath.Base(event.Name)) {
					continue
				}
				select {
				case out <- fileURI(event.Name):
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				i.log.WithError(err).Warn("Import watcher error")
			}
		}
	}()

	i.log.WithField("dir", i.dir).Debug("Watching import directory")
	return out, nil
}

// eligible reports whether a file name is a non-excluded photo.
func (i *Importer) eligible(name string) bool {
	if !photoExtensions[strings.ToLower(filepath.Ext(name))] {
		return false
	}
	excluded, err := i.matcher.MatchesOrParentMatches(name)
	if err != nil {
		i.log.WithError(err).WithField("name", name).Warn("Exclude match failed")
		return false
	}
	return !excluded
}
