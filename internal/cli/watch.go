package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// planWatcher re-runs plans when their files change.
//
// It watches the directories holding the plans rather than the files, since
// editors often save by writing a new file and renaming it over the old one.
// Rapid saves are collapsed into one re-run.
type planWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{} // absolute plan paths
	debounce time.Duration
	log      *slog.Logger
}

func newPlanWatcher(paths []string, debounce time.Duration, log *slog.Logger) (*planWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	pw := &planWatcher{
		watcher:  watcher,
		files:    make(map[string]struct{}, len(paths)),
		debounce: debounce,
		log:      log,
	}

	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		pw.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		log.Debug("watching directory", "dir", dir)
	}

	return pw, nil
}

// Run blocks until ctx is done, calling onChange once after each burst of
// plan file changes. The watcher is closed when Run returns.
func (pw *planWatcher) Run(ctx context.Context, onChange func()) error {
	defer pw.watcher.Close()

	timer := time.NewTimer(pw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			pw.log.Debug("watch stopped")
			return nil

		case event, ok := <-pw.watcher.Events:
			if !ok {
				return nil
			}
			if !pw.relevant(event) {
				continue
			}
			pw.log.Debug("plan file changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(pw.debounce)

		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return nil
			}
			pw.log.Warn("watch error", "error", err)

		case <-timer.C:
			onChange()
		}
	}
}

// relevant reports whether event touches a watched plan file.
func (pw *planWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	_, ok := pw.files[filepath.Clean(event.Name)]
	return ok
}
