package file

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/taskd/internal/logger"
)

// Watch reloads the configuration whenever the file changes and then calls
// onChange. It returns once the watcher is running; watching stops when ctx
// is cancelled.
//
// The directory is watched rather than the file, since editors usually
// replace the file instead of writing it in place.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := s.Load(); err != nil {
					logger.L().Warn("config reload failed", "path", s.filePath, "error", err)
					continue
				}
				logger.L().Info("config reloaded", "path", s.filePath)
				if onChange != nil {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.L().Warn("config watcher error", "error", err)
			}
		}
	}()

	return nil
}
