package content

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 300 * time.Millisecond

// Watch reloads the store whenever its override file changes, until ctx is
// cancelled. The parent directory is watched so rename-on-save editors are
// picked up. Watch returns immediately for a store without a file.
func Watch(ctx context.Context, s *Store, debounce time.Duration) error {
	if s.Path() == "" {
		return nil
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(s.Path())
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}
	logging.Info("Watching content file", zap.String("path", target))

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logging.Debug("Content change detected",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()),
			)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				_ = s.Reload()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("Content watcher error", zap.Error(err))
		}
	}
}
