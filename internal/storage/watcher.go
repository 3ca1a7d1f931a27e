package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the config file whenever it is written or recreated and passes
// the result to onChange. The parent directory is watched so editors that save
// by rename are still noticed. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *zap.Logger, onChange func(Settings)) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	configDir := filepath.Dir(target)
	if err := watcher.Add(configDir); err != nil {
		return fmt.Errorf("watch config directory %s: %w", configDir, err)
	}

	logger.Info("watching config", zap.String("path", target))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}

			settings, err := LoadSettings(target)
			if err != nil {
				logger.Warn("config reload failed", zap.Error(err))
				continue
			}
			logger.Info("config reloaded",
				zap.Int("work_minutes", settings.Cycle.WorkMinutes()),
				zap.Int("rest_seconds", settings.Cycle.RestSeconds()))
			onChange(settings)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", zap.Error(err))
		}
	}
}
