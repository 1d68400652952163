// Package watch reloads the locator's rules file while the server runs.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/rules"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

type RuleSetter interface {
	SetRules(table rules.Table)
}

// RulesWatcher merges the rules file over the built-in table on every
// change. A file that fails to parse leaves the current table in place.
type RulesWatcher struct {
	path     string
	target   RuleSetter
	logger   output.LoggerPort
	debounce time.Duration
}

func NewRulesWatcher(path string, target RuleSetter, logger output.LoggerPort) *RulesWatcher {
	return &RulesWatcher{
		path:     filepath.Clean(path),
		target:   target,
		logger:   logger.WithField("rules_file", path),
		debounce: defaultDebounce,
	}
}

// Run blocks until ctx is cancelled. The parent directory is watched so
// editors that save by renaming over the file are picked up.
func (w *RulesWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("Watching rules file")

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			reload = timer.C

		case <-reload:
			reload = nil
			w.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", "error", err)
		}
	}
}

func (w *RulesWatcher) reload() {
	extra, err := rules.LoadFile(w.path)
	if err != nil {
		w.logger.Warn("Keeping previous rules", "error", err)
		return
	}
	table := rules.Default().Merge(extra)
	w.target.SetRules(table)
	w.logger.Info("Rules reloaded", "rules", table.Len())
}
