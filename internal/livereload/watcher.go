package livereload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/MKhiriev/coserv/internal/config"
	"github.com/MKhiriev/coserv/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes of watched files. Directories below the watch
// roots are watched recursively, including directories created later.
type Watcher struct {
	roots      []string
	exts       map[string]struct{}
	exclusions []*regexp.Regexp
	delay      time.Duration
	onChange   func(path string)
	logger     *logger.Logger
}

// NewWatcher creates a watcher for the live-reload settings cfg. onChange is
// called from the watcher goroutine with the slash separated path of the last
// changed file once no further change arrived for the configured delay.
func NewWatcher(cfg config.LiveReload, onChange func(path string), logger *logger.Logger) (*Watcher, error) {
	w := &Watcher{
		roots:    cfg.Watch,
		exts:     make(map[string]struct{}, len(cfg.Options.Exts)),
		delay:    cfg.Options.DelayDuration(),
		onChange: onChange,
		logger:   logger,
	}

	for _, ext := range cfg.Options.Exts {
		w.exts[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	for _, pattern := range cfg.Options.Exclusions {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidExclusion, pattern, err)
		}
		w.exclusions = append(w.exclusions, re)
	}

	return w, nil
}

// Run watches the roots until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating file watcher: %w", err)
	}
	defer fw.Close()

	for _, root := range w.roots {
		err = w.addTree(fw, root)
		if errors.Is(err, fs.ErrNotExist) {
			w.logger.Warn().Str("root", root).Msg("watch root does not exist")
			continue
		}
		if err != nil {
			return err
		}
	}
	w.logger.Debug().Strs("roots", w.roots).Msg("watching for changes")

	// a stopped timer with a drained channel
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	var pending string

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleCreate(fw, event)

			if !w.Matches(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			pending = filepath.ToSlash(event.Name)
			if w.delay <= 0 {
				w.onChange(pending)
				continue
			}
			timer.Reset(w.delay)

		case <-timer.C:
			w.onChange(pending)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// Matches reports whether a change of path should trigger a reload: its
// extension is watched and no exclusion matches it.
func (w *Watcher) Matches(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, ok := w.exts[ext]; !ok {
		return false
	}
	return !w.excluded(path)
}

func (w *Watcher) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, re := range w.exclusions {
		if re.MatchString(slashed) {
			return true
		}
	}
	return false
}

// handleCreate starts watching directories created below a watched root.
func (w *Watcher) handleCreate(fw *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}
	if err = w.addTree(fw, event.Name); err != nil {
		w.logger.Warn().Err(err).Str("dir", event.Name).Msg("error watching new directory")
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// the root must exist, vanished subdirectories are skipped
			if path == root {
				return fmt.Errorf("error watching %q: %w", root, err)
			}
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() && path != root {
			return nil
		}
		if path != root && w.excluded(path) {
			return filepath.SkipDir
		}
		if err = fw.Add(path); err != nil {
			return fmt.Errorf("error watching %q: %w", path, err)
		}
		return nil
	})
}
