// Package spool ships line-protocol files dropped into a directory.
//
// Producers write complete files (ideally to a temporary name, then rename)
// into the spool directory. Each matching file is read whole and handed to a
// sender.Sender, then removed unless KeepFiles is set.
package spool

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/udpship/pkg/log"
	"github.com/bft-labs/udpship/pkg/sender"
)

// DefaultPattern matches line-protocol spool files.
const DefaultPattern = "*.lp"

// Config holds configuration options for the spool watcher.
type Config struct {
	// Dir is the spool directory.
	Dir string

	// Pattern is the filepath.Match pattern of files to ship.
	// Default: *.lp
	Pattern string

	// Debounce is the delay after the last change to a file before it is shipped.
	// Default: 100 milliseconds
	Debounce time.Duration

	// KeepFiles leaves shipped files in place.
	KeepFiles bool
}

// Watcher ships spool files through a Sender. All sends happen on the
// goroutine running Run or Flush, so the Sender needs no locking.
type Watcher struct {
	cfg    Config
	sender sender.Sender
	logger log.Logger

	timers  map[string]*time.Timer
	pending sync.WaitGroup
	ready   chan string
}

// New creates a watcher for cfg.Dir.
func New(cfg Config, s sender.Sender, logger log.Logger) *Watcher {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		cfg:    cfg,
		sender: s,
		logger: logger,
		timers: make(map[string]*time.Timer),
		ready:  make(chan string),
	}
}

// Flush ships every matching file already in the directory, in name order,
// and returns how many were shipped.
func (w *Watcher) Flush() (int, error) {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return 0, fmt.Errorf("read spool dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && w.matches(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	shipped := 0
	for _, name := range names {
		ok, err := w.ship(filepath.Join(w.cfg.Dir, name))
		if err != nil {
			w.logger.Warn("ship spool file failed", log.String("file", name), log.Err(err))
			continue
		}
		if ok {
			shipped++
		}
	}
	return shipped, nil
}

// Run flushes the directory, then ships files as they are created or
// written. It blocks until ctx is cancelled or the notifier shuts down.
func (w *Watcher) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer w.shutdown(cancel)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.cfg.Dir, err)
	}

	if _, err := w.Flush(); err != nil {
		return err
	}
	w.logger.Info("watching spool directory", log.String("dir", w.cfg.Dir), log.String("pattern", w.cfg.Pattern))

	return w.watch(ctx, watcher.Events, watcher.Errors)
}

func (w *Watcher) watch(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !w.matches(filepath.Base(event.Name)) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			w.debounce(ctx, event.Name)

		case path := <-w.ready:
			delete(w.timers, path)
			if _, err := w.ship(path); err != nil {
				w.logger.Warn("ship spool file failed", log.String("file", path), log.Err(err))
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Error("spool watcher error", log.Err(err))
		}
	}
}

// debounce restarts the timer for path. Timers only signal the Run loop,
// and a fired callback waits on ctx until the loop picks the path up.
func (w *Watcher) debounce(ctx context.Context, path string) {
	if t, ok := w.timers[path]; ok && t.Stop() {
		w.pending.Done()
	}
	w.pending.Add(1)
	w.timers[path] = time.AfterFunc(w.cfg.Debounce, func() {
		defer w.pending.Done()
		select {
		case w.ready <- path:
		case <-ctx.Done():
		}
	})
}

// shutdown stops pending timers, cancels the loop context and waits until
// every fired callback has returned.
func (w *Watcher) shutdown(cancel context.CancelFunc) {
	w.stopTimers()
	cancel()
	w.pending.Wait()
}

func (w *Watcher) stopTimers() {
	for path, t := range w.timers {
		if t.Stop() {
			w.pending.Done()
		}
		delete(w.timers, path)
	}
}

// ship sends one file. It reports false when the file is already gone.
func (w *Watcher) ship(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	w.sender.Write(string(data))
	w.logger.Debug("shipped spool file", log.String("file", path), log.Int("bytes", len(data)), log.Bool("kept", w.cfg.KeepFiles))

	if w.cfg.KeepFiles {
		return true, nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return true, fmt.Errorf("remove %s: %w", path, err)
	}
	return true, nil
}

func (w *Watcher) matches(name string) bool {
	ok, err := filepath.Match(w.cfg.Pattern, name)
	return err == nil && ok
}
