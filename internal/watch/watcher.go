// Package watch rebuilds the course when its sources change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/MILO15/JS4Python/internal/logfields"
)

// RebuildFunc performs one build. reason is "change", "schedule" or "initial".
type RebuildFunc func(ctx context.Context, reason string) error

// Options configure a Watcher.
type Options struct {
	// Dirs are watched recursively.
	Dirs []string
	// Ignore lists directories (e.g. the build output) whose events are dropped.
	Ignore   []string
	Debounce time.Duration
	// Interval schedules periodic rebuilds; zero disables them.
	Interval time.Duration
}

// Watcher serializes rebuilds triggered by file events and an optional schedule.
type Watcher struct {
	opts      Options
	rebuild   RebuildFunc
	watcher   *fsnotify.Watcher
	scheduler gocron.Scheduler
	trigger   chan string
	buildMu   sync.Mutex
	builds    int
}

// New creates a Watcher. Call Run to start it.
func New(opts Options, rebuild RebuildFunc) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 2 * time.Second
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		opts:    opts,
		rebuild: rebuild,
		watcher: fw,
		trigger: make(chan string, 1),
	}
	w.opts.Ignore = make([]string, 0, len(opts.Ignore))
	for _, dir := range opts.Ignore {
		if dir == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			w.opts.Ignore = append(w.opts.Ignore, abs)
		}
	}
	for _, dir := range opts.Dirs {
		if err := w.addRecursive(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	if opts.Interval > 0 {
		s, err := gocron.NewScheduler()
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
		}
		if _, err := s.NewJob(
			gocron.DurationJob(opts.Interval),
			gocron.NewTask(w.request, "schedule"),
			gocron.WithName("periodic-rebuild"),
		); err != nil {
			_ = fw.Close()
			_ = s.Shutdown()
			return nil, fmt.Errorf("failed to create periodic rebuild job: %w", err)
		}
		w.scheduler = s
	}
	return w, nil
}

// Builds returns how many rebuilds have run.
func (w *Watcher) Builds() int {
	w.buildMu.Lock()
	defer w.buildMu.Unlock()
	return w.builds
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) || (path != root && strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.opts.Ignore {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// request queues a rebuild; a pending request absorbs further ones.
func (w *Watcher) request(reason string) {
	select {
	case w.trigger <- reason:
	default:
	}
}

// Run performs an initial build, then rebuilds on changes until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		_ = w.watcher.Close()
	}()
	if w.scheduler != nil {
		w.scheduler.Start()
		defer func() {
			if err := w.scheduler.Shutdown(); err != nil {
				slog.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	slog.Info("Watching course sources", "dirs", w.opts.Dirs, "debounce", w.opts.Debounce, "interval", w.opts.Interval)
	w.runBuild(ctx, "initial")

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Source change detected", logfields.Path(event.Name), "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				// New directories need their own watch.
				_ = w.addRecursive(event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			w.request("change")
		case reason := <-w.trigger:
			w.runBuild(ctx, reason)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Source watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return false
	}
	return !w.ignored(event.Name)
}

func (w *Watcher) runBuild(ctx context.Context, reason string) {
	w.buildMu.Lock()
	defer w.buildMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	w.builds++
	if err := w.rebuild(ctx, reason); err != nil {
		slog.Error("Rebuild failed", "reason", reason, logfields.Error(err))
	}
}
