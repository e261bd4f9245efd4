// Package watch re-renders flowchart documents when they change on disk.
//
// A [Watcher] follows a fixed set of document files. Editors often save by
// writing a temporary file and renaming it over the original, so the
// watcher subscribes to the parent directories and filters events down to
// the tracked paths. Bursts of events are batched over a debounce window
// and handed to the handler as one deduplicated list.
package watch

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for further events before
// flushing a batch.
const DefaultDebounce = 150 * time.Millisecond

// defaultBufferSize bounds the number of pending events.
const defaultBufferSize = 256

// Handler receives the tracked paths that changed during one debounce
// window, in the order they were first seen. Calls are sequential.
type Handler func(ctx context.Context, paths []string)

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period before a batch is flushed.
	Debounce time.Duration

	// BufferSize is the capacity of the pending event channel. Events are
	// dropped while it is full.
	BufferSize int

	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.BufferSize <= 0 {
		o.BufferSize = defaultBufferSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Watcher batches file system events for a set of documents.
type Watcher struct {
	watcher  *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	logger   *log.Logger

	tracked map[string]bool
	dirs    []string

	changes  chan string
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu       sync.Mutex
	watching bool
}

// New creates a watcher for paths. Paths are resolved to absolute form; the
// handler receives them that way.
func New(paths []string, handler Handler, opts Options) (*Watcher, error) {
	opts.setDefaults()

	tracked := make(map[string]bool, len(paths))
	seenDir := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		tracked[abs] = true
		if dir := filepath.Dir(abs); !seenDir[dir] {
			seenDir[dir] = true
			dirs = append(dirs, dir)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  fw,
		handler:  handler,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		tracked:  tracked,
		dirs:     dirs,
		changes:  make(chan string, opts.BufferSize),
		done:     make(chan struct{}),
	}, nil
}

// Start subscribes to the document directories and spawns the event and
// debounce goroutines. Both exit when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watching {
		return nil
	}

	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.watching = true

	w.wg.Add(2)
	go w.processEvents(ctx)
	go w.debounceLoop(ctx)
	return nil
}

// Stop closes the underlying watcher and waits for pending handler calls
// to finish. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
		w.wg.Wait()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	})
}

// Watching reports whether Start has been called and Stop has not.
func (w *Watcher) Watching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watching
}

// relevant reports whether ev may have changed the content of a tracked
// document. Removals and renames away are ignored; the replacement shows up
// as a create.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	return w.tracked[filepath.Clean(ev.Name)]
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			select {
			case w.changes <- filepath.Clean(ev.Name):
			default:
				w.logger.Warn("dropping file event, buffer full", "path", ev.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	defer w.wg.Done()

	var (
		batch  []string
		timer  *time.Timer
		timerC <-chan time.Time
	)

	flush := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
		if len(batch) == 0 {
			return
		}
		paths := dedupe(batch)
		batch = batch[:0]
		if ctx.Err() == nil && w.handler != nil {
			w.logger.Debug("documents changed", "paths", paths)
			w.handler(ctx, paths)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			flush()
			return
		case p := <-w.changes:
			batch = append(batch, p)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer, timerC = nil, nil
			flush()
		}
	}
}

// dedupe keeps the first occurrence of every path.
func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
