package datasource

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of writes into one change signal.
const DefaultDebounce = 100 * time.Millisecond

// Watcher signals when the payload file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	base     string
	debounce time.Duration
	onChange chan struct{}
	onError  chan error
	done     chan struct{}
	once     sync.Once
}

// NewWatcher creates a watcher for the payload at path. It watches the
// parent directory so that editors that save by renaming a temp file over
// the payload are still seen.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher:  w,
		base:     filepath.Base(path),
		debounce: DefaultDebounce,
		onChange: make(chan struct{}, 1),
		onError:  make(chan error, 1),
		done:     make(chan struct{}),
	}

	go watcher.loop()
	return watcher, nil
}

// Changes returns a channel that receives a signal when the payload changes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.onChange
}

// Errors returns watch errors. Only the latest unread error is kept.
func (w *Watcher) Errors() <-chan error {
	return w.onError
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != w.base {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) loop() {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case w.onChange <- struct{}{}:
				default: // already signaled
				}
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.onError <- err:
			default:
			}
		}
	}
}
