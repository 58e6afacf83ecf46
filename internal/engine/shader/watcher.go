package shader

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/pagesketch/internal/logger"
)

// DefaultDebounce is how long a program's files must stay quiet before a
// change is reported. Editors often write a file in several steps.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports programs whose source files changed on disk.
type Watcher struct {
	fsw      *fsnotify.Watcher
	changes  chan string
	debounce time.Duration
	log      *zap.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewWatcher watches dir for .vert and .frag writes.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fsw:      fsw,
		changes:  make(chan string, 16),
		debounce: debounce,
		log:      logger.Named("shader.watch"),
		done:     make(chan struct{}),
	}
	go w.loop()

	w.log.Info("watching shaders", zap.String("dir", dir))
	return w, nil
}

// Changes delivers program names. Receivers should drain it without
// blocking, e.g. once per frame.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops watching. The Changes channel is closed afterwards.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.changes)

	pending := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-w.done:
			timer.Stop()
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, ok := ProgramName(ev.Name)
			if !ok {
				continue
			}
			pending[name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("shader watch error", zap.Error(err))

		case <-timer.C:
			for name := range pending {
				select {
				case w.changes <- name:
				default:
					w.log.Debug("dropping shader change, consumer is behind", zap.String("program", name))
				}
			}
			clear(pending)
		}
	}
}
