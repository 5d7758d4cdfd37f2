package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle drops repeat events for one file; editors often write twice.
const settle = 100 * time.Millisecond

// ChangeKind says which kind of source file changed.
type ChangeKind int

const (
	FieldChanged ChangeKind = iota + 1
	ScriptChanged
)

// Change is one edited field file or filler script.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports edits to field files and filler scripts. It never reloads
// anything itself; the owner polls it from its own loop.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan Change
	Errors  chan error

	stop     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fsw:     fsw,
		changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers edits as they settle. It is closed by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Poll returns the next pending change without blocking.
func (w *Watcher) Poll() (Change, bool) {
	if w == nil {
		return Change{}, false
	}
	select {
	case c, ok := <-w.changes:
		return c, ok
	default:
		return Change{}, false
	}
}

func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stop)
		err = w.fsw.Close()
		<-w.stopped
		close(w.changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.stopped)
	seen := make(map[string]time.Time)
	for {
		select {
		case <-w.stop:
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			c, ok := classify(ev)
			if !ok {
				continue
			}
			now := time.Now()
			if last, dup := seen[c.Path]; dup && now.Sub(last) < settle {
				continue
			}
			seen[c.Path] = now
			select {
			case w.changes <- c:
			case <-w.stop:
				return
			}
		}
	}
}

func classify(ev fsnotify.Event) (Change, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return Change{}, false
	}
	switch strings.ToLower(filepath.Ext(ev.Name)) {
	case ".yaml", ".yml":
		return Change{Path: ev.Name, Kind: FieldChanged}, true
	case ".tengo":
		return Change{Path: ev.Name, Kind: ScriptChanged}, true
	}
	return Change{}, false
}
