package disk

import (
	"path/filepath"
	"regexp"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DeviceDir is where the kernel publishes block device nodes.
const DeviceDir = "/dev"

// blockDeviceName matches whole disks and partitions of the common block drivers.
var blockDeviceName = regexp.MustCompile(`^(sd[a-z]+|hd[a-z]+|vd[a-z]+|xvd[a-z]+|nvme\d+n\d+|mmcblk\d+)(p?\d+)?$`)

// IsBlockDeviceName reports whether a /dev entry looks like a disk or partition.
func IsBlockDeviceName(name string) bool {
	return blockDeviceName.MatchString(name)
}

// DeviceEventKind distinguishes device arrival from removal.
type DeviceEventKind int

const (
	DeviceAdded DeviceEventKind = iota
	DeviceRemoved
)

func (k DeviceEventKind) String() string {
	if k == DeviceAdded {
		return "added"
	}
	return "removed"
}

// DeviceEvent reports a block device node appearing or disappearing.
type DeviceEvent struct {
	Kind       DeviceEventKind
	DevicePath string
}

// Watcher reports block devices being plugged in or removed.
// Events are delivered best effort: when the consumer falls behind, events are
// dropped, since any single event means the full device list should be re-read.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan DeviceEvent
	done   chan struct{}
	wg     sync.WaitGroup
	logger *zap.Logger
	once   sync.Once
}

// NewWatcher starts watching dir (normally DeviceDir).
func NewWatcher(dir string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:    fsw,
		events: make(chan DeviceEvent, 16),
		done:   make(chan struct{}),
		logger: logger,
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Events returns the channel of device events. It is closed by Close.
func (w *Watcher) Events() <-chan DeviceEvent {
	return w.events
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.events)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("device watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	if !IsBlockDeviceName(name) {
		return
	}

	var kind DeviceEventKind
	switch {
	case ev.Has(fsnotify.Create):
		kind = DeviceAdded
	case ev.Has(fsnotify.Remove):
		kind = DeviceRemoved
	default:
		return
	}

	out := DeviceEvent{Kind: kind, DevicePath: ev.Name}
	w.logger.Debug("device event", zap.String("kind", kind.String()), zap.String("device", ev.Name))
	select {
	case w.events <- out:
	default:
	}
}
