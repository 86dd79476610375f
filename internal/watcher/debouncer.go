package watcher

import (
	"sort"
	"sync"
	"time"
)

// Op is the kind of filesystem change.
type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
	OpRename
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	}
	return "unknown"
}

// Change is one path touched within a debounce window.
type Change struct {
	Path string
	Op   Op
}

// Debouncer collects changes and emits them as one batch after a quiet
// period. Repeated changes to a path collapse into its latest operation.
// A single goroutine owns the pending set; Add and Stop talk to it over
// channels.
type Debouncer struct {
	quiet    time.Duration
	in       chan Change
	output   chan []Change
	done     chan struct{}
	stopOnce sync.Once
}

// NewDebouncer starts a debouncer with the given quiet interval.
func NewDebouncer(quiet time.Duration) *Debouncer {
	d := &Debouncer{
		quiet:  quiet,
		in:     make(chan Change),
		output: make(chan []Change, 16),
		done:   make(chan struct{}),
	}
	go d.loop()
	return d
}

// Output returns the channel that receives batches, sorted by path.
func (d *Debouncer) Output() <-chan []Change {
	return d.output
}

// Add records a change and restarts the quiet period. It is a no-op after
// Stop.
func (d *Debouncer) Add(path string, op Op) {
	select {
	case d.in <- Change{Path: path, Op: op}:
	case <-d.done:
	}
}

// Stop discards pending changes and ends the debouncer. It is safe to call
// more than once.
func (d *Debouncer) Stop() {
	d.stopOnce.Do(func() { close(d.done) })
}

func (d *Debouncer) loop() {
	pending := make(map[string]Change)
	timer := time.NewTimer(d.quiet)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-d.done:
			timer.Stop()
			return
		case c := <-d.in:
			pending[c.Path] = c
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(d.quiet)
			fire = timer.C
		case <-fire:
			fire = nil
			d.emit(pending)
			pending = make(map[string]Change)
		}
	}
}

func (d *Debouncer) emit(pending map[string]Change) {
	if len(pending) == 0 {
		return
	}
	batch := make([]Change, 0, len(pending))
	for _, c := range pending {
		batch = append(batch, c)
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })

	select {
	case d.output <- batch:
	default:
		// Consumer is behind; a queued batch already triggers a rebuild.
	}
}
