package session

import (
	"context"
	"sync"
)

// Loop serializes every entry into the Core onto one goroutine: transport
// deliveries, user intents, timer ticks, and snapshot reads all run in
// arrival order, so the session state is never observed or mutated
// concurrently and no handler needs a lock.
type Loop struct {
	core   *Core
	events chan func()

	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewLoop(core *Core, buffer int) *Loop {
	if buffer <= 0 {
		buffer = 256
	}
	l := &Loop{
		core:   core,
		events: make(chan func(), buffer),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	core.SetPost(l.Post)
	return l
}

// Run processes events until the context is canceled or the loop is closed.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stopCh:
			return
		case fn := <-l.events:
			fn()
		}
	}
}

// Post enqueues fn for execution on the loop goroutine. It blocks when the
// queue is full rather than dropping: arrival order is the ordering
// guarantee the whole session relies on.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.stopCh:
	case l.events <- fn:
	}
}

// Call runs fn on the loop goroutine and waits for it to finish. Used by
// off-loop readers (the status endpoint) to take consistent snapshots.
func (l *Loop) Call(fn func()) {
	donech := make(chan struct{})
	l.Post(func() {
		defer close(donech)
		fn()
	})
	select {
	case <-donech:
	case <-l.stopCh:
	}
}

// HandleRaw marshals one inbound transport delivery onto the loop. This is
// the single callback the transport boundary requires.
func (l *Loop) HandleRaw(raw string) {
	l.Post(func() { l.core.HandleRaw(raw) })
}

// Snapshot takes a consistent session snapshot from off the loop.
func (l *Loop) Snapshot() Snapshot {
	var snap Snapshot
	l.Call(func() { snap = l.core.Snapshot() })
	return snap
}

func (l *Loop) Close() {
	l.stopOnce.Do(func() { close(l.stopCh) })
	<-l.done
}
