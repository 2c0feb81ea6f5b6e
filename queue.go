// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"context"
	"math/bits"
	"sync"

	"code.hybscloud.com/lfq"
)

// pending is a queued call.
type pending struct {
	ctx    context.Context
	args   []any
	future *Future
	marker Marker
}

// callQueue is a bounded FIFO of pending calls on an lfq ring.
// The ring is single-producer single-consumer: both ends are only touched
// while the owning dispatcher's mutex is held.
type callQueue struct {
	ring lfq.SPSC[*pending]
	len  int
	cap  int
}

// init bounds the queue at capacity rounded up to a power of two. The
// ring is sized with headroom so the bound, not the ring, rejects pushes.
func (q *callQueue) init(capacity int) {
	q.cap = ceilPow2(capacity)
	q.ring.Init(q.cap << 1)
}

func (q *callQueue) push(p *pending) error {
	if q.len == q.cap {
		return ErrBacklogFull
	}
	if err := q.ring.Enqueue(&p); err != nil {
		return ErrBacklogFull
	}
	q.len++
	return nil
}

func (q *callQueue) pop() (*pending, bool) {
	if q.len == 0 {
		return nil, false
	}
	p, err := q.ring.Dequeue()
	if err != nil {
		return nil, false
	}
	q.len--
	return p, true
}

func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// dispatcher starts queued calls in arrival order, at most parallel at a
// time. Only one goroutine pumps at once, so start order equals queue
// order even when several slots free up together.
type dispatcher struct {
	mu       sync.Mutex
	queue    callQueue
	parallel int
	running  int
	pumping  bool
	// start begins a dequeued call without the mutex held. The run must
	// call release when it settles.
	start func(p *pending)
}

func (d *dispatcher) init(parallel, backlog int, start func(*pending)) {
	d.parallel = parallel
	d.queue.init(backlog)
	d.start = start
}

// pump starts queued calls while slots are free.
func (d *dispatcher) pump() {
	d.mu.Lock()
	if d.pumping {
		d.mu.Unlock()
		return
	}
	d.pumping = true
	for {
		var p *pending
		ok := false
		if d.running < d.parallel {
			p, ok = d.queue.pop()
		}
		if !ok {
			d.pumping = false
			d.mu.Unlock()
			return
		}
		d.running++
		d.mu.Unlock()
		d.start(p)
		d.mu.Lock()
	}
}

// release frees the slot of a settled call and starts the next one.
func (d *dispatcher) release() {
	d.mu.Lock()
	d.running--
	d.mu.Unlock()
	d.pump()
}

// drain removes every call that has not started yet.
func (d *dispatcher) drain() []*pending {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*pending
	for {
		p, ok := d.queue.pop()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}

// runSet tracks the contexts of runs in flight so that runs which lost
// authority can be cancelled.
type runSet struct {
	mu   sync.Mutex
	runs map[*trackedRun]struct{}
}

type trackedRun struct {
	marker Marker
	cancel context.CancelFunc
}

// track derives the context of the run owning m. release must be called
// when the run settles.
func (s *runSet) track(ctx context.Context, m Marker) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	tr := &trackedRun{marker: m, cancel: cancel}
	s.mu.Lock()
	if s.runs == nil {
		s.runs = make(map[*trackedRun]struct{})
	}
	s.runs[tr] = struct{}{}
	s.mu.Unlock()
	return ctx, func() {
		s.mu.Lock()
		delete(s.runs, tr)
		s.mu.Unlock()
		cancel()
	}
}

// cancelBelow cancels every tracked run whose marker precedes m and
// returns how many were cancelled.
func (s *runSet) cancelBelow(m Marker) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for tr := range s.runs {
		if tr.marker < m {
			tr.cancel()
			delete(s.runs, tr)
			n++
		}
	}
	return n
}
