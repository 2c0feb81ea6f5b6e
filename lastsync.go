// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"context"
)

// LastSync queues calls and runs them one at a time in arrival order.
// A call that is the most recent call when it starts is authoritative and
// settles normally. A call overtaken while queued still runs, so the queue
// drains, but it is stale from its first step on and its future is
// discarded.
type LastSync struct {
	factory Factory
	opts    options
	gen     generation
	d       dispatcher
	// halted is the marker of the latest Stop, guarded by d.mu.
	halted Marker
}

// NewLastSync wraps factory with the serialized last-call-wins policy.
func NewLastSync(factory Factory, opts ...Option) *LastSync {
	w := &LastSync{factory: factory, opts: buildOptions(opts)}
	w.d.init(1, w.opts.backlog, w.start)
	return w
}

// Call queues a run with args and makes it the most recent call.
func (w *LastSync) Call(ctx context.Context, args ...any) *Future {
	f := NewFuture()
	p := &pending{ctx: ctx, args: args, future: f}
	w.d.mu.Lock()
	p.marker = w.gen.next()
	err := w.d.queue.push(p)
	w.d.mu.Unlock()
	if err != nil {
		w.opts.logger.Warn("call rejected", "policy", "lastsync", "call_id", f.ID(), "error", err)
		f.Reject(err)
		return f
	}
	w.opts.logger.Debug("call queued", "policy", "lastsync", "call_id", f.ID())
	w.d.pump()
	return f
}

func (w *LastSync) start(p *pending) {
	if p.ctx.Err() != nil {
		p.future.Reject(context.Cause(p.ctx))
		w.d.release()
		return
	}
	actual := w.actual(p.marker)
	if p.marker != w.gen.current() {
		actual = func() bool { return false }
		w.opts.logger.Debug("call overtaken", "policy", "lastsync", "call_id", p.future.ID())
	}
	seq, ierr := instantiate(w.factory, p.args)
	go func() {
		v, live, err := execute(p.ctx, seq, ierr, actual)
		logOutcome(w.opts.logger, "lastsync", p.future, live, err)
		settle(p.future, v, live, err)
		w.d.release()
	}()
}

// actual keeps a started call authoritative until the next Stop.
func (w *LastSync) actual(m Marker) Actual {
	return func() bool {
		w.d.mu.Lock()
		defer w.d.mu.Unlock()
		return m > w.halted
	}
}

// Stop invalidates every call made so far. Queued calls still run and
// are discarded.
func (w *LastSync) Stop() {
	w.d.mu.Lock()
	w.halted = w.gen.next()
	w.d.mu.Unlock()
}
