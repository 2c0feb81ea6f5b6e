// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"context"
)

// Sync queues calls and runs them in arrival order, at most WithParallel
// of them at a time (one by default). Every call settles: with its own
// run's value or failure, with ErrBacklogFull when the queue is full, with
// its context's error if that ended while queued, or with ErrStopped.
type Sync struct {
	factory Factory
	opts    options
	d       dispatcher
}

// NewSync wraps factory with the FIFO policy.
func NewSync(factory Factory, opts ...Option) *Sync {
	w := &Sync{factory: factory, opts: buildOptions(opts)}
	w.d.init(w.opts.parallel, w.opts.backlog, w.start)
	return w
}

// Call queues a run with args.
func (w *Sync) Call(ctx context.Context, args ...any) *Future {
	f := NewFuture()
	p := &pending{ctx: ctx, args: args, future: f}
	w.d.mu.Lock()
	err := w.d.queue.push(p)
	w.d.mu.Unlock()
	if err != nil {
		w.opts.logger.Warn("call rejected", "policy", "sync", "call_id", f.ID(), "error", err)
		f.Reject(err)
		return f
	}
	w.opts.logger.Debug("call queued", "policy", "sync", "call_id", f.ID())
	w.d.pump()
	return f
}

func (w *Sync) start(p *pending) {
	if p.ctx.Err() != nil {
		p.future.Reject(context.Cause(p.ctx))
		w.d.release()
		return
	}
	w.opts.logger.Debug("call started", "policy", "sync", "call_id", p.future.ID())
	seq, ierr := instantiate(w.factory, p.args)
	go func() {
		v, live, err := execute(p.ctx, seq, ierr, nil)
		logOutcome(w.opts.logger, "sync", p.future, live, err)
		settle(p.future, v, live, err)
		w.d.release()
	}()
}

// Stop rejects every call that has not started with ErrStopped.
// Calls already running settle normally.
func (w *Sync) Stop() {
	for _, p := range w.d.drain() {
		p.future.Reject(ErrStopped)
	}
}
