// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"context"
)

// Call runs the sequence created by factory with args to completion on the
// calling goroutine and returns its final value. No staleness predicate is
// involved: the run is always authoritative.
func Call(ctx context.Context, factory Factory, args ...any) (any, error) {
	v, _, err := Execute(ctx, factory, args, nil)
	return v, err
}

// Go runs the sequence created by factory with args on a new goroutine.
// The returned Future settles with the final value or failure.
func Go(ctx context.Context, factory Factory, args ...any) *Future {
	f := NewFuture()
	go func() {
		v, err := Call(ctx, factory, args...)
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(v)
	}()
	return f
}

// Execute instantiates a sequence with factory(args...) and drives it to
// completion, resolving every yielded value.
//
// actual, when non-nil, is consulted after every settled step and once more
// at completion. As soon as it returns false the run is abandoned: Execute
// returns live == false with no value and no error, whatever the sequence
// was doing. A failure that escapes the sequence is returned as err only
// while the run is still authoritative.
func Execute(ctx context.Context, factory Factory, args []any, actual Actual) (v any, live bool, err error) {
	seq, err := instantiate(factory, args)
	return execute(ctx, seq, err, actual)
}

// execute drives an instantiated sequence; err is the instantiation failure.
func execute(ctx context.Context, seq Sequence, err error, actual Actual) (any, bool, error) {
	r := &run{ctx: ctx, actual: actual}
	if err != nil {
		return r.fail(err)
	}
	return r.drive(seq)
}

func instantiate(factory Factory, args []any) (seq Sequence, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			seq, err = nil, recovered(rec)
		}
	}()
	seq = factory(args...)
	if seq == nil {
		return nil, ErrNilSequence
	}
	return seq, nil
}

// run is the state shared by one execution and every sequence nested in it.
type run struct {
	ctx    context.Context
	actual Actual
	// owner is the task whose run this is, if any. Tasks discovered while
	// resolving are registered with it.
	owner *SequenceTask
}

func (r *run) live() bool {
	return r.actual == nil || r.actual()
}

// drive evaluates seq one step at a time. Each step's value is resolved and
// fed back: Resolved(v) on success, Failed(err) on failure, so the sequence
// may observe and recover from the failure of the value it yielded.
func (r *run) drive(seq Sequence) (any, bool, error) {
	step, err := r.next(seq, Resolved(nil))
	if err != nil {
		return r.fail(err)
	}
	v, live, rerr := r.resolve(step.Value)
	if !live {
		return r.abandon(seq)
	}
	for !step.Done {
		if !r.live() {
			return r.abandon(seq)
		}
		in := Resolved(v)
		if rerr != nil {
			in = Failed(rerr)
		}
		step, err = r.next(seq, in)
		if err != nil {
			return r.fail(err)
		}
		v, live, rerr = r.resolve(step.Value)
		if !live {
			return r.abandon(seq)
		}
	}
	if !r.live() {
		return nil, false, nil
	}
	if rerr != nil {
		return nil, true, rerr
	}
	return v, true, nil
}

// fail reports err unless the run already lost authority, in which case
// the failure is swallowed.
func (r *run) fail(err error) (any, bool, error) {
	if !r.live() {
		return nil, false, nil
	}
	return nil, true, err
}

func (r *run) abandon(seq Sequence) (any, bool, error) {
	if d, ok := seq.(Discarder); ok {
		d.Discard()
	}
	return nil, false, nil
}

func (r *run) next(seq Sequence, in Outcome) (step Step, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			step, err = Step{}, recovered(rec)
		}
	}()
	return seq.Next(in)
}

// resolve turns y into a plain value. live is false only when a nested
// sequence was abandoned as stale.
func (r *run) resolve(y Yield) (v any, live bool, err error) {
	if y.empty() {
		return nil, true, nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			v, live, err = nil, true, recovered(rec)
		}
	}()
	switch y.kind {
	case KindDeferred:
		v, err = await(r.ctx, y.deferred)
		return v, true, err
	case KindSequence:
		return r.drive(y.seq)
	case KindTask:
		v, err = r.runTask(y.task)
		return v, true, err
	default:
		return y.value, true, nil
	}
}

// runTask registers t with the owning task before running it, so a Stop
// issued mid-run reaches it.
func (r *run) runTask(t Task) (any, error) {
	if r.owner != nil && !r.owner.adopt(t) {
		t.Stop()
		return nil, ErrTaskStopped
	}
	if st, ok := t.(*SequenceTask); ok {
		return st.runWithin(r.ctx, r.actual)
	}
	return t.Run(r.ctx)
}
