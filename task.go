// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"context"
	"slices"
	"sync"
)

// Task is a cancellable unit of work.
//
// Run drives the work to completion. Stop is idempotent: it aborts a
// pending run and every task nested in it. Done reports whether the task
// completed or was stopped; it becomes true exactly once.
type Task interface {
	Run(ctx context.Context) (any, error)
	Stop()
	Done() bool
}

// TaskState is the lifecycle state of a task: idle → running → done.
type TaskState uint32

const (
	TaskIdle TaskState = iota
	TaskRunning
	TaskDone
)

func (s TaskState) String() string {
	switch s {
	case TaskIdle:
		return "idle"
	case TaskRunning:
		return "running"
	case TaskDone:
		return "done"
	default:
		return "unknown"
	}
}

// taskCore is the lifecycle shared by the provided tasks.
type taskCore struct {
	mu      sync.Mutex
	state   TaskState
	stopped bool
	cancel  context.CancelFunc
}

// start moves an idle task to running and derives the context its work
// observes. The caller owns the returned cancel function.
func (c *taskCore) start(ctx context.Context) (context.Context, context.CancelFunc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.stopped:
		return nil, nil, ErrTaskStopped
	case c.state != TaskIdle:
		return nil, nil, ErrTaskStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = TaskRunning
	return ctx, cancel, nil
}

// finish marks natural completion. It is a no-op after stop.
func (c *taskCore) finish() {
	c.mu.Lock()
	c.state = TaskDone
	c.mu.Unlock()
}

// stop reports whether this call performed the transition to done.
func (c *taskCore) stop() bool {
	c.mu.Lock()
	if c.state == TaskDone {
		c.mu.Unlock()
		return false
	}
	c.stopped = true
	c.state = TaskDone
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	return true
}

func (c *taskCore) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// Done reports whether the task completed or was stopped.
func (c *taskCore) Done() bool {
	return c.State() == TaskDone
}

// State returns the current lifecycle state.
func (c *taskCore) State() TaskState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SequenceTask runs a sequence as a task. Tasks yielded while it runs,
// directly or from nested sequences, become its children: they are
// registered before they run, and Stop reaches all of them.
type SequenceTask struct {
	taskCore
	seq      Sequence
	children []Task
}

// NewSequenceTask returns an idle task driving seq.
func NewSequenceTask(seq Sequence) *SequenceTask {
	return &SequenceTask{seq: seq}
}

// Run drives the sequence to completion. A task stopped during its run
// returns ErrTaskStopped.
func (t *SequenceTask) Run(ctx context.Context) (any, error) {
	return t.runWithin(ctx, nil)
}

// runWithin runs t as part of an enclosing run whose staleness predicate
// is parent.
func (t *SequenceTask) runWithin(ctx context.Context, parent Actual) (any, error) {
	ctx, cancel, err := t.start(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	r := &run{
		ctx:   ctx,
		owner: t,
		actual: func() bool {
			return !t.isStopped() && (parent == nil || parent())
		},
	}
	v, live, err := r.drive(t.seq)
	t.finish()
	if !live {
		return nil, ErrTaskStopped
	}
	return v, err
}

// adopt registers child. It reports false once t has been stopped.
func (t *SequenceTask) adopt(child Task) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.children = append(t.children, child)
	return true
}

// Children returns the tasks discovered so far.
func (t *SequenceTask) Children() []Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.children)
}

// Stop aborts the run and stops every child.
func (t *SequenceTask) Stop() {
	if !t.stop() {
		return
	}
	for _, c := range t.Children() {
		c.Stop()
	}
}
