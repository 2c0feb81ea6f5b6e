// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"context"
	"time"
)

// Delay returns a sequence that completes with nil after d.
// The timer starts when the sequence is first stepped.
func Delay(d time.Duration) Sequence {
	var done bool
	return SequenceFunc(func(Outcome) (Step, error) {
		if done {
			return Step{}, ErrSequenceDone
		}
		done = true
		return Step{Value: Await(After(d)), Done: true}, nil
	})
}

// DelayTask is a task that completes with nil after a fixed duration.
// Stop releases the timer.
type DelayTask struct {
	taskCore
	d time.Duration
}

// NewDelayTask returns an idle task waiting d once run.
func NewDelayTask(d time.Duration) *DelayTask {
	return &DelayTask{d: d}
}

// Run waits for the delay, for Stop, or for ctx to end.
func (t *DelayTask) Run(ctx context.Context) (any, error) {
	ctx, cancel, err := t.start(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	timer := time.NewTimer(t.d)
	defer timer.Stop()
	select {
	case <-timer.C:
		t.finish()
		return nil, nil
	case <-ctx.Done():
		if t.isStopped() {
			return nil, ErrTaskStopped
		}
		t.finish()
		return nil, context.Cause(ctx)
	}
}

// Stop aborts a pending delay.
func (t *DelayTask) Stop() {
	t.stop()
}
