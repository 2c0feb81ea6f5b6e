// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"errors"
	"fmt"
	"runtime/debug"

	"code.hybscloud.com/iox"
)

var (
	// ErrSequenceDone is returned by Next on a sequence that already completed.
	ErrSequenceDone = errors.New("gecon: sequence already completed")

	// ErrNilSequence is returned when a Factory produces no sequence.
	ErrNilSequence = errors.New("gecon: factory returned nil sequence")

	// ErrTaskStarted is returned by Run on a task that is already running.
	ErrTaskStarted = errors.New("gecon: task already started")

	// ErrTaskStopped is returned by Run on a task stopped before or during its run.
	ErrTaskStopped = errors.New("gecon: task stopped")

	// ErrStopped rejects queued calls when their wrapper is stopped.
	ErrStopped = errors.New("gecon: caller stopped")

	// ErrCanceled settles a Future that was cancelled before it settled.
	ErrCanceled = errors.New("gecon: deferred value canceled")

	// ErrBacklogFull rejects a queued call when the pending-call queue is full.
	// It wraps iox.ErrWouldBlock.
	ErrBacklogFull = fmt.Errorf("gecon: call backlog full: %w", iox.ErrWouldBlock)
)

// PanicError wraps a panic recovered while driving a sequence.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("gecon: panic in sequence: %v", e.Value)
}

// recovered converts a recovered panic value into an error.
func recovered(r any) error {
	if err, ok := r.(*PanicError); ok {
		return err
	}
	return &PanicError{Value: r, Stack: debug.Stack()}
}
