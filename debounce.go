// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"sync"
	"time"
)

// Debouncer delays calls to fn until wait has passed without another
// call, then invokes fn once with the arguments of the most recent call.
type Debouncer struct {
	fn   func(args ...any)
	wait time.Duration
	gen  generation

	mu      sync.Mutex
	timer   *time.Timer
	args    []any
	pending bool
}

// NewDebouncer returns a trailing-edge debouncer for fn.
func NewDebouncer(fn func(args ...any), wait time.Duration) *Debouncer {
	return &Debouncer{fn: fn, wait: wait}
}

// Call schedules fn with args, replacing any call still waiting.
func (d *Debouncer) Call(args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m := d.gen.next()
	d.args = args
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() { d.fire(m) })
}

func (d *Debouncer) fire(m Marker) {
	d.mu.Lock()
	if !d.pending || d.gen.current() != m {
		d.mu.Unlock()
		return
	}
	args := d.args
	d.args = nil
	d.pending = false
	d.mu.Unlock()
	d.fn(args...)
}

// Flush invokes the waiting call now, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	m := d.gen.current()
	d.mu.Unlock()
	d.fire(m)
}

// Stop drops the waiting call, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen.next()
	d.args = nil
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}
