// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

// Kind tags the payload of a Yield.
type Kind uint8

const (
	// KindNone is the zero Yield; it resolves to nil.
	KindNone Kind = iota
	// KindPlain carries a value that needs no resolution.
	KindPlain
	// KindDeferred carries a value that settles later.
	KindDeferred
	// KindSequence carries a nested step sequence.
	KindSequence
	// KindTask carries a nested cancellable task.
	KindTask
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPlain:
		return "plain"
	case KindDeferred:
		return "deferred"
	case KindSequence:
		return "sequence"
	case KindTask:
		return "task"
	default:
		return "unknown"
	}
}

// Yield is the value carried by a Step. Its kind is fixed at construction
// and inspected exactly once when the step is resolved.
type Yield struct {
	kind     Kind
	value    any
	deferred Deferred
	seq      Sequence
	task     Task
}

// Plain yields v as is.
func Plain(v any) Yield {
	return Yield{kind: KindPlain, value: v}
}

// Await yields a deferred value; the sequence resumes with its settlement.
func Await(d Deferred) Yield {
	return Yield{kind: KindDeferred, deferred: d}
}

// Nest yields a nested sequence; the sequence resumes with its final value.
func Nest(s Sequence) Yield {
	return Yield{kind: KindSequence, seq: s}
}

// Child yields a nested task; the sequence resumes with its result.
// Inside a SequenceTask the child is registered so Stop reaches it.
func Child(t Task) Yield {
	return Yield{kind: KindTask, task: t}
}

// Kind returns the payload kind.
func (y Yield) Kind() Kind {
	return y.kind
}

// empty reports whether y resolves to nil without any resolution.
func (y Yield) empty() bool {
	switch y.kind {
	case KindPlain:
		return y.value == nil
	case KindDeferred:
		return y.deferred == nil
	case KindSequence:
		return y.seq == nil
	case KindTask:
		return y.task == nil
	default:
		return true
	}
}
