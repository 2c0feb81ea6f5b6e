// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import "code.hybscloud.com/kont"

// Outcome is what a sequence is resumed with: Right(value) after its
// previous step resolved, Left(err) when that resolution failed.
type Outcome = kont.Either[error, any]

// Resolved returns the Outcome of a successful resolution.
func Resolved(v any) Outcome {
	return kont.Right[error, any](v)
}

// Failed returns the Outcome of a failed resolution.
func Failed(err error) Outcome {
	return kont.Left[error, any](err)
}

// Step is one item produced by a sequence. Done marks the final step;
// its resolved value is the sequence's result.
type Step struct {
	Value Yield
	Done  bool
}

// Sequence is a lazy, resumable producer of steps.
//
// The first Next receives Resolved(nil). Every later Next receives the
// Outcome of resolving the previous step's value. A Left outcome is an
// injected failure: the sequence may recover and keep producing steps, or
// return a non-nil error to let the failure escape. Once a step with Done
// has been produced, Next returns ErrSequenceDone.
type Sequence interface {
	Next(in Outcome) (Step, error)
}

// Discarder is implemented by sequences that hold resources which must be
// released when the executor abandons them before completion.
type Discarder interface {
	Discard()
}

// Factory creates a fresh sequence for one call.
type Factory func(args ...any) Sequence

// SequenceFunc adapts a function to Sequence.
type SequenceFunc func(in Outcome) (Step, error)

func (f SequenceFunc) Next(in Outcome) (Step, error) {
	return f(in)
}

// stepSequence yields a fixed list of values.
type stepSequence struct {
	items []Yield
	pos   int
}

// Steps returns a sequence yielding each item in order; the last item is
// the final step. An injected failure is not handled and escapes.
// Steps() with no items completes immediately with nil.
func Steps(items ...Yield) Sequence {
	return &stepSequence{items: items}
}

func (s *stepSequence) Next(in Outcome) (Step, error) {
	if s.pos > len(s.items) || (s.pos == len(s.items) && s.pos > 0) {
		return Step{}, ErrSequenceDone
	}
	if err, ok := in.GetLeft(); ok {
		s.pos = len(s.items) + 1
		return Step{}, err
	}
	if len(s.items) == 0 {
		s.pos = 1
		return Step{Done: true}, nil
	}
	y := s.items[s.pos]
	s.pos++
	return Step{Value: y, Done: s.pos == len(s.items)}, nil
}
