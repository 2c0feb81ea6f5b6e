// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"code.hybscloud.com/kont"
)

// FromEff converts a Cont-world sequence to a Sequence.
// The computation is reified and stepped one effect at a time.
func FromEff(p kont.Eff[Outcome]) Sequence {
	return FromExpr(kont.Reify(p))
}

// FromExpr converts an Expr-world sequence to a Sequence.
// Every Suspend effect becomes a step; completion becomes the final step.
func FromExpr(p kont.Expr[Outcome]) Sequence {
	return &exprSequence{expr: p}
}

// exprSequence steps a kont computation. The pending suspension is
// affine: it is resumed or discarded exactly once.
type exprSequence struct {
	expr    kont.Expr[Outcome]
	susp    *kont.Suspension[Outcome]
	started bool
	done    bool
}

func (s *exprSequence) Next(in Outcome) (Step, error) {
	if s.done {
		return Step{}, ErrSequenceDone
	}
	var result Outcome
	if !s.started {
		s.started = true
		result, s.susp = kont.StepExpr(s.expr)
	} else {
		result, s.susp = s.susp.Resume(in)
	}
	if s.susp != nil {
		op, ok := s.susp.Op().(yielder)
		if !ok {
			panic("gecon: unhandled effect in sequence")
		}
		return Step{Value: op.yielded()}, nil
	}
	s.done = true
	if err, ok := result.GetLeft(); ok {
		return Step{}, err
	}
	v, _ := result.GetRight()
	if y, ok := v.(Yield); ok {
		return Step{Value: y, Done: true}, nil
	}
	return Step{Value: Plain(v), Done: true}, nil
}

// Discard drops the pending suspension without resuming it.
func (s *exprSequence) Discard() {
	if s.susp != nil {
		s.susp.Discard()
		s.susp = nil
	}
	s.done = true
}
