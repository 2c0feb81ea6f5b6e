// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"code.hybscloud.com/kont"
)

// Suspend is the effect operation of a Cont-world sequence.
// Perform(Suspend{Value: y}) yields y to the executor and resumes with
// the Outcome of resolving it.
type Suspend struct {
	kont.Phantom[Outcome]
	Value Yield
}

// yielded implements yielder.
func (s Suspend) yielded() Yield {
	return s.Value
}

// yielder is the structural interface for operations a Cont-world
// sequence may perform.
type yielder interface {
	yielded() Yield
}
