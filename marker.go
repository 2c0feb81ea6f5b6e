// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import "code.hybscloud.com/atomix"

// Marker identifies one call of a wrapper. Markers only ever grow,
// so a marker that lost authority can never regain it.
type Marker = uint64

// Actual reports whether the run that owns it is still authoritative.
// Once it returns false it never returns true again.
type Actual func() bool

// generation is the monotonic marker source of a single wrapper.
type generation struct {
	n atomix.Uint64
}

// next invalidates every marker handed out so far and returns a fresh one.
func (g *generation) next() Marker {
	return g.n.Add(1)
}

// current returns the most recent marker.
func (g *generation) current() Marker {
	return g.n.Load()
}

// actual returns the staleness predicate for m.
func (g *generation) actual(m Marker) Actual {
	return func() bool {
		return g.n.Load() == m
	}
}
