/*
 * value.go, part of goselect.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package value implements the discriminated Value record described in
// spec.md §3 (gmx_ana_selvalue_t in the original): a value kind, a live
// element count Nr, a capacity Nalloc, and a kind-matched storage field.
package value

import (
	"github.com/rmera/goselect/group"
	"github.com/rmera/goselect/v3"
)

// Kind identifies which of the five value kinds a Value currently holds.
type Kind int

const (
	None Kind = iota
	Int
	Real
	Str
	Pos
	Group
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Int:
		return "int"
	case Real:
		return "real"
	case Str:
		return "str"
	case Pos:
		return "pos"
	case Group:
		return "group"
	default:
		return "unknown"
	}
}

// Value is a typed, resizable scratch slot. Nr is the number of elements
// currently holding meaningful data; Nalloc is the capacity backing the
// storage. Exactly one of Ints/Reals/Strs/Positions/Grp is meaningful,
// selected by Kind.
type Value struct {
	Kind   Kind
	Nr     int
	Nalloc int

	Ints      []int
	Reals     []float64
	Strs      []string
	Positions *v3.Matrix
	Grp       *group.Group

	// Borrowed is true when the backing storage is on loan from a pool
	// reservation or a temporary-value redirection rather than owned by
	// this Value outright. It exists so callers can tell, when inspecting
	// a Node's Value, whether releasing/restoring is still pending.
	Borrowed bool
}

// NewGroup returns a Value of Group kind wrapping g.
func NewGroup(g *group.Group) *Value {
	return &Value{Kind: Group, Grp: g}
}

// NewPos returns a Value of Pos kind wrapping m.
func NewPos(m *v3.Matrix) *Value {
	return &Value{Kind: Pos, Positions: m, Nalloc: m.NVecs()}
}

// EnsureCap grows the vector-kind storage (Int/Real/Str) so that Nalloc is
// at least n, preserving existing content. It is a no-op for Group and Pos
// kinds, whose storage is managed by the group/v3 packages respectively.
func (v *Value) EnsureCap(n int) {
	switch v.Kind {
	case Int:
		if cap(v.Ints) < n {
			grown := make([]int, n)
			copy(grown, v.Ints)
			v.Ints = grown
		}
		v.Nalloc = cap(v.Ints)
	case Real:
		if cap(v.Reals) < n {
			grown := make([]float64, n)
			copy(grown, v.Reals)
			v.Reals = grown
		}
		v.Nalloc = cap(v.Reals)
	case Str:
		if cap(v.Strs) < n {
			grown := make([]string, n)
			copy(grown, v.Strs)
			v.Strs = grown
		}
		v.Nalloc = cap(v.Strs)
	}
}
