/*
 * guards.go, part of goselect.
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

// guards.go implements the two scoped guards that are this package's
// correctness spine (spec.md §4.2, §9): nodeReserver and temporaryAssigner.
// Both are the Go defer-based analogue of the C++ RAII classes
// MempoolSelelemReserver and SelelemTemporaryValueAssigner in
// original_source/evaluate.cpp: acquire on construction/Reserve, release on
// a deferred Release() call, so a panic unwinding out of an evaluator still
// runs the release before propagating further (Go's defer runs even when a
// function returns via panic, which is exactly the destructor guarantee
// the C++ original relies on).
package selection

import (
	"github.com/rmera/goselect/group"
	"github.com/rmera/goselect/pool"
	"github.com/rmera/goselect/value"
)

// nodeReserver reserves scratch storage for a node's Value from the pool on
// entry, and releases it back on Release(). At most one active reservation
// per instance; re-reserving without releasing first is a programmer error.
type nodeReserver struct {
	pool *pool.Pool
	node *Node
}

// Reserve sizes node's Value storage for count elements, drawn from p.
func (r *nodeReserver) Reserve(p *pool.Pool, node *Node, count int) {
	if r.node != nil {
		panic(internalf("nodeReserver: can only reserve one element per instance"))
	}
	reserveNodeValue(p, node, count)
	r.pool = p
	r.node = node
}

// Release returns the reserved storage to the pool, if any is held. Safe to
// call on a reserver that never reserved anything (including via defer on
// every exit path, even when Reserve itself was never reached).
func (r *nodeReserver) Release() {
	if r.node != nil {
		releaseNodeValue(r.pool, r.node)
		r.node = nil
	}
}

func reserveNodeValue(p *pool.Pool, n *Node, count int) {
	v := n.Value
	switch v.Kind {
	case value.Int:
		v.Ints = p.ReserveInts(count)
		v.Nalloc = count
	case value.Real:
		v.Reals = p.ReserveReals(count)
		v.Nalloc = count
	case value.Str:
		v.Strs = p.ReserveStrs(count)
		v.Nalloc = count
	case value.Pos:
		v.Positions = p.ReservePos(count)
		v.Nalloc = count
	case value.Group:
		p.AllocGroup(v.Grp, count)
	default:
		panic(internalf("reserveNodeValue: invalid value kind %v", v.Kind))
	}
	v.Borrowed = true
}

func releaseNodeValue(p *pool.Pool, n *Node) {
	v := n.Value
	switch v.Kind {
	case value.Int:
		p.ReleaseInts(v.Ints)
		v.Ints = nil
	case value.Real:
		p.ReleaseReals(v.Reals)
		v.Reals = nil
	case value.Str:
		p.ReleaseStrs(v.Strs)
		v.Strs = nil
	case value.Pos:
		p.ReleasePos(v.Positions)
		v.Positions = nil
	case value.Group:
		p.FreeGroup(v.Grp)
	default:
		panic(internalf("releaseNodeValue: invalid value kind %v", v.Kind))
	}
	v.Nalloc = 0
	v.Borrowed = false
}

// nodeGroupReserver reserves scratch storage for a bare *group.Group (not
// attached to any Node's Value), used for transient groups such as the
// "missing" set computed inside EvalSubExprGeneral. Mirrors
// MempoolGroupReserver in original_source/evaluate.cpp.
type nodeGroupReserver struct {
	pool *pool.Pool
	grp  *group.Group
}

// Reserve sizes g for count elements, drawn from p.
func (r *nodeGroupReserver) Reserve(p *pool.Pool, g *group.Group, count int) {
	if r.grp != nil {
		panic(internalf("nodeGroupReserver: can only reserve one element per instance"))
	}
	p.AllocGroup(g, count)
	r.pool = p
	r.grp = g
}

// Release returns the reserved storage to the pool, if any is held.
func (r *nodeGroupReserver) Release() {
	if r.grp != nil {
		r.pool.FreeGroup(r.grp)
		r.grp = nil
	}
}

// temporaryAssigner retargets a node's value storage to another node's
// storage for the duration of a scope, restoring the original storage and
// capacity on Release(). Requires matching value kinds.
type temporaryAssigner struct {
	node   *Node
	kind   value.Kind
	nalloc int

	savedInts  []int
	savedReals []float64
	savedStrs  []string
	savedPos   *value.Value // only Positions/Grp fields are meaningful here
}

// Assign points sel's value storage at vsource's storage, saving sel's
// previous storage and capacity for Release to restore.
func (a *temporaryAssigner) Assign(sel, vsource *Node) {
	if a.node != nil {
		panic(internalf("temporaryAssigner: can only assign one element per instance"))
	}
	if sel.Value.Kind != vsource.Value.Kind {
		panic(internalf("temporaryAssigner: mismatched value kinds"))
	}

	a.node = sel
	a.kind = sel.Value.Kind
	a.nalloc = sel.Value.Nalloc

	switch a.kind {
	case value.Int:
		a.savedInts = sel.Value.Ints
		sel.Value.Ints = vsource.Value.Ints
	case value.Real:
		a.savedReals = sel.Value.Reals
		sel.Value.Reals = vsource.Value.Reals
	case value.Str:
		a.savedStrs = sel.Value.Strs
		sel.Value.Strs = vsource.Value.Strs
	case value.Pos:
		a.savedPos = &value.Value{Positions: sel.Value.Positions}
		sel.Value.Positions = vsource.Value.Positions
	case value.Group:
		a.savedPos = &value.Value{Grp: sel.Value.Grp}
		sel.Value.Grp = vsource.Value.Grp
	default:
		panic(internalf("temporaryAssigner: invalid value kind %v", a.kind))
	}
	sel.Value.Nalloc = vsource.Value.Nalloc
}

// Release restores the node's original storage and capacity, if Assign was
// ever called on this instance.
func (a *temporaryAssigner) Release() {
	if a.node == nil {
		return
	}
	switch a.kind {
	case value.Int:
		a.node.Value.Ints = a.savedInts
	case value.Real:
		a.node.Value.Reals = a.savedReals
	case value.Str:
		a.node.Value.Strs = a.savedStrs
	case value.Pos:
		a.node.Value.Positions = a.savedPos.Positions
	case value.Group:
		a.node.Value.Grp = a.savedPos.Grp
	}
	a.node.Value.Nalloc = a.nalloc
	a.node = nil
}
