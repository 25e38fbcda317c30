/*
 * eval_leaf.go, part of goselect.
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

// eval_leaf.go holds the Const, Root, SubExpr and SubExprRef evaluators.
// Each function is grounded one-to-one on its namesake in
// original_source/evaluate.cpp, named in each doc comment below.
package selection

import (
	"github.com/rmera/goselect/group"
	"github.com/rmera/goselect/value"
)

// EvalConst sets n's value group to the intersection of its compiled-in
// constant group with g. Mirrors _gmx_sel_evaluate_static.
func EvalConst(ctx *EvalContext, n *Node, g *group.Group) error {
	group.Intersect(n.Value.Grp, n.ConstGroup, g)
	return nil
}

// EvalRoot invokes the child's evaluator over n's cached evaluation domain,
// unless that domain is empty. A domain of -1 (the universe sentinel) is
// passed down as a null group. Root never sets its own value. Mirrors
// _gmx_sel_evaluate_root.
func EvalRoot(ctx *EvalContext, n *Node, g *group.Group) error {
	if n.Cgrp.Isize == 0 || n.Child.Evaluate == nil {
		return nil
	}
	if n.Cgrp.IsUniverse() {
		return n.Child.Evaluate(ctx, n.Child, nil)
	}
	return n.Child.Evaluate(ctx, n.Child, n.Cgrp)
}

// EvalSubExprSimple delegates directly to the single child, which the
// compiler has arranged to write straight into this node's storage (used
// when the subexpression is referenced only once). Mirrors
// _gmx_sel_evaluate_subexpr_simple.
func EvalSubExprSimple(ctx *EvalContext, n *Node, g *group.Group) error {
	if n.Child.Evaluate != nil {
		if err := n.Child.Evaluate(ctx, n.Child, g); err != nil {
			return errDecorate(err, "EvalSubExprSimple")
		}
	}
	n.Value.Nr = n.Child.Value.Nr
	return nil
}

// EvalSubExprStatic evaluates the child exactly once per frame — the first
// call records g itself as the cached group and every later call this
// frame is a no-op, reusing the first result. Requires all callers to pass
// the same group. Mirrors _gmx_sel_evaluate_subexpr_staticeval.
func EvalSubExprStatic(ctx *EvalContext, n *Node, g *group.Group) error {
	if n.Cgrp.Isize != 0 {
		return nil
	}
	if err := n.Child.Evaluate(ctx, n.Child, g); err != nil {
		return errDecorate(err, "EvalSubExprStatic")
	}
	n.Value.Nr = n.Child.Value.Nr
	name := n.Cgrp.Name
	group.Set(n.Cgrp, g.Isize, g.Index[:g.Isize], name, false)
	return nil
}

// EvalSubExprGeneral is the fully memoized SubExpr evaluator (spec.md §4.4,
// §9, and end-to-end scenario 4). The first call over a frame adopts g as
// the cache directly; later calls compute only the missing part of g (the
// set difference against the cache so far) and merge the freshly computed
// values into the existing ones, preserving sort order. Mirrors
// _gmx_sel_evaluate_subexpr.
func EvalSubExprGeneral(ctx *EvalContext, n *Node, g *group.Group) error {
	var gmiss group.Group
	var gmissReserver nodeGroupReserver

	if n.Cgrp.Isize == 0 {
		var assigner temporaryAssigner
		assigner.Assign(n.Child, n)
		err := func() error {
			defer assigner.Release()
			return n.Child.Evaluate(ctx, n.Child, g)
		}()
		if err != nil {
			return errDecorate(err, "EvalSubExprGeneral")
		}
		n.Value.Nr = n.Child.Value.Nr
		name := n.Cgrp.Name
		group.Copy(n.Cgrp, g)
		n.Cgrp.Name = name
		gmiss.Isize = 0
	} else {
		gmissReserver.Reserve(ctx.Pool, &gmiss, g.Isize)
		defer gmissReserver.Release()
		group.Difference(&gmiss, g, n.Cgrp)
	}

	if gmiss.Isize > 0 {
		precondition(isSorted(n.Cgrp), "EvalSubExprGeneral: cgrp.Index must be sorted ascending before merge")

		var reserver nodeReserver
		reserver.Reserve(ctx.Pool, n.Child, gmiss.Isize)
		defer reserver.Release()
		if err := n.Child.Evaluate(ctx, n.Child, &gmiss); err != nil {
			return errDecorate(err, "EvalSubExprGeneral")
		}

		switch n.Value.Kind {
		case value.Group:
			group.Merge(n.Value.Grp, n.Child.Value.Grp, n.Value.Grp)
		case value.Int:
			mergeVectorInt(n, &gmiss)
		case value.Real:
			mergeVectorReal(n, &gmiss)
		case value.Str:
			mergeVectorStr(n, &gmiss)
		case value.Pos:
			return errDecorate(newError(KindNotImplemented, "position-valued general SubExpr is not implemented"), "EvalSubExprGeneral")
		default:
			return errDecorate(internalf("invalid subexpression value kind %v", n.Value.Kind), "EvalSubExprGeneral")
		}
		merged := group.New(n.Cgrp.Name, n.Cgrp.Isize+gmiss.Isize)
		group.Merge(merged, n.Cgrp, &gmiss)
		*n.Cgrp = *merged
	}
	return nil
}

// mergeVectorInt implements the right-to-left in-place merge from
// _gmx_sel_evaluate_subexpr's INT_VALUE case: walk cgrp and gmiss from
// their high ends, writing into slot k counting down from
// len(cgrp)+len(gmiss)-1, and at each step take the gmiss-side value
// whenever the remaining cgrp index is smaller (or exhausted). This only
// works because every write lands at or above the highest index either
// source has left to read — see DESIGN.md's open-question note.
func mergeVectorInt(n *Node, gmiss *group.Group) {
	total := n.Cgrp.Isize + gmiss.Isize
	n.Value.EnsureCap(total)
	i := n.Cgrp.Isize - 1
	j := gmiss.Isize - 1
	for k := total - 1; k >= 0; k-- {
		if i < 0 || (j >= 0 && n.Cgrp.Index[i] < gmiss.Index[j]) {
			n.Value.Ints[k] = n.Child.Value.Ints[j]
			j--
		} else {
			n.Value.Ints[k] = n.Value.Ints[i]
			i--
		}
	}
	n.Value.Nr = total
}

func mergeVectorReal(n *Node, gmiss *group.Group) {
	total := n.Cgrp.Isize + gmiss.Isize
	n.Value.EnsureCap(total)
	i := n.Cgrp.Isize - 1
	j := gmiss.Isize - 1
	for k := total - 1; k >= 0; k-- {
		if i < 0 || (j >= 0 && n.Cgrp.Index[i] < gmiss.Index[j]) {
			n.Value.Reals[k] = n.Child.Value.Reals[j]
			j--
		} else {
			n.Value.Reals[k] = n.Value.Reals[i]
			i--
		}
	}
	n.Value.Nr = total
}

func mergeVectorStr(n *Node, gmiss *group.Group) {
	total := n.Cgrp.Isize + gmiss.Isize
	n.Value.EnsureCap(total)
	i := n.Cgrp.Isize - 1
	j := gmiss.Isize - 1
	for k := total - 1; k >= 0; k-- {
		if i < 0 || (j >= 0 && n.Cgrp.Index[i] < gmiss.Index[j]) {
			n.Value.Strs[k] = n.Child.Value.Strs[j]
			j--
		} else {
			n.Value.Strs[k] = n.Value.Strs[i]
			i--
		}
	}
	n.Value.Nr = total
}

func isSorted(g *group.Group) bool {
	for i := 1; i < g.Isize; i++ {
		if g.Index[i-1] > g.Index[i] {
			return false
		}
	}
	return true
}

// EvalSubExprRefSimple redirects both the target SubExpr and its child to
// write directly into this reference's storage, then invokes the target's
// evaluator. Mirrors _gmx_sel_evaluate_subexprref_simple.
func EvalSubExprRefSimple(ctx *EvalContext, n *Node, g *group.Group) error {
	target := n.Child
	if g != nil {
		retargetStorage(target, n)
		retargetStorage(target.Child, n)
		if err := target.Evaluate(ctx, target, g); err != nil {
			return errDecorate(err, "EvalSubExprRefSimple")
		}
	}
	n.Value.Nr = target.Value.Nr
	if n.Param != nil {
		n.Param.Nr = n.Value.Nr
	}
	return nil
}

// retargetStorage points dst's value storage permanently (not scoped, as
// this is a one-way compiled wiring rather than a stack-scoped guard) at
// src's storage, matching _gmx_selvalue_setstore / _gmx_selvalue_setstore_alloc.
// dst's own Kind and Nalloc are left untouched: the compiled tree already
// guarantees dst's kind matches src's, and the original explicitly
// re-asserts the destination's own prior capacity rather than adopting
// src's, so only the underlying storage reference moves.
func retargetStorage(dst, src *Node) {
	switch src.Value.Kind {
	case value.Int:
		dst.Value.Ints = src.Value.Ints
	case value.Real:
		dst.Value.Reals = src.Value.Reals
	case value.Str:
		dst.Value.Strs = src.Value.Strs
	case value.Pos:
		dst.Value.Positions = src.Value.Positions
	case value.Group:
		dst.Value.Grp = src.Value.Grp
	}
}

// EvalSubExprRef is the memoized-subexpression reference evaluator
// (spec.md §4.4's SubExprRef-general). If g is non-null, it first makes
// sure the target has a value for g, then gathers the values addressed by
// g out of the target's storage by walking the target's cached group in
// lockstep. Mirrors _gmx_sel_evaluate_subexprref.
func EvalSubExprRef(ctx *EvalContext, n *Node, g *group.Group) error {
	target := n.Child
	if g != nil {
		if err := target.Evaluate(ctx, target, g); err != nil {
			return errDecorate(err, "EvalSubExprRef")
		}
	}

	switch n.Value.Kind {
	case value.Int:
		if g == nil {
			n.Value.Nr = target.Value.Nr
			copy(n.Value.Ints, target.Value.Ints[:target.Value.Nr])
		} else {
			n.Value.Nr = g.Isize
			j := 0
			for i := 0; i < g.Isize; i++ {
				for target.Cgrp.Index[j] < g.Index[i] {
					j++
				}
				n.Value.Ints[i] = target.Value.Ints[j]
			}
		}
	case value.Real:
		if g == nil {
			n.Value.Nr = target.Value.Nr
			copy(n.Value.Reals, target.Value.Reals[:target.Value.Nr])
		} else {
			n.Value.Nr = g.Isize
			j := 0
			for i := 0; i < g.Isize; i++ {
				for target.Cgrp.Index[j] < g.Index[i] {
					j++
				}
				n.Value.Reals[i] = target.Value.Reals[j]
			}
		}
	case value.Str:
		if g == nil {
			n.Value.Nr = target.Value.Nr
			copy(n.Value.Strs, target.Value.Strs[:target.Value.Nr])
		} else {
			n.Value.Nr = g.Isize
			j := 0
			for i := 0; i < g.Isize; i++ {
				for target.Cgrp.Index[j] < g.Index[i] {
					j++
				}
				n.Value.Strs[i] = target.Value.Strs[j]
			}
		}
	case value.Pos:
		n.Value.Positions.CopyFrom(target.Value.Positions)
		n.Value.Nr = target.Value.Nr
	case value.Group:
		if g == nil {
			group.Copy(n.Value.Grp, target.Value.Grp)
		} else {
			group.Intersect(n.Value.Grp, target.Value.Grp, g)
		}
		n.Value.Nr = n.Value.Grp.Isize
	default:
		return errDecorate(internalf("invalid subexpression reference value kind %v", n.Value.Kind), "EvalSubExprRef")
	}

	if n.Param != nil {
		n.Param.Nr = n.Value.Nr
	}
	return nil
}
