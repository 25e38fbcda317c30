/*
 * eval_bool.go, part of goselect.
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

// eval_bool.go holds the short-circuiting Boolean set evaluators (NOT, AND,
// OR), grounded on _gmx_sel_evaluate_not/_and/_or in
// original_source/evaluate.cpp.
package selection

import "github.com/rmera/goselect/group"

// EvalNot evaluates the single child over g, then sets n's value to g minus
// the child's result.
func EvalNot(ctx *EvalContext, n *Node, g *group.Group) error {
	var reserver nodeReserver
	reserver.Reserve(ctx.Pool, n.Child, g.Isize)
	defer reserver.Release()
	if err := n.Child.Evaluate(ctx, n.Child, g); err != nil {
		return errDecorate(err, "EvalNot")
	}
	group.Difference(n.Value.Grp, g, n.Child.Value.Grp)
	return nil
}

// EvalAnd evaluates each child in turn against the running intersection so
// far, short-circuiting as soon as that intersection is empty (an empty
// group stays empty no matter what further children contribute).
func EvalAnd(ctx *EvalContext, n *Node, g *group.Group) error {
	// n.Value.Grp is this node's own result storage, allocated at compile
	// time like any other node's Value — only a child's scratch storage
	// is ever pool-reserved/released here, matching
	// _gmx_sel_evaluate_and, which never reserves sel->v.u.g itself.
	//
	// Seeding the running intersection with g itself (rather than copying
	// the first evaluated child's value directly, as
	// _gmx_sel_evaluate_and does) is equivalent: intersecting g with that
	// child's own value yields exactly that value, since a child is
	// always evaluated as a subset of whatever it's given. A child with
	// no evaluator (a compiler-folded constant) is skipped outright; the
	// original only ever skips the first child this way.
	group.Copy(n.Value.Grp, g)
	for child := n.Child; child != nil && n.Value.Grp.Isize > 0; child = child.Next {
		if child.Evaluate == nil {
			continue
		}
		var childReserver nodeReserver
		childReserver.Reserve(ctx.Pool, child, n.Value.Grp.Isize)
		err := func() error {
			defer childReserver.Release()
			if err := child.Evaluate(ctx, child, n.Value.Grp); err != nil {
				return err
			}
			group.Intersect(n.Value.Grp, n.Value.Grp, child.Value.Grp)
			return nil
		}()
		if err != nil {
			return errDecorate(err, "EvalAnd")
		}
	}
	return nil
}

// EvalOr evaluates each child against the running remainder of g not yet
// accounted for, short-circuiting once the remainder is empty, and finally
// sorts the accumulated union back into ascending order. The remainder is
// reserved from the pool with capacity len(g), and neither it nor the
// accumulator ever holds more than len(g) indices, so every Merge/Difference
// below can write back into its own first argument in place.
func EvalOr(ctx *EvalContext, n *Node, g *group.Group) error {
	// n.Value.Grp is this node's own result storage (allocated at compile
	// time) and is never pool-reserved/released here, matching
	// _gmx_sel_evaluate_or; only the remaining scratch group is.
	var remReserver nodeGroupReserver
	remaining := &group.Group{}
	remReserver.Reserve(ctx.Pool, remaining, g.Isize)
	defer remReserver.Release()

	group.Copy(remaining, g)
	n.Value.Grp.Isize = 0

	for child := n.Child; child != nil && remaining.Isize > 0; child = child.Next {
		err := func() error {
			if child.Evaluate != nil {
				var childReserver nodeReserver
				childReserver.Reserve(ctx.Pool, child, remaining.Isize)
				defer childReserver.Release()
				if err := child.Evaluate(ctx, child, remaining); err != nil {
					return err
				}
			}
			// A child with no evaluator is a compiler-folded constant whose
			// value is already known to be a subset of g for every frame; its
			// existing value is used as-is, per _gmx_sel_evaluate_or.
			group.Merge(n.Value.Grp, n.Value.Grp, child.Value.Grp)
			group.Difference(remaining, remaining, child.Value.Grp)
			return nil
		}()
		if err != nil {
			return errDecorate(err, "EvalOr")
		}
	}
	group.Sort(n.Value.Grp)
	return nil
}
