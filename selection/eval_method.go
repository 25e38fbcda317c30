/*
 * eval_method.go, part of goselect.
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

// eval_method.go holds the Expression (method) and Modifier evaluators,
// grounded on _gmx_sel_evaluate_method_params, _gmx_sel_evaluate_method and
// _gmx_sel_evaluate_modifier in original_source/evaluate.cpp.
package selection

import (
	"github.com/rmera/goselect/group"
	"github.com/rmera/goselect/value"
)

// evalMethodParams evaluates every child of an Expression or Modifier node
// to produce its parameter values (spec.md §4.4's parameter-child
// sub-protocol): a child already marked EvalFrame this frame is skipped; an
// AtomVal child is re-evaluated over g; any other child is evaluated once,
// over a null group, and marked EvalFrame so later calls this frame skip
// it. A child with no evaluator (a compiler-folded constant) is skipped.
// Mirrors _gmx_sel_evaluate_method_params.
func evalMethodParams(ctx *EvalContext, n *Node, g *group.Group) error {
	for child := n.Child; child != nil; child = child.Next {
		if child.Evaluate == nil || child.hasFlag(EvalFrame) {
			continue
		}
		if child.hasFlag(AtomVal) {
			if err := child.Evaluate(ctx, child, g); err != nil {
				return errDecorate(err, "evalMethodParams")
			}
		} else {
			child.setFlag(EvalFrame)
			if err := child.Evaluate(ctx, child, nil); err != nil {
				return errDecorate(err, "evalMethodParams")
			}
		}
	}
	return nil
}

// EvalMethod runs a method plugin over g (spec.md §6). Parameter children
// are evaluated first via evalMethodParams. If the method declares an
// InitFrame callback and this is the first evaluation this frame, InitFrame
// runs next and the InitFrame flag is cleared. If the node has an attached
// position calculator, the calculator is refreshed over g and the method's
// PUpdate runs against the resulting positions instead of Update running
// directly against g.
func EvalMethod(ctx *EvalContext, n *Node, g *group.Group) error {
	if err := evalMethodParams(ctx, n, g); err != nil {
		return errDecorate(err, "EvalMethod")
	}

	e := n.Expr
	if n.hasFlag(InitFrame) {
		n.clearFlag(InitFrame)
		if e.Method.InitFrame != nil {
			if err := e.Method.InitFrame(ctx.Top, ctx.Frame, ctx.PBC, e.MData); err != nil {
				return errDecorate(err, "EvalMethod")
			}
		}
	}

	if e.PosCalc != nil {
		precondition(e.Pos != nil, "EvalMethod: a position-calculator node must carry its own position buffer")
		if err := e.PosCalc.Update(e.Pos, g, ctx.Frame, ctx.PBC); err != nil {
			return errDecorate(err, "EvalMethod")
		}
		if err := e.Method.PUpdate(ctx.Top, ctx.Frame, ctx.PBC, e.Pos, n.Value, e.MData); err != nil {
			return errDecorate(err, "EvalMethod")
		}
	} else {
		if err := e.Method.Update(ctx.Top, ctx.Frame, ctx.PBC, g, n.Value, e.MData); err != nil {
			return errDecorate(err, "EvalMethod")
		}
	}

	if n.Param != nil {
		n.Param.Nr = n.Value.Nr
	}
	return nil
}

// EvalModifier evaluates a Modifier node (spec.md §4.4): parameter children
// (including its required Pos-valued child, which is just the first
// parameter in the list) are evaluated via evalMethodParams, InitFrame runs
// on first touch, and the method's PUpdate is fed the child's already
// computed positions directly — a Modifier has no position calculator of
// its own. Any value kind on the child besides Pos is "not implemented",
// per spec.md §6's Non-goals.
func EvalModifier(ctx *EvalContext, n *Node, g *group.Group) error {
	precondition(n.Child != nil, "EvalModifier: a modifier node requires a child")

	if err := evalMethodParams(ctx, n, g); err != nil {
		return errDecorate(err, "EvalModifier")
	}

	if n.Child.Value.Kind != value.Pos {
		return errDecorate(newError(KindNotImplemented, "modifier over a non-position child is not implemented"), "EvalModifier")
	}

	e := n.Expr
	if n.hasFlag(InitFrame) {
		n.clearFlag(InitFrame)
		if e.Method.InitFrame != nil {
			if err := e.Method.InitFrame(ctx.Top, ctx.Frame, ctx.PBC, e.MData); err != nil {
				return errDecorate(err, "EvalModifier")
			}
		}
	}

	if err := e.Method.PUpdate(ctx.Top, ctx.Frame, ctx.PBC, n.Child.Value.Positions, n.Value, e.MData); err != nil {
		return errDecorate(err, "EvalModifier")
	}
	return nil
}
