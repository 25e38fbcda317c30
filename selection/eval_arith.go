/*
 * eval_arith.go, part of goselect.
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

// eval_arith.go holds the Arithmetic evaluator, grounded on
// _gmx_sel_evaluate_arithmetic in original_source/evaluate.cpp.
package selection

import (
	"math"

	"github.com/rmera/goselect/group"
)

// EvalArithmetic evaluates an arithmetic node's one or two children and
// combines them elementwise, broadcasting a SingleVal operand across the
// other operand's length. NEG reads only the left child.
func EvalArithmetic(ctx *EvalContext, n *Node, g *group.Group) error {
	left := n.Child
	var right *Node
	if n.Arith.Op != ArithNeg {
		right = n.Child.Next
	}

	var leftReserver, rightReserver nodeReserver
	leftReserver.Reserve(ctx.Pool, left, g.Isize)
	defer leftReserver.Release()
	if err := left.Evaluate(ctx, left, g); err != nil {
		return errDecorate(err, "EvalArithmetic")
	}

	var rn int
	if right != nil {
		rightReserver.Reserve(ctx.Pool, right, g.Isize)
		defer rightReserver.Release()
		if err := right.Evaluate(ctx, right, g); err != nil {
			return errDecorate(err, "EvalArithmetic")
		}
		rn = right.Value.Nr
	}

	n.Value.EnsureCap(g.Isize)
	ln := left.Value.Nr

	leftSingle := left.hasFlag(SingleVal)
	rightSingle := right != nil && right.hasFlag(SingleVal)

	count := g.Isize
	if n.Arith.Op == ArithNeg {
		for i := 0; i < count; i++ {
			n.Value.Reals[i] = -at(left.Value.Reals, i, ln, leftSingle)
		}
		n.Value.Nr = count
		return nil
	}

	for i := 0; i < count; i++ {
		lv := at(left.Value.Reals, i, ln, leftSingle)
		rv := at(right.Value.Reals, i, rn, rightSingle)
		n.Value.Reals[i] = applyArith(n.Arith.Op, lv, rv)
	}
	n.Value.Nr = count
	return nil
}

// at reads element i of vals, broadcasting element 0 when single is true
// (spec.md's SINGLE_VAL scalar-broadcast rule for mixed-arity operands).
func at(vals []float64, i, n int, single bool) float64 {
	if single {
		return vals[0]
	}
	if i >= n {
		return vals[n-1]
	}
	return vals[i]
}

func applyArith(op ArithOp, l, r float64) float64 {
	switch op {
	case ArithPlus:
		return l + r
	case ArithMinus:
		return l - r
	case ArithMult:
		return l * r
	case ArithDiv:
		return l / r
	case ArithExp:
		return math.Pow(l, r)
	default:
		panic(internalf("applyArith: invalid arithmetic operator %v", op))
	}
}
