/*
 * eval_test.go, part of goselect.
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

package selection

import (
	"reflect"
	"testing"

	"github.com/rmera/goselect/group"
	"github.com/rmera/goselect/pool"
	"github.com/rmera/goselect/value"
)

func universeOfTen() *group.Group {
	g := &group.Group{Name: "all", Isize: 10, Index: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}}
	return g
}

func groupOf(name string, idx ...int) *group.Group {
	return &group.Group{Name: name, Isize: len(idx), Index: idx}
}

func newTestContext() *EvalContext {
	return &EvalContext{Pool: pool.New(), Universe: group.Universe("all")}
}

func TestEvalConstIntersectsWithGroup(t *testing.T) {
	n := &Node{
		Kind:       KindConstNode,
		Value:      value.NewGroup(group.New("odds", 10)),
		ConstGroup: groupOf("odds", 1, 3, 5, 7, 9),
	}
	n.setEvaluate("const", EvalConst)

	g := groupOf("probe", 0, 1, 2, 3, 4, 5)
	if err := n.Evaluate(newTestContext(), n, g); err != nil {
		t.Fatalf("EvalConst: %v", err)
	}
	got := n.Value.Grp.Index[:n.Value.Grp.Isize]
	want := []int{1, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func constChild(name string, idx ...int) *Node {
	n := &Node{
		Kind:       KindConstNode,
		Value:      value.NewGroup(group.New(name, 16)),
		ConstGroup: groupOf(name, idx...),
	}
	n.setEvaluate("const", EvalConst)
	return n
}

func TestEvalNotComplement(t *testing.T) {
	child := constChild("evens", 0, 2, 4, 6, 8)
	n := &Node{
		Kind:  KindBooleanNode,
		Value: value.NewGroup(group.New("not", 16)),
		Child: child,
		Bool:  &BooleanPayload{Op: BoolNot},
	}
	n.setEvaluate("not", EvalNot)

	g := universeOfTen()
	if err := n.Evaluate(newTestContext(), n, g); err != nil {
		t.Fatalf("EvalNot: %v", err)
	}
	got := n.Value.Grp.Index[:n.Value.Grp.Isize]
	want := []int{1, 3, 5, 7, 9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEvalAndShortCircuit(t *testing.T) {
	a := constChild("a", 1, 2, 3, 4, 5)
	b := constChild("b", 3, 4, 5, 6, 7)
	a.Next = b
	n := &Node{
		Kind:  KindBooleanNode,
		Value: value.NewGroup(group.New("and", 16)),
		Child: a,
		Bool:  &BooleanPayload{Op: BoolAnd},
	}
	n.setEvaluate("and", EvalAnd)

	g := universeOfTen()
	if err := n.Evaluate(newTestContext(), n, g); err != nil {
		t.Fatalf("EvalAnd: %v", err)
	}
	got := n.Value.Grp.Index[:n.Value.Grp.Isize]
	want := []int{3, 4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEvalAndEmptyShortCircuits(t *testing.T) {
	a := constChild("a", 1, 2)
	// bNoOverlap shares no index with a, so the running intersection is
	// empty once it has been evaluated.
	bNoOverlap := constChild("b", 5, 6)
	// after must never be evaluated: EvalAnd stops as soon as the running
	// intersection is empty.
	after := &Node{Value: value.NewGroup(group.New("after", 16))}
	after.setEvaluate("after", func(ctx *EvalContext, n *Node, g *group.Group) error {
		t.Errorf("EvalAnd evaluated a child after the running intersection became empty")
		return nil
	})
	a.Next = bNoOverlap
	bNoOverlap.Next = after

	n := &Node{
		Kind:  KindBooleanNode,
		Value: value.NewGroup(group.New("and", 16)),
		Child: a,
		Bool:  &BooleanPayload{Op: BoolAnd},
	}
	n.setEvaluate("and", EvalAnd)

	g := groupOf("probe", 1, 2, 5, 6)
	if err := n.Evaluate(newTestContext(), n, g); err != nil {
		t.Fatalf("EvalAnd: %v", err)
	}
	if n.Value.Grp.Isize != 0 {
		t.Errorf("got %v, want an empty group", n.Value.Grp.Index[:n.Value.Grp.Isize])
	}
}

func TestEvalOrUnion(t *testing.T) {
	a := constChild("a", 1, 3, 5)
	b := constChild("b", 2, 3, 4)
	a.Next = b
	n := &Node{
		Kind:  KindBooleanNode,
		Value: value.NewGroup(group.New("or", 16)),
		Child: a,
		Bool:  &BooleanPayload{Op: BoolOr},
	}
	n.setEvaluate("or", EvalOr)

	g := universeOfTen()
	if err := n.Evaluate(newTestContext(), n, g); err != nil {
		t.Fatalf("EvalOr: %v", err)
	}
	got := n.Value.Grp.Index[:n.Value.Grp.Isize]
	want := []int{1, 2, 3, 4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEvalOrIncludesNoEvaluatorChild(t *testing.T) {
	// folded stands in for a compiler-folded constant child: no Evaluate
	// func, but a value already populated and known to be a subset of any
	// g it will be evaluated against this frame. EvalOr must still fold
	// its value into the union rather than skip it outright.
	folded := &Node{Value: value.NewGroup(groupOf("folded", 1, 5))}
	rest := constChild("rest", 2, 3)
	folded.Next = rest

	n := &Node{
		Kind:  KindBooleanNode,
		Value: value.NewGroup(group.New("or", 16)),
		Child: folded,
		Bool:  &BooleanPayload{Op: BoolOr},
	}
	n.setEvaluate("or", EvalOr)

	g := universeOfTen()
	if err := n.Evaluate(newTestContext(), n, g); err != nil {
		t.Fatalf("EvalOr: %v", err)
	}
	got := n.Value.Grp.Index[:n.Value.Grp.Isize]
	want := []int{1, 2, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// tenFoldEvaluator fills n.Value.Ints with 10*index for every index in g, in
// g's order, used as the SubExpr child in the memoization tests below.
func tenFoldEvaluator(ctx *EvalContext, n *Node, g *group.Group) error {
	for i := 0; i < g.Isize; i++ {
		n.Value.Ints[i] = 10 * g.Index[i]
	}
	n.Value.Nr = g.Isize
	return nil
}

func TestEvalSubExprGeneralMemoizationGrowsCache(t *testing.T) {
	child := &Node{Value: &value.Value{Kind: value.Int}}
	child.setEvaluate("tenfold", tenFoldEvaluator)

	n := &Node{
		Kind:  KindSubExprNode,
		Value: &value.Value{Kind: value.Int},
		Child: child,
		Cgrp:  group.New("cache", 16),
	}
	n.Value.EnsureCap(16)
	n.setEvaluate("subexpr", EvalSubExprGeneral)

	ctx := newTestContext()

	g1 := groupOf("g1", 1, 3, 5)
	if err := n.Evaluate(ctx, n, g1); err != nil {
		t.Fatalf("first EvalSubExprGeneral: %v", err)
	}
	if got, want := n.Value.Ints[:n.Value.Nr], []int{10, 30, 50}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after first call, got %v, want %v", got, want)
	}
	if got, want := n.Cgrp.Index[:n.Cgrp.Isize], []int{1, 3, 5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("cache after first call: got %v, want %v", got, want)
	}

	g2 := groupOf("g2", 1, 2, 3, 4, 5)
	if err := n.Evaluate(ctx, n, g2); err != nil {
		t.Fatalf("second EvalSubExprGeneral: %v", err)
	}
	if got, want := n.Value.Ints[:n.Value.Nr], []int{10, 20, 30, 40, 50}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after merge, got %v, want %v", got, want)
	}
	if got, want := n.Cgrp.Index[:n.Cgrp.Isize], []int{1, 2, 3, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("cache after merge: got %v, want %v", got, want)
	}

	// Evaluating again over a subset of what's already cached must not
	// recompute anything (EvalSubExprGeneral takes the gmiss == 0 path).
	g3 := groupOf("g3", 2, 4)
	if err := n.Evaluate(ctx, n, g3); err != nil {
		t.Fatalf("third EvalSubExprGeneral: %v", err)
	}
	if got, want := n.Cgrp.Index[:n.Cgrp.Isize], []int{1, 2, 3, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("cache must not shrink on a subset re-evaluation: got %v, want %v", got, want)
	}
}

func TestEvalArithmeticBroadcastsSingleVal(t *testing.T) {
	left := &Node{Value: &value.Value{Kind: value.Real}, Flags: SingleVal}
	left.setEvaluate("leftconst", func(ctx *EvalContext, n *Node, g *group.Group) error {
		n.Value.Reals[0] = 2
		n.Value.Nr = 1
		return nil
	})
	right := &Node{Value: &value.Value{Kind: value.Real}}
	right.setEvaluate("rightconst", func(ctx *EvalContext, n *Node, g *group.Group) error {
		for i := 0; i < g.Isize; i++ {
			n.Value.Reals[i] = float64(i + 1)
		}
		n.Value.Nr = g.Isize
		return nil
	})
	left.Next = right

	n := &Node{
		Kind:  KindArithmeticNode,
		Value: &value.Value{Kind: value.Real},
		Child: left,
		Arith: &ArithPayload{Op: ArithMult},
	}
	n.setEvaluate("arith", EvalArithmetic)

	g := groupOf("probe", 0, 1, 2, 3, 4)
	if err := n.Evaluate(newTestContext(), n, g); err != nil {
		t.Fatalf("EvalArithmetic: %v", err)
	}
	got := n.Value.Reals[:n.Value.Nr]
	want := []float64{2, 4, 6, 8, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEvalArithmeticNeg(t *testing.T) {
	src := []float64{1, -2, 3}
	left := &Node{Value: &value.Value{Kind: value.Real}}
	left.setEvaluate("leftconst", func(ctx *EvalContext, n *Node, g *group.Group) error {
		for i := 0; i < g.Isize; i++ {
			n.Value.Reals[i] = src[i]
		}
		n.Value.Nr = g.Isize
		return nil
	})
	n := &Node{
		Kind:  KindArithmeticNode,
		Value: &value.Value{Kind: value.Real},
		Child: left,
		Arith: &ArithPayload{Op: ArithNeg},
	}
	n.setEvaluate("arith", EvalArithmetic)

	g := groupOf("probe", 0, 1, 2)
	if err := n.Evaluate(newTestContext(), n, g); err != nil {
		t.Fatalf("EvalArithmetic (neg): %v", err)
	}
	got := n.Value.Reals[:n.Value.Nr]
	want := []float64{-1, 2, -3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
