/*
 * frame_test.go, part of goselect.
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
	"github.com/rmera/goselect/method"
	"github.com/rmera/goselect/topo"
	"github.com/rmera/goselect/value"
)

func TestInitFrameEvalSetsInitFrameOnlyForExpressionWithInitFrameMethod(t *testing.T) {
	withInitFrame := &Node{
		Kind:  KindExpressionNode,
		Value: &value.Value{Kind: value.Real},
		Flags: EvalFrame,
		Expr:  &ExpressionPayload{Method: &method.VTable{InitFrame: func(*topo.Topology, *topo.Frame, *topo.PBC, any) error { return nil }}},
	}
	withoutInitFrame := &Node{
		Kind:  KindExpressionNode,
		Value: &value.Value{Kind: value.Real},
		Flags: EvalFrame,
		Expr:  &ExpressionPayload{Method: &method.VTable{}},
	}
	nonExpression := &Node{Value: &value.Value{Kind: value.Group}, Flags: EvalFrame}
	nonExpression.Child = withInitFrame
	withInitFrame.Next = withoutInitFrame

	initFrameEval(nonExpression)

	if !withInitFrame.hasFlag(InitFrame) || withInitFrame.hasFlag(EvalFrame) {
		t.Errorf("expression node with an InitFrame method: got flags %v", withInitFrame.Flags)
	}
	if withoutInitFrame.hasFlag(InitFrame) || withoutInitFrame.hasFlag(EvalFrame) {
		t.Errorf("expression node with no InitFrame method must not get the flag: got %v", withoutInitFrame.Flags)
	}
	if nonExpression.hasFlag(InitFrame) || nonExpression.hasFlag(EvalFrame) {
		t.Errorf("non-expression node must never get InitFrame: got %v", nonExpression.Flags)
	}
}

func TestInitFrameEvalDoesNotDescendThroughSubExprRef(t *testing.T) {
	grandchild := &Node{Value: &value.Value{Kind: value.Group}, Flags: EvalFrame}
	ref := &Node{Kind: KindSubExprRefNode, Value: &value.Value{Kind: value.Group}, Child: grandchild, Flags: EvalFrame}
	root := &Node{Kind: KindRootNode, Value: &value.Value{Kind: value.Group}, Child: ref}

	initFrameEval(root)

	if ref.hasFlag(EvalFrame) {
		t.Errorf("subexprref node should have its own flags cleared")
	}
	if !grandchild.hasFlag(EvalFrame) {
		t.Errorf("subexprref's child must be left untouched by this walk, reached only through its own root")
	}
}

func TestInitFrameEvalResetsSubExprCache(t *testing.T) {
	cached := group.New("cache", 4)
	group.Set(cached, 3, []int{1, 2, 3}, "cache", false)
	sub := &Node{Kind: KindSubExprNode, Value: &value.Value{Kind: value.Int}, Cgrp: cached}
	root := &Node{Kind: KindRootNode, Value: &value.Value{Kind: value.Group}, Child: sub}

	initFrameEval(root)

	if sub.Cgrp.Isize != 0 {
		t.Errorf("subexpr cache must reset to length 0 at the start of a frame, got %d", sub.Cgrp.Isize)
	}
}

func TestEvalMethodRunsInitFrameOnlyOnce(t *testing.T) {
	calls := 0
	vt := &method.VTable{
		InitFrame: func(top *topo.Topology, fr *topo.Frame, pbc *topo.PBC, mdata any) error {
			calls++
			return nil
		},
		Update: func(top *topo.Topology, fr *topo.Frame, pbc *topo.PBC, g *group.Group, out *value.Value, mdata any) error {
			out.Nr = g.Isize
			return nil
		},
	}
	n := &Node{
		Kind:  KindExpressionNode,
		Value: &value.Value{Kind: value.Real, Reals: make([]float64, 4)},
		Flags: InitFrame,
		Expr:  &ExpressionPayload{Method: vt},
	}
	n.setEvaluate("method", EvalMethod)

	ctx := &EvalContext{}
	g := groupOf("probe", 0, 1)
	if err := n.Evaluate(ctx, n, g); err != nil {
		t.Fatalf("first EvalMethod: %v", err)
	}
	if err := n.Evaluate(ctx, n, g); err != nil {
		t.Fatalf("second EvalMethod: %v", err)
	}
	if calls != 1 {
		t.Errorf("InitFrame should run exactly once per frame, ran %d times", calls)
	}
	if n.hasFlag(InitFrame) {
		t.Errorf("InitFrame flag should be cleared after first run")
	}
}

func TestEvalSubExprRefGathersByIndex(t *testing.T) {
	target := &Node{
		Kind:  KindSubExprNode,
		Value: &value.Value{Kind: value.Int},
		Cgrp:  group.New("cache", 16),
	}
	target.Value.EnsureCap(16)
	tc := &Node{Value: &value.Value{Kind: value.Int}}
	tc.setEvaluate("tenfold", tenFoldEvaluator)
	target.Child = tc
	target.setEvaluate("subexpr", EvalSubExprGeneral)

	ref := &Node{
		Kind:  KindSubExprRefNode,
		Value: &value.Value{Kind: value.Int, Ints: make([]int, 16)},
		Child: target,
	}
	ref.setEvaluate("subexprref", EvalSubExprRef)

	ctx := newTestContext()
	full := groupOf("full", 1, 2, 3, 4, 5)
	if err := ref.Evaluate(ctx, ref, full); err != nil {
		t.Fatalf("populate target: %v", err)
	}

	probe := groupOf("probe", 2, 4)
	if err := ref.Evaluate(ctx, ref, probe); err != nil {
		t.Fatalf("EvalSubExprRef: %v", err)
	}
	got := ref.Value.Ints[:ref.Value.Nr]
	want := []int{20, 40}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
