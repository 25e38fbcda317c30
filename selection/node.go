/*
 * node.go, part of goselect.
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

// node.go holds the tagged tree Node (spec.md §3/§9): a sum type over the
// eight node kinds, dispatched through an Evaluate function slot rather
// than virtual methods, following the DESIGN NOTES in spec.md ("model
// nodes as a sum-type over the kinds... store the dispatch as a match on
// the kind plus per-kind payloads rather than virtual methods on a base
// class"). Grounded on t_selelem in original_source/evaluate.cpp.
package selection

import (
	"github.com/rmera/goselect/group"
	"github.com/rmera/goselect/method"
	"github.com/rmera/goselect/pool"
	"github.com/rmera/goselect/poscalc"
	"github.com/rmera/goselect/v3"
	"github.com/rmera/goselect/value"
)

// NodeKind is the tag of a selection tree node.
type NodeKind int

const (
	KindRootNode NodeKind = iota
	KindConstNode
	KindExpressionNode
	KindSubExprNode
	KindSubExprRefNode
	KindBooleanNode
	KindArithmeticNode
	KindModifierNode
)

// Flags is a per-node bitset, reset and recomputed once per frame (the
// InitFrame/EvalFrame flags) or fixed at compile time (SingleVal/AtomVal).
type Flags uint8

const (
	// InitFrame marks an Expression node whose method declares an
	// init_frame callback that has not yet run this frame.
	InitFrame Flags = 1 << iota
	// EvalFrame marks a parameter node that has already been evaluated
	// (with a null group) this frame.
	EvalFrame
	// SingleVal marks a scalar node (not per-atom).
	SingleVal
	// AtomVal marks a node that must be re-evaluated per group, rather
	// than once per frame with a null group.
	AtomVal
)

func (n *Node) hasFlag(f Flags) bool  { return n.Flags&f != 0 }
func (n *Node) setFlag(f Flags)       { n.Flags |= f }
func (n *Node) clearFlag(f Flags)     { n.Flags &^= f }

// BooleanOp is the operator of a Boolean node.
type BooleanOp int

const (
	BoolNot BooleanOp = iota
	BoolAnd
	BoolOr
)

// ArithOp is the operator of an Arithmetic node.
type ArithOp int

const (
	ArithPlus ArithOp = iota
	ArithMinus
	ArithNeg
	ArithMult
	ArithDiv
	ArithExp
)

// ExpressionPayload is the per-node data for Expression (Method) nodes.
type ExpressionPayload struct {
	Method  *method.VTable
	MData   any
	PosCalc poscalc.Handle
	Pos     *v3.Matrix
}

// BooleanPayload is the per-node data for Boolean nodes.
type BooleanPayload struct {
	Op BooleanOp
}

// ArithPayload is the per-node data for Arithmetic nodes.
type ArithPayload struct {
	Op ArithOp
}

// Param is the optional outbound parameter record a node can carry, used to
// report the produced element count to whatever compiled structure
// referred to this node as a method parameter.
type Param struct {
	Nr int
}

// Node is one node of a compiled selection tree.
type Node struct {
	Kind  NodeKind
	Value *value.Value
	Flags Flags

	Child *Node
	Next  *Node

	// Evaluate is the dispatch slot: the function invoked to compute
	// Value for a given index group. EvalName is the matching debug name
	// registered alongside it (see dispatch.go) — Go function values
	// aren't comparable, so unlike the C++ original this is how the name
	// table recovers a printable name instead of comparing pointers.
	Evaluate func(ctx *EvalContext, n *Node, g *group.Group) error
	EvalName string

	Pool *pool.Pool
	Param *Param

	// ConstGroup holds the full constant group for Const nodes (the
	// compiled-in set, as opposed to Value.Grp which after evaluation
	// holds only the intersection with the most recent evaluation
	// group).
	ConstGroup *group.Group

	// Cgrp is the shared "cached group" slot used by two different node
	// kinds, matching the union member sel->u.cgrp in the original: for a
	// Root node it is the static evaluation domain for this selection
	// (often the universe); for a SubExpr node it is the accumulated
	// union of groups the subexpression has already been evaluated over
	// this frame (see eval_leaf.go's SubExpr-general evaluator).
	Cgrp *group.Group

	Expr  *ExpressionPayload
	Bool  *BooleanPayload
	Arith *ArithPayload
}

// setEvaluate assigns both the dispatch function and its debug name in one
// place, so the two can never drift apart (see DESIGN.md's resolution of
// the dispatch-name-table open question).
func (n *Node) setEvaluate(name string, fn func(ctx *EvalContext, n *Node, g *group.Group) error) {
	n.EvalName = name
	n.Evaluate = fn
}
