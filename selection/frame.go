/*
 * frame.go, part of goselect.
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

// frame.go drives one frame's worth of evaluation across a
// SelectionCollection's roots (spec.md §4.3): reset the per-frame flags and
// SubExpr caches, invoke each root, then refresh the exported selections'
// bookkeeping. Grounded on _gmx_sel_evaluate_init, init_frame_eval and
// SelectionEvaluator::evaluate/evaluateFinal in
// original_source/evaluate.cpp.
package selection

import "github.com/rmera/goselect/topo"

// Evaluate runs one frame of evaluation over every root in coll. It installs
// fr and pbc into the evaluation context, clears every node's per-frame
// flags and SubExpr caches, evaluates each root over its static domain, and
// finally refreshes each exported Selection's masses/charges and
// covered-fraction bookkeeping.
func (coll *SelectionCollection) Evaluate(fr *topo.Frame, pbc *topo.PBC) error {
	ctx := &EvalContext{
		Pool:     coll.Pool,
		Universe: coll.Universe,
		Top:      coll.Top,
		Frame:    fr,
		PBC:      pbc,
	}

	for _, root := range coll.Roots {
		initFrameEval(root)
	}

	for _, root := range coll.Roots {
		if root.Evaluate == nil {
			continue
		}
		if err := root.Evaluate(ctx, root, nil); err != nil {
			return errDecorate(err, "Evaluate")
		}
	}

	for _, sel := range coll.Selections {
		sel.refreshMassesAndCharges(coll.Top)
		if coll.Options.CoveredFraction() {
			sel.updateCoveredFractionForFrame()
		}
	}
	return nil
}

// EvaluateFinal runs the end-of-trajectory bookkeeping: each exported
// Selection's average covered fraction is computed from the per-frame
// samples gathered by Evaluate. nFrames is the total number of frames
// processed, used to sanity-check the sample count.
func (coll *SelectionCollection) EvaluateFinal(nFrames int) error {
	for _, sel := range coll.Selections {
		if err := sel.computeAverageCoveredFraction(nFrames); err != nil {
			return errDecorate(err, "EvaluateFinal")
		}
	}
	return nil
}

// initFrameEval clears the per-frame InitFrame and EvalFrame flags across
// the tree rooted at n, sets InitFrame again on every Expression node whose
// method declares an InitFrame callback, and resets every SubExpr node's accumulated cache
// length to 0 so this frame starts with an empty memo. It does not descend
// into a SubExprRef node's child: that child belongs to the SubExpr node it
// references, which is reached and reset through its own root entry instead,
// exactly once regardless of how many times it is referenced. Mirrors
// init_frame_eval in original_source/evaluate.cpp.
func initFrameEval(n *Node) {
	if n == nil {
		return
	}
	n.clearFlag(InitFrame)
	n.clearFlag(EvalFrame)
	if n.Kind == KindExpressionNode && n.Expr.Method.InitFrame != nil {
		n.setFlag(InitFrame)
	}

	if n.Kind == KindSubExprNode && n.Cgrp != nil {
		n.Cgrp.Isize = 0
	}

	if n.Kind == KindSubExprRefNode {
		return
	}

	for child := n.Child; child != nil; child = child.Next {
		initFrameEval(child)
	}
}
