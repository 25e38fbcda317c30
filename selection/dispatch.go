/*
 * dispatch.go, part of goselect.
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

// dispatch.go is a debug helper mapping a node's selected evaluator to a
// short name, mirroring _gmx_sel_print_evalfunc_name in
// original_source/evaluate.cpp. Go function values have no portable
// identity to compare against (unlike C function pointers), so instead of
// comparing n.Evaluate against each evaluator function, node.go's
// setEvaluate sets n.EvalName together with n.Evaluate and PrintEvalName
// simply reports that string — see
// DESIGN.md's Open Question resolution for the full rationale.
package selection

import (
	"fmt"
	"io"
)

// PrintEvalName writes the debug name of n's selected evaluator to w,
// "none" if n has no evaluator assigned, matching the C++ original's
// behavior for an unset evaluate function pointer.
func PrintEvalName(w io.Writer, n *Node) {
	if n.Evaluate == nil {
		fmt.Fprint(w, "none")
		return
	}
	if n.EvalName == "" {
		fmt.Fprintf(w, "%p", n.Evaluate)
		return
	}
	fmt.Fprint(w, n.EvalName)
}

// EvalName is a pure accessor form of PrintEvalName, for callers that want
// the string rather than to print it.
func EvalName(n *Node) string {
	if n.Evaluate == nil {
		return "none"
	}
	if n.EvalName == "" {
		return fmt.Sprintf("%p", n.Evaluate)
	}
	return n.EvalName
}
