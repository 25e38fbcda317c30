/*
 * method.go, part of goselect.
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

// Package method defines the plugin contract an Expression or Modifier node
// calls into (spec.md §6): an optional first-touch InitFrame callback, and
// either an atom-group Update or a position-valued PUpdate. The evaluator
// never implements a method itself; this package only fixes the shape it
// dispatches to, matching _gmx_sel_evaluate_method/_gmx_sel_evaluate_modifier
// in original_source/evaluate.cpp.
package method

import (
	"github.com/rmera/goselect/group"
	"github.com/rmera/goselect/topo"
	"github.com/rmera/goselect/v3"
	"github.com/rmera/goselect/value"
)

// VTable is the callback set a method or modifier plugin provides. Update
// is used when the node has no attached position calculator; PUpdate is
// used when it does (Method) or always (Modifier). Exactly one of Update,
// PUpdate must be non-nil for a given node, matching the compiled tree's
// expectations; the evaluator does not validate this beyond calling
// whichever one is appropriate and letting a nil call panic.
type VTable struct {
	// InitFrame is called once per frame, the first time the owning node
	// is evaluated, if non-nil.
	InitFrame func(top *topo.Topology, fr *topo.Frame, pbc *topo.PBC, mdata any) error

	// Update computes the node's value over the atom group g.
	Update func(top *topo.Topology, fr *topo.Frame, pbc *topo.PBC, g *group.Group, out *value.Value, mdata any) error

	// PUpdate computes the node's value from a set of reference positions.
	PUpdate func(top *topo.Topology, fr *topo.Frame, pbc *topo.PBC, pos *v3.Matrix, out *value.Value, mdata any) error
}
