/*
 * context.go, part of goselect.
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
	"github.com/rmera/goselect/group"
	"github.com/rmera/goselect/pool"
	"github.com/rmera/goselect/topo"
)

// EvalContext bundles the per-evaluation inputs every evaluator function
// needs: the memory pool, the universe group, the topology, the current
// frame, and optional periodic-boundary-condition data. Grounded on
// gmx_sel_evaluate_t in original_source/evaluate.cpp.
type EvalContext struct {
	Pool     *pool.Pool
	Universe *group.Group
	Top      *topo.Topology
	Frame    *topo.Frame
	PBC      *topo.PBC
}

// EvalOptions carries the evaluator's runtime toggles, following gochem's
// own option-struct convention exactly (solv.Options/solv.DefaultOptions():
// a chainable getter/setter per field, "set if a value was given, always
// return the current value").
type EvalOptions struct {
	coveredFraction bool
}

// DefaultEvalOptions returns an EvalOptions with covered-fraction
// bookkeeping enabled.
func DefaultEvalOptions() *EvalOptions {
	return &EvalOptions{coveredFraction: true}
}

// CoveredFraction returns whether covered-fraction bookkeeping is enabled,
// setting it first if a value is given.
func (o *EvalOptions) CoveredFraction(v ...bool) bool {
	if len(v) > 0 {
		o.coveredFraction = v[0]
	}
	return o.coveredFraction
}
