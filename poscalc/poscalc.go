/*
 * poscalc.go, part of goselect.
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

// Package poscalc exposes the position-calculation engine to the evaluator
// "by name only" (spec.md §1/§6): the evaluator calls Handle.Update and
// never looks inside it. Mirrors gmx_ana_poscalc_update in
// original_source/evaluate.cpp.
package poscalc

import (
	"github.com/rmera/goselect/group"
	"github.com/rmera/goselect/topo"
	"github.com/rmera/goselect/v3"
)

// Handle computes reference positions (e.g. centers of mass) for a group of
// atoms. It is supplied by the out-of-scope position-calculation engine;
// the evaluator only calls Update.
type Handle interface {
	Update(out *v3.Matrix, g *group.Group, fr *topo.Frame, pbc *topo.PBC) error
}
