/*
 * collection.go, part of goselect.
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

// collection.go holds SelectionCollection, the compiled forest of root
// nodes evaluated together against one topology and pool, and Selection,
// the exported per-selection bookkeeping (masses, charges, covered
// fraction) layered on top of a root's evaluated group. This bookkeeping is
// a supplemented feature (spec.md's distillation left it out; see
// original_source/evaluate.cpp's calls into SelectionData::refreshMasses
// AndCharges and computeAverageCoveredFraction) wired onto
// gonum.org/v1/gonum/stat and floats per SPEC_FULL.md's domain stack.
package selection

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rmera/goselect/group"
	"github.com/rmera/goselect/pool"
	"github.com/rmera/goselect/topo"
)

// SelectionCollection is a compiled forest of selections sharing one pool,
// one universe group and one topology.
type SelectionCollection struct {
	Pool       *pool.Pool
	Universe   *group.Group
	Top        *topo.Topology
	Roots      []*Node
	Selections []*Selection
	Options    *EvalOptions
}

// NewSelectionCollection returns an empty collection over top, with the
// universe sentinel group ("all atoms", no concrete index list) and
// covered-fraction bookkeeping enabled by default.
func NewSelectionCollection(top *topo.Topology) *SelectionCollection {
	return &SelectionCollection{
		Pool:     pool.New(),
		Universe: group.Universe("all"),
		Top:      top,
		Options:  DefaultEvalOptions(),
	}
}

// Selection is one exported selection: a named root node together with the
// per-atom mass/charge snapshot and covered-fraction samples accumulated
// across frames.
type Selection struct {
	Name string
	Root *Node

	Masses  []float64
	Charges []float64

	coveredSamples []float64
	AverageCovered float64
}

// NewSelection returns a Selection named name wrapping root.
func NewSelection(name string, root *Node) *Selection {
	return &Selection{Name: name, Root: root}
}

// Atoms returns the selection's currently evaluated index group. Root
// nodes always hold a Group-kind value (spec.md §4.1): an Expression or
// Boolean subtree.
func (s *Selection) Atoms() *group.Group {
	return s.Root.Value.Grp
}

// refreshMassesAndCharges rereads the per-atom mass/charge fields for the
// selection's current atom group out of top, matching
// SelectionData::refreshMassesAndCharges's per-frame resync (topology
// properties such as mass can change between frames in the original, e.g.
// under a virtual-site reparametrization).
func (s *Selection) refreshMassesAndCharges(top *topo.Topology) {
	atoms := s.Atoms()
	if atoms.IsUniverse() {
		s.Masses = top.Masses()
		s.Charges = top.Charges()
		return
	}
	if cap(s.Masses) < atoms.Isize {
		s.Masses = make([]float64, atoms.Isize)
		s.Charges = make([]float64, atoms.Isize)
	} else {
		s.Masses = s.Masses[:atoms.Isize]
		s.Charges = s.Charges[:atoms.Isize]
	}
	for i, idx := range atoms.Index[:atoms.Isize] {
		a := top.Atom(idx)
		s.Masses[i] = a.Mass
		s.Charges[i] = a.Charge
	}
}

// updateCoveredFractionForFrame records this frame's covered fraction: the
// selection's current atom count divided by the topology's total atom
// count. Mirrors SelectionData::updateCoveredFractionForFrame.
func (s *Selection) updateCoveredFractionForFrame() {
	total := len(s.Masses)
	var n int
	atoms := s.Atoms()
	if atoms.IsUniverse() {
		n = total
	} else {
		n = atoms.Isize
	}
	if total == 0 {
		s.coveredSamples = append(s.coveredSamples, 0)
		return
	}
	s.coveredSamples = append(s.coveredSamples, float64(n)/float64(total))
}

// computeAverageCoveredFraction reduces the per-frame covered-fraction
// samples into a single trajectory-average figure, using gonum/stat's mean
// estimator after a gonum/floats Max/Min check that every sample lies in
// [0, 1].
// Mirrors SelectionData::computeAverageCoveredFraction.
func (s *Selection) computeAverageCoveredFraction(nFrames int) error {
	if len(s.coveredSamples) == 0 {
		s.AverageCovered = 1
		return nil
	}
	if len(s.coveredSamples) != nFrames {
		return newError(KindPrecondition, "computeAverageCoveredFraction: sample count does not match frame count")
	}
	if floats.Max(s.coveredSamples) > 1 || floats.Min(s.coveredSamples) < 0 {
		return newError(KindInternal, "computeAverageCoveredFraction: a covered-fraction sample fell outside [0, 1]")
	}
	s.AverageCovered = stat.Mean(s.coveredSamples, nil)
	return nil
}
