/*
 * topo.go, part of goselect.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

// Package topo holds the read-only inputs the evaluator consumes but never
// builds itself: the Atom/Topology types (adapted from gochem's chem.go,
// trimmed of every file-format and geometry concern, since producing a
// Topology is the parser/compiler's job and out of scope per spec.md §1)
// and the per-frame Frame/PBC containers.
package topo

import "github.com/rmera/goselect/v3"

// Atom carries the per-atom static fields a selection method might need:
// name, residue/chain identity, and mass/charge. Trimmed from gochem's
// Atom struct (chem.go) to the fields the evaluator core and its method
// plugins actually read; occupancy/b-factor/Het belong to the PDB reader,
// not the evaluator.
type Atom struct {
	Name    string
	Id      int
	Molname string
	Molid   int
	Chain   byte
	Mass    float64
	Charge  float64
	Symbol  string
}

// Copy returns a copy of the Atom.
func (a *Atom) Copy() *Atom {
	cp := *a
	return &cp
}

// Topology holds the atoms of a system, plus overall charge/multiplicity.
// Adapted from gochem's Topology (chem.go); everything related to reading
// or writing a file format has been dropped, since the compiler/parser that
// produces a Topology is an external collaborator per spec.md §1.
type Topology struct {
	Atoms    []*Atom
	charge   int
	unpaired int
}

// NewTopology returns a Topology over ats. Returns an error if ats is nil.
func NewTopology(ats []*Atom, charge, unpaired int) (*Topology, error) {
	if ats == nil {
		return nil, errString("NewTopology: supplied a nil atom slice")
	}
	return &Topology{Atoms: ats, charge: charge, unpaired: unpaired}, nil
}

// Len returns the number of atoms in the topology.
func (t *Topology) Len() int { return len(t.Atoms) }

// Atom returns the atom at index i. Panics if i is out of range, following
// gochem's own documented policy of panicking on out-of-bounds access
// rather than returning an error (chem.go).
func (t *Topology) Atom(i int) *Atom {
	if i < 0 || i >= len(t.Atoms) {
		panic("topo: atom index out of range")
	}
	return t.Atoms[i]
}

// Charge returns the topology's total charge.
func (t *Topology) Charge() int { return t.charge }

// Unpaired returns the number of unpaired electrons.
func (t *Topology) Unpaired() int { return t.unpaired }

// Masses returns a slice with the mass of each atom in the topology, in
// atom order.
func (t *Topology) Masses() []float64 {
	m := make([]float64, len(t.Atoms))
	for i, a := range t.Atoms {
		m[i] = a.Mass
	}
	return m
}

// Charges returns a slice with the charge of each atom in the topology, in
// atom order.
func (t *Topology) Charges() []float64 {
	c := make([]float64, len(t.Atoms))
	for i, a := range t.Atoms {
		c[i] = a.Charge
	}
	return c
}

// Frame holds one simulation snapshot: the atom positions and, optionally,
// box vectors. It is read-only input to the evaluator (spec.md §1): nothing
// in this package reads a trajectory file.
type Frame struct {
	Positions *v3.Matrix
	Box       [3][3]float64
	HasBox    bool
	Time      float64
	Step      int
}

// PBC carries periodic-boundary-condition information for the current
// frame. Its contents are opaque to the evaluator core; it is handed
// through verbatim to method callbacks and the position-calculation engine.
type PBC struct {
	Box    [3][3]float64
	Vacuum bool
}

type errString string

func (e errString) Error() string { return string(e) }
