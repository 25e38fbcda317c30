/*
 * group.go, part of goselect.
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

// Package group implements the sorted-atom-index-set algebra a selection
// evaluator needs: copy, intersect, difference, merge, partition and sort,
// all running in O(|a|+|b|) over already-sorted inputs. Grounded on the
// gmx_ana_index_* family of functions called from
// original_source/evaluate.cpp, and in the spirit of gochem's own
// plain-[]int index helpers (handy.go: Molecules2Atoms, isInInt).
//
// A Group's Isize of -1 is a sentinel meaning "all atoms" (the universe);
// callers that need a concrete Index should check for it first.
package group

import "sort"

// Group is a named, ordered, strictly increasing set of atom indices.
// Isize holds the live length; Index may have spare capacity beyond it.
type Group struct {
	Name  string
	Isize int
	Index []int
}

// New returns an empty, named Group with the given capacity reserved.
func New(name string, capacity int) *Group {
	return &Group{Name: name, Isize: 0, Index: make([]int, 0, capacity)}
}

// Universe returns the sentinel Group representing "all atoms".
func Universe(name string) *Group {
	return &Group{Name: name, Isize: -1}
}

// IsUniverse reports whether g is the universe sentinel.
func (g *Group) IsUniverse() bool {
	return g.Isize < 0
}

// Len returns the live length of the group (panics on the universe
// sentinel, since it has no concrete length).
func (g *Group) Len() int {
	if g.IsUniverse() {
		panic("group: Len called on the universe sentinel")
	}
	return g.Isize
}

// Set replaces dst's contents with n indices copied from (or referencing,
// if owned is true) src. Mirrors gmx_ana_index_set: the name is always
// taken from the name parameter, not preserved.
func Set(dst *Group, n int, src []int, name string, owned bool) {
	if owned {
		dst.Index = src[:n]
	} else {
		if cap(dst.Index) < n {
			dst.Index = make([]int, n)
		} else {
			dst.Index = dst.Index[:n]
		}
		copy(dst.Index, src[:n])
	}
	dst.Isize = n
	dst.Name = name
}

// Copy copies src into dst, preserving dst's existing Name. dst must have
// capacity for len(src.Index); overflow is a programmer error and panics.
func Copy(dst, src *Group) {
	if src.IsUniverse() {
		dst.Isize = -1
		return
	}
	mustFit(dst, src.Isize)
	dst.Index = dst.Index[:src.Isize]
	copy(dst.Index, src.Index[:src.Isize])
	dst.Isize = src.Isize
}

// Sort sorts g's live indices ascending in place.
func Sort(g *Group) {
	sort.Ints(g.Index[:g.Isize])
}

// Intersect sets dst to the sorted intersection of a and b. dst may alias
// a or b. a and b must already be sorted ascending.
func Intersect(dst, a, b *Group) {
	if a.IsUniverse() {
		Copy(dst, b)
		return
	}
	if b.IsUniverse() {
		Copy(dst, a)
		return
	}
	out := make([]int, 0, minInt(a.Isize, b.Isize))
	i, j := 0, 0
	for i < a.Isize && j < b.Isize {
		switch {
		case a.Index[i] < b.Index[j]:
			i++
		case a.Index[i] > b.Index[j]:
			j++
		default:
			out = append(out, a.Index[i])
			i++
			j++
		}
	}
	writeOut(dst, out)
}

// Difference sets dst to a \ b (elements of a not present in b). dst may
// alias a. a and b must already be sorted ascending.
func Difference(dst, a, b *Group) {
	if b.IsUniverse() {
		dst.Isize = 0
		return
	}
	if a.IsUniverse() {
		panic("group: Difference of the universe against a finite group is undefined")
	}
	out := make([]int, 0, a.Isize)
	i, j := 0, 0
	for i < a.Isize {
		for j < b.Isize && b.Index[j] < a.Index[i] {
			j++
		}
		if j >= b.Isize || b.Index[j] != a.Index[i] {
			out = append(out, a.Index[i])
		}
		i++
	}
	writeOut(dst, out)
}

// Merge sets dst to the sorted union of a and b. Assumes a and b are each
// individually sorted; tolerates overlap between them (duplicates are kept
// only once).
func Merge(dst, a, b *Group) {
	out := make([]int, 0, a.Isize+b.Isize)
	i, j := 0, 0
	for i < a.Isize && j < b.Isize {
		switch {
		case a.Index[i] < b.Index[j]:
			out = append(out, a.Index[i])
			i++
		case a.Index[i] > b.Index[j]:
			out = append(out, b.Index[j])
			j++
		default:
			out = append(out, a.Index[i])
			i++
			j++
		}
	}
	out = append(out, a.Index[i:a.Isize]...)
	out = append(out, b.Index[j:b.Isize]...)
	writeOut(dst, out)
}

// Partition splits full into the part also present in probe (written to
// inside) and the part absent from probe (written to outside). full and
// probe must be sorted ascending; inside and outside must have capacity for
// len(full.Index).
func Partition(inside, outside, full, probe *Group) {
	mustFit(inside, full.Isize)
	mustFit(outside, full.Isize)
	inIdx := inside.Index[:0]
	outIdx := outside.Index[:0]
	j := 0
	for i := 0; i < full.Isize; i++ {
		v := full.Index[i]
		for j < probe.Isize && probe.Index[j] < v {
			j++
		}
		if j < probe.Isize && probe.Index[j] == v {
			inIdx = append(inIdx, v)
		} else {
			outIdx = append(outIdx, v)
		}
	}
	inside.Index = inIdx
	inside.Isize = len(inIdx)
	outside.Index = outIdx
	outside.Isize = len(outIdx)
}

func mustFit(dst *Group, n int) {
	if cap(dst.Index) < n {
		panic("group: destination capacity exhausted")
	}
}

func writeOut(dst *Group, out []int) {
	mustFit(dst, len(out))
	dst.Index = dst.Index[:len(out)]
	copy(dst.Index, out)
	dst.Isize = len(out)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
