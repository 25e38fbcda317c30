/*
 * pool.go, part of goselect.
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

// Package pool implements the frame-lifetime memory arena described in
// spec.md §4.2: AllocGroup/FreeGroup for index groups, and the
// ReserveInts/ReserveReals/ReserveStrs/ReservePos and matching Release*
// functions for the vector-kind (Int/Real/Str) and Pos-kind scratch
// buffers a node's Value may need for a single evaluation. It hands out
// buffers sized by element count and keeps released buffers on a per-kind
// free list so that a frame's worth of evaluation reuses memory instead of
// allocating fresh on every node visit — the same "reserve less memory,
// reuse the same buffer many times" discipline gochem applies by hand in
// its trajectory readers (xtc/xtc.go's goCoords buffer).
//
// Pool itself is not safe for concurrent use; spec.md §5 scopes one Pool to
// one goroutine evaluating one SelectionCollection at a time.
package pool

import (
	"github.com/rmera/goselect/group"
	"github.com/rmera/goselect/v3"
)

// Pool is a frame-lifetime arena of reusable typed buffers.
type Pool struct {
	groupFree [][]int
	intFree   [][]int
	realFree  [][]float64
	strFree   [][]string
	posFree   []*v3.Matrix
}

// New returns an empty Pool.
func New() *Pool {
	return &Pool{}
}

// AllocGroup sizes g's storage for at least count indices, drawing from the
// free list when possible. g.Isize is reset to 0; g.Name is left untouched.
func (p *Pool) AllocGroup(g *group.Group, count int) {
	for i, buf := range p.groupFree {
		if cap(buf) >= count {
			p.groupFree = append(p.groupFree[:i], p.groupFree[i+1:]...)
			g.Index = buf[:0]
			g.Isize = 0
			return
		}
	}
	g.Index = make([]int, 0, count)
	g.Isize = 0
}

// FreeGroup returns g's storage to the free list.
func (p *Pool) FreeGroup(g *group.Group) {
	if g.Index != nil {
		p.groupFree = append(p.groupFree, g.Index)
	}
	g.Index = nil
	g.Isize = 0
}

// ReserveInts returns an []int with capacity at least count, drawn from the
// free list when possible.
func (p *Pool) ReserveInts(count int) []int {
	for i, buf := range p.intFree {
		if cap(buf) >= count {
			p.intFree = append(p.intFree[:i], p.intFree[i+1:]...)
			return buf[:count]
		}
	}
	return make([]int, count)
}

// ReleaseInts returns buf to the free list.
func (p *Pool) ReleaseInts(buf []int) {
	if buf != nil {
		p.intFree = append(p.intFree, buf)
	}
}

// ReserveReals returns a []float64 with capacity at least count.
func (p *Pool) ReserveReals(count int) []float64 {
	for i, buf := range p.realFree {
		if cap(buf) >= count {
			p.realFree = append(p.realFree[:i], p.realFree[i+1:]...)
			return buf[:count]
		}
	}
	return make([]float64, count)
}

// ReleaseReals returns buf to the free list.
func (p *Pool) ReleaseReals(buf []float64) {
	if buf != nil {
		p.realFree = append(p.realFree, buf)
	}
}

// ReserveStrs returns a []string with capacity at least count.
func (p *Pool) ReserveStrs(count int) []string {
	for i, buf := range p.strFree {
		if cap(buf) >= count {
			p.strFree = append(p.strFree[:i], p.strFree[i+1:]...)
			return buf[:count]
		}
	}
	return make([]string, count)
}

// ReleaseStrs returns buf to the free list.
func (p *Pool) ReleaseStrs(buf []string) {
	if buf != nil {
		p.strFree = append(p.strFree, buf)
	}
}

// ReservePos returns a *v3.Matrix with exactly count rows, reusing a
// same-sized freed buffer when one is available.
func (p *Pool) ReservePos(count int) *v3.Matrix {
	for i, m := range p.posFree {
		if m.NVecs() == count {
			p.posFree = append(p.posFree[:i], p.posFree[i+1:]...)
			return m
		}
	}
	return v3.Zeros(count)
}

// ReleasePos returns m to the free list.
func (p *Pool) ReleasePos(m *v3.Matrix) {
	if m != nil {
		p.posFree = append(p.posFree, m)
	}
}
