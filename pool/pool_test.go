package pool

import (
	"testing"

	"github.com/rmera/goselect/group"
)

func TestAllocFreeGroupReusesBuffer(t *testing.T) {
	p := New()
	g := &group.Group{}
	p.AllocGroup(g, 8)
	backing := g.Index
	p.FreeGroup(g)
	if g.Index != nil {
		t.Errorf("FreeGroup should clear the group's Index")
	}
	g2 := &group.Group{}
	p.AllocGroup(g2, 4)
	if cap(g2.Index) != cap(backing) {
		t.Errorf("expected freed buffer of cap %d to be reused, got cap %d", cap(backing), cap(g2.Index))
	}
}

func TestReserveReleaseInts(t *testing.T) {
	p := New()
	buf := p.ReserveInts(5)
	if len(buf) != 5 {
		t.Fatalf("expected length 5, got %d", len(buf))
	}
	p.ReleaseInts(buf)
	buf2 := p.ReserveInts(3)
	if cap(buf2) < 5 {
		t.Errorf("expected a released buffer to be reused")
	}
}

func TestReservePosExactSize(t *testing.T) {
	p := New()
	m := p.ReservePos(10)
	if m.NVecs() != 10 {
		t.Errorf("expected 10 rows, got %d", m.NVecs())
	}
	p.ReleasePos(m)
	m2 := p.ReservePos(10)
	if m2 != m {
		t.Errorf("expected the same buffer to be reused")
	}
}
