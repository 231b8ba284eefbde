package seat

import (
	"testing"

	"github.com/bnema/seatengine/internal/inputevent"
)

func TestIDPoolAllocatesAscending(t *testing.T) {
	p := newIDPool()
	first := p.allocate()
	second := p.allocate()

	if first != inputevent.InitialDeviceID {
		t.Errorf("expected first id %d, got %d", inputevent.InitialDeviceID, first)
	}
	if second != first+1 {
		t.Errorf("expected ascending ids, got %d then %d", first, second)
	}
}

func TestIDPoolReleaseAndReuse(t *testing.T) {
	p := newIDPool()
	a := p.allocate()
	b := p.allocate()
	p.release(a)

	got := p.allocate()
	if got != a {
		t.Errorf("expected released id %d to be reused first, got %d", a, got)
	}

	// b is still outstanding; a fresh allocate should not collide with it.
	c := p.allocate()
	if c == b {
		t.Errorf("allocate returned an id %d still held by another device", c)
	}
}

func TestIDPoolDoubleReleaseIsNoop(t *testing.T) {
	p := newIDPool()
	a := p.allocate()
	p.release(a)
	p.release(a) // must not panic or duplicate the free-list entry

	first := p.allocate()
	second := p.allocate()
	if first == second {
		t.Fatalf("double release corrupted free-list: got duplicate id %d", first)
	}
}

func TestIDPoolGrowsWhenExhausted(t *testing.T) {
	p := newIDPool()
	seen := make(map[int]bool)
	for i := 0; i < idPoolGrowStep+5; i++ {
		id := p.allocate()
		if seen[id] {
			t.Fatalf("allocate returned duplicate id %d across a grow boundary", id)
		}
		seen[id] = true
	}
}
