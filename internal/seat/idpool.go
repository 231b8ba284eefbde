package seat

import "github.com/bnema/seatengine/internal/inputevent"

// idPool allocates ascending, stable small-integer device ids starting at
// inputevent.InitialDeviceID. Ids 0 and 1 are reserved by convention for
// the core pointer and core keyboard leaders and are never handed out
// here.
//
// Grounded on the original device bookkeeping in
// internal/input/device_detection.go (sequential slot-style allocation),
// generalized into an explicit free-list so ids are stable and reusable.
type idPool struct {
	next int
	free []int
	grow int
}

const idPoolGrowStep = 10

func newIDPool() *idPool {
	return &idPool{
		next: inputevent.InitialDeviceID,
		grow: idPoolGrowStep,
	}
}

// allocate returns the smallest available id, extending the free-list by
// growStep ids when exhausted.
func (p *idPool) allocate() int {
	if len(p.free) == 0 {
		p.extend()
	}
	id := p.free[0]
	p.free = p.free[1:]
	return id
}

func (p *idPool) extend() {
	for i := 0; i < p.grow; i++ {
		p.free = append(p.free, p.next)
		p.next++
	}
}

// release returns id to the pool, re-inserted in ascending order so
// allocation stays deterministic.
func (p *idPool) release(id int) {
	i := 0
	for ; i < len(p.free); i++ {
		if p.free[i] > id {
			break
		}
		if p.free[i] == id {
			return // already free; double-release is a no-op
		}
	}
	p.free = append(p.free, 0)
	copy(p.free[i+1:], p.free[i:])
	p.free[i] = id
}
