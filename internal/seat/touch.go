package seat

import (
	"errors"

	"github.com/bnema/seatengine/internal/inputevent"
	"github.com/bnema/seatengine/internal/logger"
)

// ErrDuplicateSlot is returned by touchTable.acquire when the seat-slot is
// already live.
var ErrDuplicateSlot = errors.New("seat: touch slot already in use")

// touchState tracks one live touch point. Created on TOUCH_DOWN, mutated
// on TOUCH_MOTION, destroyed on TOUCH_UP/CANCEL.
type touchState struct {
	seatSlot int
	x, y float64
}

// touchTable maps seat-slot -> live touchState (C2). Grounded on the
// slot/seat-id bookkeeping pattern in device_detection.go, generalized
// into an explicit map to track concurrent touch points rather than a
// single pointer+keyboard pair.
type touchTable struct {
	slots map[int]*touchState
}

func newTouchTable() *touchTable {
	return &touchTable{slots: make(map[int]*touchState)}
}

// acquire creates a new touchState for slot. A duplicate acquire on a
// still-live slot is an invariant violation: warn, no-op, don't abort.
func (t *touchTable) acquire(slot int, x, y float64) (*touchState, error) {
	if _, exists := t.slots[slot]; exists {
		logger.Warnf("seat: touch slot %d already live, ignoring duplicate acquire", slot)
		return nil, ErrDuplicateSlot
	}
	ts := &touchState{seatSlot: slot, x: x, y: y}
	t.slots[slot] = ts
	return ts, nil
}

// lookup returns nil (not an error) for an unknown slot; the translator
// treats TOUCH_UP/MOTION/CANCEL on an unknown slot as a no-op.
func (t *touchTable) lookup(slot int) *touchState {
	return t.slots[slot]
}

func (t *touchTable) release(slot int) {
	delete(t.slots, slot)
}

func (t *touchTable) count() int {
	return len(t.slots)
}

// touchSequence returns the sequence handle to attach to a touch event:
// max(1, seatSlot+1), avoiding a null/zero sequence for slot 0.
func touchSequence(seatSlot int) int {
	if seatSlot+1 < 1 {
		return 1
	}
	return seatSlot + 1
}

// virtualSlotReservation hands out non-overlapping touch-slot base ranges
// to virtual touch devices (C3). Bases are multiples of
// inputevent.MaxTouchSlotsPerVirtualDevice, at or above
// inputevent.VirtualSlotBaseMin.
type virtualSlotReservation struct {
	reserved map[int]bool
}

func newVirtualSlotReservation() *virtualSlotReservation {
	return &virtualSlotReservation{reserved: make(map[int]bool)}
}

// reserveNext picks the smallest unreserved qualifying base, reserves it,
// and returns it.
func (r *virtualSlotReservation) reserveNext() int {
	for base := inputevent.VirtualSlotBaseMin; ; base += inputevent.MaxTouchSlotsPerVirtualDevice {
		if !r.reserved[base] {
			r.reserved[base] = true
			return base
		}
	}
}

func (r *virtualSlotReservation) release(base int) {
	delete(r.reserved, base)
}
