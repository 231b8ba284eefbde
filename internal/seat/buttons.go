package seat

import "github.com/bnema/seatengine/internal/inputevent"

// Evdev button codes this package needs for the button-number mapping
// table. Values match linux/input-event-codes.h.
const (
	btnLeft = 0x110
	btnRight = 0x111
	btnMiddle = 0x112
	btnTouch = 0x14a
	btnStylus = 0x14b
	btnStylus2 = 0x14c
	btnStylus3 = 0x149
	btnToolPen = 0x140
)

// mapButtonCode converts a raw evdev button code to a logical button
// number 1..12. ok is false if the
// computed result falls outside [1,12].
func mapButtonCode(raw uint32, isTablet bool) (logical int, ok bool) {
	switch raw {
	case btnLeft, btnTouch:
		return 1, true
	case btnRight, btnStylus:
		return 3, true
	case btnMiddle, btnStylus2:
		return 2, true
	case btnStylus3:
		return 8, true
	}

	var n int
	if isTablet {
		n = int(raw) - btnToolPen + 4
	} else {
		n = int(raw) - (btnLeft - 1) + 4
	}
	if n < 1 || n > 12 {
		return 0, false
	}
	return n, true
}

// buttonStateMask tracks the seat-wide modifier-contributing button mask
// for logical buttons 1..5 (part of Seat "button mask (bitset)").
type buttonStateMask struct {
	mask uint32
}

func (b *buttonStateMask) set(logicalButton int, pressed bool) {
	bit, ok := inputevent.ModifierButtonMask[logicalButton]
	if !ok {
		return
	}
	if pressed {
		b.mask |= bit
	} else {
		b.mask &^= bit
	}
}

func (b *buttonStateMask) value() uint32 {
	return b.mask
}
