package seat

// keyboardComponent wraps an XKBState with the cached LED indices and
// layout bookkeeping the seat needs (C7). Grounded on the original
// keyboard-adjacent state in internal/input/wayland_virtual_input.go
// (currentModifiers field, syncModifierState), generalized from "client
// injection modifier tracking" to "full xkb-state ownership".
type keyboardComponent struct {
	xkb XKBState

	ledCaps int
	ledNum int
	ledScroll int
}

func newKeyboardComponent(xkb XKBState) *keyboardComponent {
	if xkb == nil {
		xkb = newSimXKBState()
	}
	k := &keyboardComponent{xkb: xkb}
	k.ledCaps = xkb.LEDIndex("Caps Lock")
	k.ledNum = xkb.LEDIndex("Num Lock")
	k.ledScroll = xkb.LEDIndex("Scroll Lock")
	return k
}

// updateKey feeds a physical key event into xkb state and reports what
// changed.
func (k *keyboardComponent) updateKey(keycode uint32, down bool) XKBChange {
	return k.xkb.UpdateKey(keycode, down)
}

func (k *keyboardComponent) ledsActive() (caps, num, scroll bool) {
	if k.ledCaps >= 0 {
		caps = k.xkb.LEDActive(k.ledCaps)
	}
	if k.ledNum >= 0 {
		num = k.xkb.LEDActive(k.ledNum)
	}
	if k.ledScroll >= 0 {
		scroll = k.xkb.LEDActive(k.ledScroll)
	}
	return
}

func (k *keyboardComponent) modifierMask() uint32 {
	return k.xkb.SerializeMods(k.xkb.Mods())
}

func (k *keyboardComponent) layoutIndex() uint32 {
	return k.xkb.LayoutIndex()
}

// setLayoutIndex changes the active layout while preserving the current
// latched/locked modifier serialization (round-trip invariant R1).
func (k *keyboardComponent) setLayoutIndex(idx uint32) {
	m := k.xkb.Mods()
	k.xkb.UpdateMask(m.Depressed, m.Latched, m.Locked, idx, idx, idx)
}

// resync re-seats the cached LED indices and re-applies the current mask
// preserving layout, used after a reclaim.
func (k *keyboardComponent) resync() {
	k.ledCaps = k.xkb.LEDIndex("Caps Lock")
	k.ledNum = k.xkb.LEDIndex("Num Lock")
	k.ledScroll = k.xkb.LEDIndex("Scroll Lock")
	m := k.xkb.Mods()
	layout := k.xkb.LayoutIndex()
	k.xkb.UpdateMask(m.Depressed, m.Latched, m.Locked, layout, layout, layout)
}

// setNumlock forces NumLock to the given state: computes the Mod2 bit
// from the keymap, sets/clears it in the locked mask, and re-applies the
// mask preserving the current layout. Restores exactly
// (round-trip invariant R3) when called true then false.
func (k *keyboardComponent) setNumlock(on bool) {
	m := k.xkb.Mods()
	locked := toggleBit(m.Locked, xkbMod2Bit, on)
	if locked == m.Locked {
		return
	}
	layout := k.xkb.LayoutIndex()
	k.xkb.UpdateMask(m.Depressed, m.Latched, locked, layout, layout, layout)
}
