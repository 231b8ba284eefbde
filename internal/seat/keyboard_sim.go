package seat

// simXKBState is a minimal, deterministic stand-in for a real xkbcommon
// binding. It tracks depressed modifiers from held keys, latched/locked
// state from lock keys, and three LEDs (caps/num/scroll), which is enough
// to exercise the engine's LED-sync and numlock-toggle logic without a
// cgo dependency. Embedding compositors are expected to supply a real
// XKBState; this one exists so the engine is usable and testable
// standalone.
type simXKBState struct {
	mods Mods
	layoutIndex uint32
	capsOn bool
	numOn bool
	scrollOn bool
	held map[uint32]bool
}

// Keycodes this simulation treats as modifier/lock keys. Values are
// arbitrary but stable evdev-ish keycodes used consistently by the
// default event source and tests.
const (
	KeyLeftShift uint32 = 42
	KeyCapsLock uint32 = 58
	KeyNumLock uint32 = 69
	KeyScrollLock uint32 = 70
	ModShiftBit uint32 = 1 << 0
)

func newSimXKBState() *simXKBState {
	return &simXKBState{held: make(map[uint32]bool)}
}

func (s *simXKBState) UpdateKey(keycode uint32, down bool) XKBChange {
	var change XKBChange

	switch keycode {
	case KeyLeftShift:
		s.held[keycode] = down
		changed := s.recomputeDepressed()
		if changed {
			change |= XKBChangeMods
		}
	case KeyCapsLock:
		if down {
			s.capsOn = !s.capsOn
			s.mods.Locked = toggleBit(s.mods.Locked, 1<<1, s.capsOn)
			change |= XKBChangeMods | XKBChangeLEDs
		}
	case KeyNumLock:
		if down {
			s.ToggleNumlock()
			change |= XKBChangeMods | XKBChangeLEDs
		}
	case KeyScrollLock:
		if down {
			s.scrollOn = !s.scrollOn
			s.mods.Locked = toggleBit(s.mods.Locked, 1<<2, s.scrollOn)
			change |= XKBChangeMods | XKBChangeLEDs
		}
	default:
		s.held[keycode] = down
	}
	return change
}

func (s *simXKBState) recomputeDepressed() bool {
	before := s.mods.Depressed
	var d uint32
	if s.held[KeyLeftShift] {
		d |= ModShiftBit
	}
	s.mods.Depressed = d
	return before != s.mods.Depressed
}

func (s *simXKBState) Mods() Mods { return s.mods }

func (s *simXKBState) SetMods(m Mods) { s.mods = m }

func (s *simXKBState) SerializeMods(m Mods) uint32 {
	return m.Depressed | m.Latched | m.Locked
}

func (s *simXKBState) UpdateMask(depressed, latched, locked uint32, group1, group2, layout uint32) {
	s.mods = Mods{Depressed: depressed, Latched: latched, Locked: locked}
	s.layoutIndex = layout
	s.capsOn = locked&(1<<1) != 0
	s.numOn = locked&xkbMod2Bit != 0
	s.scrollOn = locked&(1<<2) != 0
}

func (s *simXKBState) LEDIndex(name string) int {
	switch name {
	case "Caps Lock":
		return 0
	case "Num Lock":
		return 1
	case "Scroll Lock":
		return 2
	default:
		return -1
	}
}

func (s *simXKBState) LEDActive(index int) bool {
	switch index {
	case 0:
		return s.capsOn
	case 1:
		return s.numOn
	case 2:
		return s.scrollOn
	default:
		return false
	}
}

func (s *simXKBState) LayoutIndex() uint32 { return s.layoutIndex }

func (s *simXKBState) SetLayoutIndex(idx uint32) { s.layoutIndex = idx }

// ToggleNumlock flips the simulated NumLock state and sets/clears the
// fixed Mod2 bit in the locked mask; the layout index is left untouched.
func (s *simXKBState) ToggleNumlock() {
	s.numOn = !s.numOn
	s.mods.Locked = toggleBit(s.mods.Locked, xkbMod2Bit, s.numOn)
}

func toggleBit(mask, bit uint32, on bool) uint32 {
	if on {
		return mask | bit
	}
	return mask &^ bit
}
