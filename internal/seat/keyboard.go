package seat

// XKBChangeMods / XKBChangeLEDs / XKBChangeGroup are bits of the mask
// returned by XKBState.UpdateKey, telling the translator which parts of keyboard
// state moved so it knows whether to resync LEDs / emit
// mods-state-changed.
type XKBChange uint32

const (
	XKBChangeMods XKBChange = 1 << iota
	XKBChangeLEDs
	XKBChangeGroup
)

// Mods is the depressed/latched/locked modifier triple xkb tracks.
type Mods struct {
	Depressed uint32
	Latched uint32
	Locked uint32
}

// Standard xkb modifier bit positions this engine relies on for the
// numlock toggle (Mod2 is the conventional NumLock modifier on virtually
// every keymap xkbcommon ships).
const xkbMod2Bit uint32 = 1 << 4

// XKBState is the opaque xkb-like keyboard-state component. The engine depends
// only on this interface; a real embedding compositor supplies an
// xkbcommon-backed implementation. simXKBState below is a deterministic
// placeholder used by the default constructor and by tests.
type XKBState interface {
	UpdateKey(keycode uint32, down bool) XKBChange
	Mods() Mods
	SetMods(m Mods)
	SerializeMods(m Mods) uint32
	UpdateMask(depressed, latched, locked uint32, group1, group2, layout uint32)
	LEDIndex(name string) int
	LEDActive(index int) bool
	LayoutIndex() uint32
	SetLayoutIndex(idx uint32)
}
