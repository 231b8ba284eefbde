// Package inputevent defines the raw (inbound) and high-level (outbound)
// event vocabulary shared between the event source, the seat engine, and
// virtual device injection. It carries no behavior of its own.
package inputevent

// Bit-exact constants shared across the seat engine.
const (
	// DiscreteScrollStep is the pixel distance one discrete scroll "click"
	// represents when deriving emulated discrete events from a continuous
	// (finger/trackpad) scroll source.
	DiscreteScrollStep = 10.0

	// InitialPointerX and InitialPointerY are the seat's pointer position
	// before any motion event has been processed.
	InitialPointerX = 16.0
	InitialPointerY = 16.0

	// InitialDeviceID is the first id handed out by the device-id pool;
	// 0 and 1 are reserved by convention for the core pointer and core
	// keyboard leaders.
	InitialDeviceID = 2

	// VirtualSlotBaseMin is the smallest base a reserved virtual touch-slot
	// range may start at.
	VirtualSlotBaseMin = 0x100

	// MaxTouchSlotsPerVirtualDevice is the width of one virtual device's
	// reserved touch-slot range.
	MaxTouchSlotsPerVirtualDevice = 256

	// DefaultRepeatDelayMS and DefaultRepeatIntervalMS are the key-repeat
	// timer's default parameters.
	DefaultRepeatDelayMS = 250
	DefaultRepeatIntervalMS = 33
)

// KeyState distinguishes a key event's nature. AutoRepeat is a sentinel
// distinct from Pressed/Released so the translator can skip xkb state
// updates for synthetic repeat events.
type KeyState int

const (
	KeyReleased KeyState = 0
	KeyPressed KeyState = 1
	KeyAutoRepeat KeyState = 2
)

// ButtonState mirrors KeyState's press/release pair for pointer buttons.
type ButtonState int

const (
	ButtonReleased ButtonState = 0
	ButtonPressed ButtonState = 1
)

// ModifierButtonMask maps logical button numbers 1..5 to the modifier-state
// bit they contribute. Logical 2 and 3 are swapped in the mask for
// compatibility with downstream consumers.
var ModifierButtonMask = map[int]uint32{
	1: 1 << 0, // Button1 -> bit0
	3: 1 << 1, // Button3 -> bit1 (logical 2<->3 swapped in the mask)
	2: 1 << 2, // Button2 -> bit2
	4: 1 << 3, // Button4 -> bit3
	5: 1 << 4, // Button5 -> bit4
}
