package inputevent

// DeviceType classifies a device. Exactly one of these applies to any
// given device.
type DeviceType int

const (
	DeviceTypeUnknown DeviceType = iota
	DeviceTypePointer
	DeviceTypeKeyboard
	DeviceTypeExtension
	DeviceTypeJoystick
	DeviceTypeTablet
	DeviceTypeTouchpad
	DeviceTypeTouchscreen
	DeviceTypePen
	DeviceTypeEraser
	DeviceTypeCursor
	DeviceTypePad
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypePointer:
		return "pointer"
	case DeviceTypeKeyboard:
		return "keyboard"
	case DeviceTypeExtension:
		return "extension"
	case DeviceTypeJoystick:
		return "joystick"
	case DeviceTypeTablet:
		return "tablet"
	case DeviceTypeTouchpad:
		return "touchpad"
	case DeviceTypeTouchscreen:
		return "touchscreen"
	case DeviceTypePen:
		return "pen"
	case DeviceTypeEraser:
		return "eraser"
	case DeviceTypeCursor:
		return "cursor"
	case DeviceTypePad:
		return "pad"
	default:
		return "unknown"
	}
}

// IsTabletLike reports whether the device type belongs to a tablet's tool
// set, which the motion pipeline and translator treat specially (skip
// constrain chain, attach last tool, etc.).
func (t DeviceType) IsTabletLike() bool {
	switch t {
	case DeviceTypeTablet, DeviceTypePen, DeviceTypeEraser, DeviceTypeCursor:
		return true
	default:
		return false
	}
}

// InputMode distinguishes physical devices (surfaced by the OS) from
// logical ones (virtual aggregators created by the engine itself).
type InputMode int

const (
	InputModePhysical InputMode = iota
	InputModeLogical
)

// ToolType enumerates the tablet tool kinds the engine tracks.
type ToolType int

const (
	ToolUnknown ToolType = iota
	ToolPen
	ToolEraser
	ToolBrush
	ToolPencil
	ToolAirbrush
	ToolMouse
	ToolLens
)

// ToolCapability is a bitmask of axes a tool reports it supports.
type ToolCapability uint32

const (
	ToolCapDistance ToolCapability = 1 << iota
	ToolCapPressure
	ToolCapTilt
	ToolCapRotation
	ToolCapSlider
	ToolCapWheel
)

// SwitchType identifies a lid/tablet-mode style hardware switch.
type SwitchType int

const (
	SwitchUnknown SwitchType = iota
	SwitchTabletMode
	SwitchLid
)

// AxisSource identifies the origin of a POINTER_AXIS (scroll) event.
type AxisSource int

const (
	AxisSourceWheel AxisSource = iota
	AxisSourceFinger
	AxisSourceContinuous
	AxisSourceWheelTilt
)

// GesturePhase is shared by pinch and swipe touchpad gestures.
type GesturePhase int

const (
	GestureBegin GesturePhase = iota
	GestureUpdate
	GestureEnd
	GestureCancel
)

// PadSource optionally identifies the physical source of a pad ring/strip
// event (finger vs. a dedicated knob), when the hardware reports one.
type PadSource int

const (
	PadSourceUnknown PadSource = iota
	PadSourceFinger
)
