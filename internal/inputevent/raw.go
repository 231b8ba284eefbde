package inputevent

// RawKind tags the concrete type of a Raw event for fast dispatch in the
// translator, mirroring the way the original protocol buffers expose a
// oneof discriminant via a type switch (see event_aggregator.go).
type RawKind int

const (
	RawDeviceAdded RawKind = iota
	RawDeviceRemoved
	RawKeyboardKey
	RawPointerMotion
	RawPointerMotionAbsolute
	RawPointerButton
	RawPointerAxis
	RawTouchDown
	RawTouchUp
	RawTouchMotion
	RawTouchCancel
	RawGesturePinch
	RawGestureSwipe
	RawTabletToolAxis
	RawTabletToolProximity
	RawTabletToolButton
	RawTabletToolTip
	RawTabletPadButton
	RawTabletPadStrip
	RawTabletPadRing
	RawSwitchToggle
)

// Raw is implemented by every inbound raw event kind.
type Raw interface {
	RawKind() RawKind
}

// RawDevice carries a reference to the originating libinput-like device
// handle. The concrete type is opaque to the engine ; the event
// source implementation provides whatever it needs through this handle.
type RawDevice interface {
	// Path is a human-readable identifier used for logging only.
	Path() string
	// Kind reports the device's classification, as probed by the event
	// source from evdev capability bits (EV_KEY/EV_ABS/EV_SW sets).
	Kind() DeviceType
}

type DeviceAddedEvent struct {
	Device RawDevice
}

func (DeviceAddedEvent) RawKind() RawKind { return RawDeviceAdded }

type DeviceRemovedEvent struct {
	Device RawDevice
}

func (DeviceRemovedEvent) RawKind() RawKind { return RawDeviceRemoved }

type KeyboardKeyEvent struct {
	Device RawDevice
	TimeUS int64
	Key uint32
	State KeyState // Pressed or Released only; never AutoRepeat on ingest
	SeatKeyCount uint32
}

func (KeyboardKeyEvent) RawKind() RawKind { return RawKeyboardKey }

type PointerMotionEvent struct {
	Device RawDevice
	TimeUS int64
	Dx, Dy float64
	DxUnaccel float64
	DyUnaccel float64
}

func (PointerMotionEvent) RawKind() RawKind { return RawPointerMotion }

// PointerMotionAbsoluteEvent carries coordinates normalized to [0,1] across
// the device's native resolution; the translator maps them onto stage
// extents.
type PointerMotionAbsoluteEvent struct {
	Device RawDevice
	TimeUS int64
	X, Y float64
	Axes []float64
}

func (PointerMotionAbsoluteEvent) RawKind() RawKind { return RawPointerMotionAbsolute }

type PointerButtonEvent struct {
	Device RawDevice
	TimeUS int64
	Button uint32 // raw evdev code (e.g. BTN_LEFT)
	State ButtonState
	SeatButtonCount uint32
}

func (PointerButtonEvent) RawKind() RawKind { return RawPointerButton }

// AxisValue carries one scroll axis's continuous/discrete pair and
// finished flag.
type AxisValue struct {
	HasValue bool
	Value float64 // pixels for continuous sources
	Discrete float64 // wheel clicks for discrete sources
	Finished bool
}

type PointerAxisEvent struct {
	Device RawDevice
	TimeUS int64
	Source AxisSource
	Horizontal AxisValue
	Vertical AxisValue
}

func (PointerAxisEvent) RawKind() RawKind { return RawPointerAxis }

type TouchDownEvent struct {
	Device RawDevice
	TimeUS int64
	SeatSlot int
	X, Y float64
}

func (TouchDownEvent) RawKind() RawKind { return RawTouchDown }

type TouchUpEvent struct {
	Device RawDevice
	TimeUS int64
	SeatSlot int
}

func (TouchUpEvent) RawKind() RawKind { return RawTouchUp }

type TouchMotionEvent struct {
	Device RawDevice
	TimeUS int64
	SeatSlot int
	X, Y float64
}

func (TouchMotionEvent) RawKind() RawKind { return RawTouchMotion }

type TouchCancelEvent struct {
	Device RawDevice
	TimeUS int64
	SeatSlot int
}

func (TouchCancelEvent) RawKind() RawKind { return RawTouchCancel }

type GesturePinchEvent struct {
	Device RawDevice
	TimeUS int64
	Phase GesturePhase
	NFingers int
	Dx, Dy float64
	Scale float64
	AngleDelta float64
	Cancelled bool
}

func (GesturePinchEvent) RawKind() RawKind { return RawGesturePinch }

type GestureSwipeEvent struct {
	Device RawDevice
	TimeUS int64
	Phase GesturePhase
	NFingers int
	Dx, Dy float64
	Cancelled bool
}

func (GestureSwipeEvent) RawKind() RawKind { return RawGestureSwipe }

// TabletAxes is the raw per-axis payload a tablet tool event reports;
// X and Y are always present, the optional axes each carry a Has* flag.
type TabletAxes struct {
	X, Y float64
	HasDistance bool
	Distance float64
	HasPressure bool
	Pressure float64
	HasTilt bool
	TiltX, TiltY float64
	HasRotation bool
	Rotation float64
	HasSlider bool
	Slider float64
	HasWheel bool
	Wheel float64
}

type TabletToolAxisEvent struct {
	Device RawDevice
	TimeUS int64
	ToolSerial uint64
	ToolType ToolType
	Axes TabletAxes
	Relative bool // mapping-mode RELATIVE, or tool is mouse/lens
	Dx, Dy float64
}

func (TabletToolAxisEvent) RawKind() RawKind { return RawTabletToolAxis }

type TabletToolProximityEvent struct {
	Device RawDevice
	TimeUS int64
	In bool
	ToolSerial uint64
	ToolType ToolType
	Caps ToolCapability
	Axes TabletAxes
}

func (TabletToolProximityEvent) RawKind() RawKind { return RawTabletToolProximity }

type TabletToolButtonEvent struct {
	Device RawDevice
	TimeUS int64
	ToolSerial uint64
	ToolType ToolType
	Button uint32 // raw evdev code
	State ButtonState
}

func (TabletToolButtonEvent) RawKind() RawKind { return RawTabletToolButton }

type TabletToolTipEvent struct {
	Device RawDevice
	TimeUS int64
	ToolSerial uint64
	ToolType ToolType
	Down bool
	Axes TabletAxes
}

func (TabletToolTipEvent) RawKind() RawKind { return RawTabletToolTip }

type TabletPadButtonEvent struct {
	Device RawDevice
	TimeUS int64
	Number int
	Mode int
	Group int
	State ButtonState
}

func (TabletPadButtonEvent) RawKind() RawKind { return RawTabletPadButton }

type TabletPadStripEvent struct {
	Device RawDevice
	TimeUS int64
	Number int
	Mode int
	Group int
	Source PadSource
	Value float64 // -1 on finger lift
}

func (TabletPadStripEvent) RawKind() RawKind { return RawTabletPadStrip }

type TabletPadRingEvent struct {
	Device RawDevice
	TimeUS int64
	Number int
	Mode int
	Group int
	Source PadSource
	Angle float64 // -1 on finger lift
}

func (TabletPadRingEvent) RawKind() RawKind { return RawTabletPadRing }

type SwitchToggleEvent struct {
	Device RawDevice
	TimeUS int64
	Switch SwitchType
	State bool
}

func (SwitchToggleEvent) RawKind() RawKind { return RawSwitchToggle }
