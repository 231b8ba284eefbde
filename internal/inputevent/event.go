package inputevent

// Kind tags the concrete type of a high-level (outbound) Event.
type Kind int

const (
	KindDeviceAdded Kind = iota
	KindDeviceRemoved
	KindMotion
	KindButtonPress
	KindButtonRelease
	KindScrollSmooth
	KindScrollDiscrete
	KindTouchBegin
	KindTouchUpdate
	KindTouchEnd
	KindTouchCancel
	KindProximityIn
	KindProximityOut
	KindTouchpadPinch
	KindTouchpadSwipe
	KindPadButtonPress
	KindPadButtonRelease
	KindPadStrip
	KindPadRing
	KindKeyPress
	KindKeyRelease
)

// DeviceRef identifies a device by its small stable id without pulling in
// the seat package's full Device type (which would create an import
// cycle, since the seat package depends on inputevent).
type DeviceRef struct {
	ID   int
	Type DeviceType
}

// Vec2 is a generic 2D float pair, used for deltas and coordinates.
type Vec2 struct{ X, Y float64 }

// PlatformData is the optional per-event blob carried by some events: the
// original hardware event code (e.g. for a remapped tablet button), an
// unaccelerated/relative motion vector, and the originating time in
// microseconds.
type PlatformData struct {
	HasEventCode bool
	EventCode    uint32
	HasRelative  bool
	Relative     Vec2
	TimeUS       int64
}

// Base fields are present on every outbound event.
type Base struct {
	Kind       Kind
	TimeMS     int64
	Modifiers  uint32
	Associated DeviceRef
	Source     DeviceRef
	Platform   *PlatformData
}

func (b Base) EventKind() Kind { return b.Kind }

// Event is implemented by every concrete high-level event type.
type Event interface {
	EventKind() Kind
}

type DeviceAdded struct {
	Base
	Device DeviceRef
}

type DeviceRemoved struct {
	Base
	Device DeviceRef
}

// Motion carries pointer/tablet coordinates in compositor global space,
// plus the raw axis vector for tablet tools (nil otherwise) and the
// emitting tool's id, if any.
type Motion struct {
	Base
	X, Y    float64
	Axes    []float64
	ToolKey ToolKey // zero value when not tablet-originated
}

// ToolKey identifies a cached tool instance by (serial, type).
type ToolKey struct {
	Serial uint64
	Type   ToolType
}

type ButtonPress struct {
	Base
	Button int // logical 1..12
}

type ButtonRelease struct {
	Base
	Button int
}

type ScrollSmooth struct {
	Base
	Dx, Dy            float64
	FinishedHorizontal bool
	FinishedVertical   bool
}

// ScrollDirection enumerates the four discrete-scroll directions emitted
// when an accumulator crosses the discrete step threshold.
type ScrollDirection int

const (
	ScrollLeft ScrollDirection = iota
	ScrollRight
	ScrollUp
	ScrollDown
)

type ScrollDiscrete struct {
	Base
	Direction ScrollDirection
	Emulated  bool
}

type TouchBegin struct {
	Base
	Sequence int
	X, Y     float64
}

type TouchUpdate struct {
	Base
	Sequence int
	X, Y     float64
}

type TouchEnd struct {
	Base
	Sequence int
}

type TouchCancel struct {
	Base
	Sequence int
}

type ProximityIn struct {
	Base
	ToolKey ToolKey
}

type ProximityOut struct {
	Base
	ToolKey ToolKey
}

type TouchpadPinch struct {
	Base
	Phase      GesturePhase
	NFingers   int
	Dx, Dy     float64
	Scale      float64
	AngleDelta float64
}

type TouchpadSwipe struct {
	Base
	Phase    GesturePhase
	NFingers int
	Dx, Dy   float64
}

type PadButtonPress struct {
	Base
	Number int
	Mode   int
	Group  int
}

type PadButtonRelease struct {
	Base
	Number int
	Mode   int
	Group  int
}

type PadStrip struct {
	Base
	Number int
	Mode   int
	Group  int
	Source PadSource
	Value  float64
}

type PadRing struct {
	Base
	Number int
	Mode   int
	Group  int
	Source PadSource
	Angle  float64
}

// KeyPress carries Repeated=true for synthetic auto-repeat presses, which
// the key-repeat timer emits directly rather than through a raw key event;
// the translator never updates xkb state for those.
type KeyPress struct {
	Base
	Key      uint32
	Repeated bool
}

type KeyRelease struct {
	Base
	Key uint32
}
