package seat

import (
	"context"
	"errors"

	"github.com/bnema/seatengine/internal/inputevent"
)

// ErrNotFound is returned by QueryState when asked about a device id or
// touch slot the seat has no record of.
var ErrNotFound = errors.New("seat: not found")

// VirtualDeviceFactory creates a virtual input device of the requested
// type, backing Seat.CreateVirtualDevice. internal/vinput supplies the
// concrete uinput/Wayland-backed implementations; the seat engine only
// depends on this narrow interface.
type VirtualDeviceFactory interface {
	Create(typ inputevent.DeviceType) (VirtualDevice, error)
}

// VirtualDevice is the handle returned for a created virtual device; the
// engine only needs its identity and teardown, never its wire protocol.
type VirtualDevice interface {
	Close() error
}

// State is the (coords, modifiers) pair returned by QueryState.
type State struct {
	X, Y float64
	Modifiers uint32
}

// Seat is the engine's top-level public surface (C16): a singleton
// per-seat object composing the device registry, keyboard, motion
// pipeline, translator and dispatch loop. Grounded on the original
// top-level coordinator pattern (internal/input's package-level
// capture/injection orchestration spread across all_devices_capture.go
// and wayland_virtual_input.go), unified here into one explicit struct
// "Seat" data model.
type Seat struct {
	ID string

	devices *deviceRegistry
	keyboard *keyboardComponent
	motion *motionPipeline
	touch *touchTable
	slots *virtualSlotReservation
	observer Observer

	translator *translator
	dispatcher *dispatcher

	vdevFactory VirtualDeviceFactory

	layoutIndex uint32
}

// Config bundles Seat's construction-time collaborators. Source, Poller
// and VDevFactory may be nil for tests that only exercise translation
// logic without a dispatch loop.
type Config struct {
	ID string
	Source EventSource
	Poller Poller
	XKB XKBState
	VDevFactory VirtualDeviceFactory
	Observer Observer
}

func New(cfg Config) *Seat {
	devices := newDeviceRegistry()
	kb := newKeyboardComponent(cfg.XKB)
	motion := newMotionPipeline()
	touchMode := newTouchModeTracker()

	s := &Seat{
		ID: cfg.ID,
		devices: devices,
		keyboard: kb,
		motion: motion,
		slots: newVirtualSlotReservation(),
		observer: cfg.Observer,
		vdevFactory: cfg.VDevFactory,
	}
	s.translator = newTranslator(devices, kb, motion, touchMode, cfg.Observer)
	s.touch = s.translator.touches
	if cfg.Source != nil {
		s.dispatcher = newDispatcher(cfg.Source, cfg.Poller, s.translator)
	}
	return s
}

// Run drives the dispatch loop until ctx is cancelled. Panics if no
// EventSource was configured; callers exercising pure translation logic
// in tests never call Run.
func (s *Seat) Run(ctx context.Context) error {
	return s.dispatcher.run(ctx)
}

// Events drains the outbound event queue accumulated so far.
func (s *Seat) Events() []inputevent.Event {
	return s.translator.drain()
}

// Pointer returns the logical pointer device.
func (s *Seat) Pointer() *Device {
	return s.devices.logicalPointer
}

// Keyboard returns the logical keyboard device.
func (s *Seat) Keyboard() *Device {
	return s.devices.logicalKeyboard
}

// Devices returns every device, logical leaders first.
func (s *Seat) Devices() []*Device {
	return s.devices.all()
}

// Keymap exposes the xkb-like state object directly, for callers that
// need raw keymap access (e.g. to build a client-facing keymap blob).
func (s *Seat) Keymap() XKBState {
	return s.keyboard.xkb
}

// Warp performs a direct absolute motion to (x,y) at time 0. The caller
// is responsible for notifying any cursor
// renderer/tracker asynchronously; the engine itself has no rendering
// concern.
func (s *Seat) Warp(x, y float64) (float64, float64) {
	return s.motion.warp(x, y)
}

// QueryState returns the current (coords, modifiers) for device, or
// ErrNotFound if the device is unknown. If sequence is non-nil, it must
// match a live touch sequence on that device's seat-slot space;
// otherwise the device's own cached (or seat) coordinates are used.
func (s *Seat) QueryState(device *Device, sequence *int) (State, error) {
	if device == nil {
		return State{}, ErrNotFound
	}
	mods := s.translator.modifierState()
	if sequence != nil {
		ts := s.findTouchBySequence(*sequence)
		if ts == nil {
			return State{}, ErrNotFound
		}
		return State{X: ts.x, Y: ts.y, Modifiers: mods}, nil
	}
	if device.Type == inputevent.DeviceTypePointer || device.Type == inputevent.DeviceTypeKeyboard {
		x, y := s.motion.position()
		return State{X: x, Y: y, Modifiers: mods}, nil
	}
	return State{X: device.cachedX, Y: device.cachedY, Modifiers: mods}, nil
}

func (s *Seat) findTouchBySequence(seq int) *touchState {
	for slot, ts := range s.touch.slots {
		if touchSequence(slot) == seq {
			return ts
		}
	}
	return nil
}

// CreateVirtualDevice creates a virtual device of typ via the configured
// factory, and — for DeviceTypeTouchscreen only — reserves a
// non-overlapping touch-slot base (C3), returning it alongside the device
// handle. For every other type the returned base is -1.
func (s *Seat) CreateVirtualDevice(typ inputevent.DeviceType) (VirtualDevice, int, error) {
	if s.vdevFactory == nil {
		return nil, 0, errors.New("seat: no virtual device factory configured")
	}
	vd, err := s.vdevFactory.Create(typ)
	if err != nil {
		return nil, 0, err
	}
	base := -1
	if typ == inputevent.DeviceTypeTouchscreen {
		base = s.slots.reserveNext()
	}
	return vd, base, nil
}

// SetKeyboardMap installs a new xkb-like state object wholesale (e.g.
// after a keymap/layout reload from the embedding compositor).
func (s *Seat) SetKeyboardMap(xkb XKBState) {
	s.keyboard = newKeyboardComponent(xkb)
	s.translator.keyboard = s.keyboard
}

func (s *Seat) KeyboardLayoutIndex() uint32 {
	return s.keyboard.layoutIndex()
}

// SetKeyboardLayoutIndex changes the active layout, preserving latched
// and locked modifier serialization (round-trip invariant R1).
func (s *Seat) SetKeyboardLayoutIndex(idx uint32) {
	s.keyboard.setLayoutIndex(idx)
	s.layoutIndex = idx
}

func (s *Seat) SetKeyboardNumlock(on bool) {
	s.keyboard.setNumlock(on)
}

// SetKeyboardRepeat reconfigures the key-repeat timer's parameters.
func (s *Seat) SetKeyboardRepeat(enabled bool, delayMS, intervalMS int) {
	s.translator.repeater.configure(enabled, delayMS, intervalMS)
}

// SetPointerConstraint installs or clears (region==nil) the active
// pointer constraint.
func (s *Seat) SetPointerConstraint(region *ConstraintRegion, lifetime ConstraintLifetime) {
	if region == nil {
		s.motion.constraint.clear()
		return
	}
	s.motion.constraint.set(region, lifetime)
}

// SetViewports installs a new viewport layout (or nil to clear it).
func (s *Seat) SetViewports(views []View) {
	if views == nil {
		s.motion.setViewport(nil)
		return
	}
	s.motion.setViewport(NewViewport(views))
}

// SetBarriers installs the active barrier set.
func (s *Seat) SetBarriers(barriers []Barrier) {
	s.motion.barriers.setBarriers(barriers)
}

// ReleaseDevices suspends the event source (tty switch away).
func (s *Seat) ReleaseDevices() {
	s.translator.repeater.cancel()
	s.dispatcher.release()
}

// ReclaimDevices resumes the event source (tty switch back).
func (s *Seat) ReclaimDevices() {
	s.dispatcher.reclaim()
}

// NotifyBell signals a keyboard bell to the observer.
func (s *Seat) NotifyBell() {
	if s.observer != nil {
		s.observer.Bell()
	}
}
