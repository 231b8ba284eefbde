package seat

import "github.com/bnema/seatengine/internal/inputevent"

// Device mirrors Device type. Types are mutually exclusive;
// every physical keyboard/pointer has exactly one leader; logical devices
// never have a leader.
type Device struct {
	ID int
	Type inputevent.DeviceType
	Mode inputevent.InputMode
	Leader *Device
	Raw inputevent.RawDevice
	Name string

	tools *tabletToolState // non-nil only for tablet-like devices

	cachedX, cachedY float64 // last reported coordinates, device-local
}

func (d *Device) Path() string {
	if d.Raw != nil {
		return d.Raw.Path()
	}
	return d.Name
}

// CurrentTool returns the device's current tool, or nil. Only meaningful
// for tablet-like devices.
func (d *Device) CurrentTool() *Tool {
	if d.tools == nil {
		return nil
	}
	return d.tools.current()
}

func (d *Device) ref() inputevent.DeviceRef {
	return inputevent.DeviceRef{ID: d.ID, Type: d.Type}
}

// deviceRegistry holds the ordered device list and the two always-present
// logical leaders (C9). Grounded on the original device bookkeeping
// spread across internal/input/all_devices_capture.go (devices map) and
// internal/input/device_detection.go (classification), unified here into
// a single ordered registry since the design requires a stable iteration
// order for devices().
type deviceRegistry struct {
	ids *idPool
	devices []*Device
	byRaw map[inputevent.RawDevice]*Device

	logicalPointer *Device
	logicalKeyboard *Device

	hasTouchscreen bool
}

func newDeviceRegistry() *deviceRegistry {
	r := &deviceRegistry{
		ids: newIDPool(),
		byRaw: make(map[inputevent.RawDevice]*Device),
	}
	r.logicalPointer = &Device{ID: 0, Type: inputevent.DeviceTypePointer, Mode: inputevent.InputModeLogical, Name: "core pointer"}
	r.logicalKeyboard = &Device{ID: 1, Type: inputevent.DeviceTypeKeyboard, Mode: inputevent.InputModeLogical, Name: "core keyboard"}
	return r
}

// classify derives a DeviceType from a hint supplied by the event source.
// The event source is expected to have already distinguished pointer vs.
// keyboard vs. tablet-family devices (it owns the evdev capability
// probing); the registry's job is bookkeeping, not re-deriving
// classification from capability bits.
func classify(hint inputevent.DeviceType) inputevent.DeviceType {
	if hint == inputevent.DeviceTypeUnknown {
		return inputevent.DeviceTypePointer
	}
	return hint
}

// add allocates an id, classifies, wires up leader assignment for
// keyboard/pointer devices, and refreshes the touchscreen presence flag.
// Returns the new Device and whether that flag changed (the caller re-runs
// touch-mode inference in that case). Tablet-mode-switch presence is not
// derived from added devices; the translator records it when the first
// switch toggle event arrives.
func (r *deviceRegistry) add(raw inputevent.RawDevice) (dev *Device, presenceChanged bool) {
	typ := classify(raw.Kind())
	dev = &Device{
		ID: r.ids.allocate(),
		Type: typ,
		Mode: inputevent.InputModePhysical,
		Raw: raw,
		Name: raw.Path(),
	}

	switch typ {
	case inputevent.DeviceTypeKeyboard:
		dev.Leader = r.logicalKeyboard
	case inputevent.DeviceTypePointer, inputevent.DeviceTypeTouchpad:
		dev.Leader = r.logicalPointer
	}
	if typ.IsTabletLike() {
		dev.tools = newTabletToolState()
	}

	r.devices = append(r.devices, dev)
	r.byRaw[raw] = dev

	before := r.hasTouchscreen
	r.refreshPresence()
	presenceChanged = before != r.hasTouchscreen
	return dev, presenceChanged
}

// remove deletes the device identified by raw, releasing its id.
// Returns the removed Device (nil if not found) and whether touchscreen
// presence changed.
func (r *deviceRegistry) remove(raw inputevent.RawDevice) (dev *Device, presenceChanged bool) {
	dev, ok := r.byRaw[raw]
	if !ok {
		return nil, false
	}
	delete(r.byRaw, raw)
	for i, d := range r.devices {
		if d == dev {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			break
		}
	}
	r.ids.release(dev.ID)

	before := r.hasTouchscreen
	r.refreshPresence()
	presenceChanged = before != r.hasTouchscreen
	return dev, presenceChanged
}

func (r *deviceRegistry) refreshPresence() {
	r.hasTouchscreen = false
	for _, d := range r.devices {
		if d.Type == inputevent.DeviceTypeTouchscreen {
			r.hasTouchscreen = true
		}
	}
}

// byDevice returns the Device for a raw handle, or nil.
func (r *deviceRegistry) byDevice(raw inputevent.RawDevice) *Device {
	return r.byRaw[raw]
}

// all returns the full device list in registration order, physical and
// logical devices both (logical leaders first, matching the original
// "logical devices present from birth" ordering).
func (r *deviceRegistry) all() []*Device {
	out := make([]*Device, 0, len(r.devices)+2)
	out = append(out, r.logicalPointer, r.logicalKeyboard)
	out = append(out, r.devices...)
	return out
}

func (r *deviceRegistry) count() int {
	return len(r.devices)
}
