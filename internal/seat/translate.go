package seat

import (
	"math"

	"github.com/bnema/seatengine/internal/inputevent"
	"github.com/bnema/seatengine/internal/logger"
	charmlog "github.com/charmbracelet/log"
)

// translator dispatches raw events to the outbound queue, owning the
// seat-wide debounce counters and wiring the per-component pipelines
// together (C14). Grounded on the original single aggregating dispatch
// function in internal/input/all_devices_capture.go (the big switch over
// evdev event types feeding a channel), generalized from "one physical
// keyboard+mouse" to the full device/event vocabulary of the design.
type translator struct {
	devices *deviceRegistry
	keyboard *keyboardComponent
	buttons *buttonStateMask
	motion *motionPipeline
	touches *touchTable
	scroll *scrollAccumulator
	repeater *keyRepeater
	touchMode *touchModeTracker
	observer Observer

	buttonCounts map[uint32]int // per-seat button-counter debounce, keyed by raw evdev code

	log *charmlog.Logger

	queue []inputevent.Event
}

func newTranslator(devices *deviceRegistry, kb *keyboardComponent, motion *motionPipeline, touchMode *touchModeTracker, observer Observer) *translator {
	if observer == nil {
		observer = NoopObserver{}
	}
	t := &translator{
		devices: devices,
		keyboard: kb,
		buttons: &buttonStateMask{},
		motion: motion,
		touches: newTouchTable(),
		scroll: newScrollAccumulator(),
		touchMode: touchMode,
		observer: observer,
		buttonCounts: make(map[uint32]int),
		log: logger.WithPrefix("TRANSLATE"),
	}
	t.repeater = newKeyRepeater(nil, t.emitRepeatedKey)
	return t
}

func (t *translator) emit(ev inputevent.Event) {
	t.queue = append(t.queue, ev)
}

func (t *translator) drain() []inputevent.Event {
	out := t.queue
	t.queue = nil
	return out
}

func (t *translator) base(kind inputevent.Kind, timeUS int64, associated, source inputevent.DeviceRef) inputevent.Base {
	return inputevent.Base{
		Kind: kind,
		TimeMS: timeUS / 1000,
		Modifiers: t.modifierState(),
		Associated: associated,
		Source: source,
	}
}

// modifierState combines xkb's serialized modifier mask with the
// button-contributed bits tracked in buttons, so a modifier chorded via
// a mouse button (as configured through ModifierButtonMask) feeds the
// reported modifier state alongside xkb mods.
func (t *translator) modifierState() uint32 {
	return t.keyboard.modifierMask() | t.buttons.value()
}

// --- device add/remove (process_base_event) ---

func (t *translator) onDeviceAdded(raw inputevent.RawDevice) {
	dev, presenceChanged := t.devices.add(raw)
	t.emit(&inputevent.DeviceAdded{
		Base: t.base(inputevent.KindDeviceAdded, 0, dev.ref(), dev.ref()),
		Device: dev.ref(),
	})
	if presenceChanged {
		t.touchMode.setTouchscreenPresence(t.devices.hasTouchscreen)
		t.runTouchModeInference()
	}
}

func (t *translator) onDeviceRemoved(raw inputevent.RawDevice) {
	t.repeater.onDeviceRemoved(raw)
	dev, presenceChanged := t.devices.remove(raw)
	if dev == nil {
		return
	}
	t.emit(&inputevent.DeviceRemoved{
		Base: t.base(inputevent.KindDeviceRemoved, 0, dev.ref(), dev.ref()),
		Device: dev.ref(),
	})
	if presenceChanged {
		t.touchMode.setTouchscreenPresence(t.devices.hasTouchscreen)
		t.runTouchModeInference()
	}
}

func (t *translator) runTouchModeInference() {
	v, changed := t.touchMode.refresh()
	if changed {
		t.observer.TouchModeChanged(v)
	}
}

// --- process_device_event (the translator proper) ---

func (t *translator) handle(raw inputevent.Raw) {
	switch ev := raw.(type) {
	case *inputevent.DeviceAddedEvent, *inputevent.DeviceRemovedEvent:
		// handled by dispatcher.processBaseEvent before handle is called.
	case *inputevent.KeyboardKeyEvent:
		t.handleKey(ev)
	case *inputevent.PointerMotionEvent:
		t.handleRelativeMotion(ev)
	case *inputevent.PointerMotionAbsoluteEvent:
		t.handleAbsoluteMotion(ev)
	case *inputevent.PointerButtonEvent:
		t.handleButton(ev)
	case *inputevent.PointerAxisEvent:
		t.handleAxis(ev)
	case *inputevent.TouchDownEvent:
		t.handleTouchDown(ev)
	case *inputevent.TouchUpEvent:
		t.handleTouchUp(ev)
	case *inputevent.TouchMotionEvent:
		t.handleTouchMotion(ev)
	case *inputevent.TouchCancelEvent:
		t.handleTouchCancel(ev)
	case *inputevent.GesturePinchEvent:
		t.handlePinch(ev)
	case *inputevent.GestureSwipeEvent:
		t.handleSwipe(ev)
	case *inputevent.TabletToolAxisEvent:
		t.handleTabletAxis(ev)
	case *inputevent.TabletToolProximityEvent:
		t.handleTabletProximity(ev)
	case *inputevent.TabletToolButtonEvent:
		t.handleTabletButton(ev)
	case *inputevent.TabletToolTipEvent:
		t.handleTabletTip(ev)
	case *inputevent.TabletPadButtonEvent:
		t.handlePadButton(ev)
	case *inputevent.TabletPadStripEvent:
		t.handlePadStrip(ev)
	case *inputevent.TabletPadRingEvent:
		t.handlePadRing(ev)
	case *inputevent.SwitchToggleEvent:
		t.handleSwitch(ev)
	default:
		t.log.Warnf("unclassified raw event %T, dropping", raw)
	}
}

func (t *translator) handleKey(ev *inputevent.KeyboardKeyEvent) {
	if ev.State == inputevent.KeyPressed && ev.SeatKeyCount != 1 {
		return
	}
	if ev.State == inputevent.KeyReleased && ev.SeatKeyCount != 0 {
		return
	}
	down := ev.State == inputevent.KeyPressed
	change := t.keyboard.updateKey(ev.Key, down)
	if change&XKBChangeLEDs != 0 {
		t.observer.ModsStateChanged(t.modifierState())
		t.observer.A11yToggleKey(ev.Key, down)
	}

	dev := t.devices.byDevice(ev.Device)
	ref := inputevent.DeviceRef{}
	if dev != nil {
		ref = dev.ref()
	}
	b := t.base(inputevent.KindKeyPress, ev.TimeUS, t.devices.logicalKeyboard.ref(), ref)
	if down {
		t.emit(&inputevent.KeyPress{Base: b, Key: ev.Key})
		switch {
		case t.repeater.device == nil, t.repeater.targets(ev.Device) && t.repeater.keycode == ev.Key:
			t.repeater.onKeyDown(ev.Key, ev.Device)
		default:
			// a different key going down while one is already held and
			// repeating interrupts it without stealing the repeat slot.
			t.repeater.onOtherKeyDown()
		}
	} else {
		b.Kind = inputevent.KindKeyRelease
		t.emit(&inputevent.KeyRelease{Base: b, Key: ev.Key})
		t.repeater.onKeyUp(ev.Key, ev.Device)
	}
}

// emitRepeatedKey is the keyRepeater's fire callback: synthesizes a
// KEY_PRESS marked Repeated, bypassing xkb state entirely.
func (t *translator) emitRepeatedKey(keycode uint32, device inputevent.RawDevice) {
	dev := t.devices.byDevice(device)
	ref := inputevent.DeviceRef{}
	if dev != nil {
		ref = dev.ref()
	}
	b := t.base(inputevent.KindKeyPress, 0, t.devices.logicalKeyboard.ref(), ref)
	t.emit(&inputevent.KeyPress{Base: b, Key: keycode, Repeated: true})
}

func (t *translator) stageExtents() (float64, float64) {
	if t.motion.viewport == nil {
		return 1, 1
	}
	w, h := t.motion.viewport.Extents()
	if w == 0 || h == 0 {
		return 1, 1
	}
	return float64(w), float64(h)
}

func (t *translator) handleRelativeMotion(ev *inputevent.PointerMotionEvent) {
	dev := t.devices.byDevice(ev.Device)
	dx, dy := t.motion.relativeScale(ev.Dx, ev.Dy)
	x, y := t.motion.position()
	fx, fy := t.motion.absolute(dev, false, x+dx, y+dy)

	b := t.base(inputevent.KindMotion, ev.TimeUS, t.devices.logicalPointer.ref(), t.refOf(dev))
	b.Platform = &inputevent.PlatformData{
		HasRelative: true,
		Relative: inputevent.Vec2{X: ev.DxUnaccel, Y: ev.DyUnaccel},
		TimeUS: ev.TimeUS,
	}
	t.emit(&inputevent.Motion{Base: b, X: fx, Y: fy})
}

func (t *translator) handleAbsoluteMotion(ev *inputevent.PointerMotionAbsoluteEvent) {
	dev := t.devices.byDevice(ev.Device)
	w, h := t.stageExtents()
	fx, fy := t.motion.absolute(dev, false, ev.X*w, ev.Y*h)
	b := t.base(inputevent.KindMotion, ev.TimeUS, t.devices.logicalPointer.ref(), t.refOf(dev))
	t.emit(&inputevent.Motion{Base: b, X: fx, Y: fy, Axes: ev.Axes})
}

func (t *translator) refOf(dev *Device) inputevent.DeviceRef {
	if dev == nil {
		return inputevent.DeviceRef{}
	}
	return dev.ref()
}

func (t *translator) handleButton(ev *inputevent.PointerButtonEvent) {
	if ev.State == inputevent.ButtonPressed && ev.SeatButtonCount != 1 {
		return
	}
	if ev.State == inputevent.ButtonReleased && ev.SeatButtonCount != 0 {
		return
	}
	pressed := ev.State == inputevent.ButtonPressed
	if pressed {
		t.buttonCounts[ev.Button]++
		if t.buttonCounts[ev.Button] > 1 {
			return
		}
	} else {
		if t.buttonCounts[ev.Button] <= 0 {
			return
		}
		t.buttonCounts[ev.Button]--
	}

	logical, ok := mapButtonCode(ev.Button, false)
	if !ok {
		return
	}
	t.buttons.set(logical, pressed)

	dev := t.devices.byDevice(ev.Device)
	if pressed {
		b := t.base(inputevent.KindButtonPress, ev.TimeUS, t.devices.logicalPointer.ref(), t.refOf(dev))
		t.emit(&inputevent.ButtonPress{Base: b, Button: logical})
	} else {
		b := t.base(inputevent.KindButtonRelease, ev.TimeUS, t.devices.logicalPointer.ref(), t.refOf(dev))
		t.emit(&inputevent.ButtonRelease{Base: b, Button: logical})
	}
}

func (t *translator) handleAxis(ev *inputevent.PointerAxisEvent) {
	dev := t.devices.byDevice(ev.Device)
	associated := t.devices.logicalPointer.ref()
	source := t.refOf(dev)

	if ev.Source == inputevent.AxisSourceWheel || ev.Source == inputevent.AxisSourceWheelTilt {
		b := t.base(inputevent.KindScrollSmooth, ev.TimeUS, associated, source)
		t.emit(&inputevent.ScrollSmooth{
			Base: b,
			Dx: smoothValue(ev.Horizontal.Value),
			Dy: smoothValue(ev.Vertical.Value),
			FinishedHorizontal: ev.Horizontal.Finished,
			FinishedVertical: ev.Vertical.Finished,
		})
		t.emitWheelDiscrete(ev, associated, source)
		return
	}

	b := t.base(inputevent.KindScrollSmooth, ev.TimeUS, associated, source)
	t.emit(&inputevent.ScrollSmooth{
		Base: b,
		Dx: smoothValue(ev.Horizontal.Value),
		Dy: smoothValue(ev.Vertical.Value),
		FinishedHorizontal: ev.Horizontal.Finished,
		FinishedVertical: ev.Vertical.Finished,
	})
	counts := t.scroll.feedContinuous(ev.Horizontal.Value, ev.Vertical.Value, ev.Horizontal.Finished, ev.Vertical.Finished)
	t.emitDiscreteCounts(counts, ev.TimeUS, associated, source, true)
}

func (t *translator) emitWheelDiscrete(ev *inputevent.PointerAxisEvent, associated, source inputevent.DeviceRef) {
	if ev.Horizontal.HasValue && ev.Horizontal.Discrete != 0 {
		dir := inputevent.ScrollRight
		if ev.Horizontal.Discrete < 0 {
			dir = inputevent.ScrollLeft
		}
		n := int(math.Abs(ev.Horizontal.Discrete))
		for i := 0; i < n; i++ {
			b := t.base(inputevent.KindScrollDiscrete, ev.TimeUS, associated, source)
			t.emit(&inputevent.ScrollDiscrete{Base: b, Direction: dir, Emulated: false})
		}
	}
	if ev.Vertical.HasValue && ev.Vertical.Discrete != 0 {
		dir := inputevent.ScrollDown
		if ev.Vertical.Discrete < 0 {
			dir = inputevent.ScrollUp
		}
		n := int(math.Abs(ev.Vertical.Discrete))
		for i := 0; i < n; i++ {
			b := t.base(inputevent.KindScrollDiscrete, ev.TimeUS, associated, source)
			t.emit(&inputevent.ScrollDiscrete{Base: b, Direction: dir, Emulated: false})
		}
	}
}

func (t *translator) emitDiscreteCounts(c discreteCounts, timeUS int64, associated, source inputevent.DeviceRef, emulated bool) {
	emitN := func(n int, dir inputevent.ScrollDirection) {
		for i := 0; i < n; i++ {
			b := t.base(inputevent.KindScrollDiscrete, timeUS, associated, source)
			t.emit(&inputevent.ScrollDiscrete{Base: b, Direction: dir, Emulated: emulated})
		}
	}
	emitN(c.left, inputevent.ScrollLeft)
	emitN(c.right, inputevent.ScrollRight)
	emitN(c.up, inputevent.ScrollUp)
	emitN(c.down, inputevent.ScrollDown)
}

const button1Bit = uint32(1) << 0 // injected into modifier state for legacy touch consumers

func (t *translator) handleTouchDown(ev *inputevent.TouchDownEvent) {
	w, h := t.stageExtents()
	x, y := ev.X*w, ev.Y*h
	if _, err := t.touches.acquire(ev.SeatSlot, x, y); err != nil {
		return
	}
	dev := t.devices.byDevice(ev.Device)
	b := t.base(inputevent.KindTouchBegin, ev.TimeUS, t.devices.logicalPointer.ref(), t.refOf(dev))
	b.Modifiers |= button1Bit
	t.emit(&inputevent.TouchBegin{Base: b, Sequence: touchSequence(ev.SeatSlot), X: x, Y: y})
}

func (t *translator) handleTouchMotion(ev *inputevent.TouchMotionEvent) {
	ts := t.touches.lookup(ev.SeatSlot)
	if ts == nil {
		return
	}
	w, h := t.stageExtents()
	ts.x, ts.y = ev.X*w, ev.Y*h
	dev := t.devices.byDevice(ev.Device)
	b := t.base(inputevent.KindTouchUpdate, ev.TimeUS, t.devices.logicalPointer.ref(), t.refOf(dev))
	b.Modifiers |= button1Bit
	t.emit(&inputevent.TouchUpdate{Base: b, Sequence: touchSequence(ev.SeatSlot), X: ts.x, Y: ts.y})
}

func (t *translator) handleTouchUp(ev *inputevent.TouchUpEvent) {
	if t.touches.lookup(ev.SeatSlot) == nil {
		return
	}
	t.touches.release(ev.SeatSlot)
	dev := t.devices.byDevice(ev.Device)
	b := t.base(inputevent.KindTouchEnd, ev.TimeUS, t.devices.logicalPointer.ref(), t.refOf(dev))
	t.emit(&inputevent.TouchEnd{Base: b, Sequence: touchSequence(ev.SeatSlot)})
}

func (t *translator) handleTouchCancel(ev *inputevent.TouchCancelEvent) {
	if t.touches.lookup(ev.SeatSlot) == nil {
		return
	}
	t.touches.release(ev.SeatSlot)
	dev := t.devices.byDevice(ev.Device)
	b := t.base(inputevent.KindTouchCancel, ev.TimeUS, t.devices.logicalPointer.ref(), t.refOf(dev))
	t.emit(&inputevent.TouchCancel{Base: b, Sequence: touchSequence(ev.SeatSlot)})
}

func (t *translator) handlePinch(ev *inputevent.GesturePinchEvent) {
	dev := t.devices.byDevice(ev.Device)
	b := t.base(inputevent.KindTouchpadPinch, ev.TimeUS, t.devices.logicalPointer.ref(), t.refOf(dev))
	t.emit(&inputevent.TouchpadPinch{
		Base: b, Phase: ev.Phase, NFingers: ev.NFingers,
		Dx: ev.Dx, Dy: ev.Dy, Scale: ev.Scale, AngleDelta: ev.AngleDelta,
	})
}

func (t *translator) handleSwipe(ev *inputevent.GestureSwipeEvent) {
	dev := t.devices.byDevice(ev.Device)
	b := t.base(inputevent.KindTouchpadSwipe, ev.TimeUS, t.devices.logicalPointer.ref(), t.refOf(dev))
	t.emit(&inputevent.TouchpadSwipe{Base: b, Phase: ev.Phase, NFingers: ev.NFingers, Dx: ev.Dx, Dy: ev.Dy})
}

// handleTabletAxis implements tablet-tool AXIS translation.
func (t *translator) handleTabletAxis(ev *inputevent.TabletToolAxisEvent) {
	dev := t.devices.byDevice(ev.Device)
	if dev == nil || dev.tools == nil {
		return
	}
	tool := dev.tools.current()

	if ev.Relative || (tool != nil && (tool.Type == inputevent.ToolMouse || tool.Type == inputevent.ToolLens)) {
		dx, dy := t.motion.relativeScale(ev.Dx, ev.Dy)
		newX, newY := dev.cachedX+ev.Dx, dev.cachedY+ev.Dy
		fx, fy := t.motion.absolute(dev, true, newX, newY)
		axes := buildAxisVector(tool, ev.Axes)
		b := t.base(inputevent.KindMotion, ev.TimeUS, dev.ref(), dev.ref())
		b.Platform = &inputevent.PlatformData{HasRelative: true, Relative: inputevent.Vec2{X: dx, Y: dy}, TimeUS: ev.TimeUS}
		t.emit(&inputevent.Motion{Base: b, X: fx, Y: fy, Axes: axes, ToolKey: toolKeyOf(tool)})
		return
	}

	w, h := t.stageExtents()
	fx, fy := t.motion.absolute(dev, true, ev.Axes.X*w, ev.Axes.Y*h)
	axes := buildAxisVector(tool, ev.Axes)
	b := t.base(inputevent.KindMotion, ev.TimeUS, dev.ref(), dev.ref())
	t.emit(&inputevent.Motion{Base: b, X: fx, Y: fy, Axes: axes, ToolKey: toolKeyOf(tool)})
}

func toolKeyOf(tool *Tool) inputevent.ToolKey {
	if tool == nil {
		return inputevent.ToolKey{}
	}
	return inputevent.ToolKey{Serial: tool.Serial, Type: tool.Type}
}

func (t *translator) handleTabletProximity(ev *inputevent.TabletToolProximityEvent) {
	dev := t.devices.byDevice(ev.Device)
	if dev == nil || dev.tools == nil {
		return
	}
	if ev.In {
		tool := dev.tools.proximityIn(ev.ToolSerial, ev.ToolType, ev.Caps)
		t.observer.ToolChanged(toolKeyPublic{Serial: tool.Serial, Type: int(tool.Type)})
		b := t.base(inputevent.KindProximityIn, ev.TimeUS, dev.ref(), dev.ref())
		t.emit(&inputevent.ProximityIn{Base: b, ToolKey: toolKeyOf(tool)})
		return
	}
	tool := dev.tools.current()
	b := t.base(inputevent.KindProximityOut, ev.TimeUS, dev.ref(), dev.ref())
	t.emit(&inputevent.ProximityOut{Base: b, ToolKey: toolKeyOf(tool)})
	dev.tools.proximityOut()
}

func (t *translator) handleTabletButton(ev *inputevent.TabletToolButtonEvent) {
	dev := t.devices.byDevice(ev.Device)
	if dev == nil || dev.tools == nil {
		return
	}
	tool := dev.tools.current()
	if tool == nil {
		return
	}
	hwCode, logical, ok := tool.remapButton(ev.Button, true)
	if !ok {
		return
	}
	pressed := ev.State == inputevent.ButtonPressed
	t.buttons.set(logical, pressed)
	b := t.base(inputevent.KindButtonPress, ev.TimeUS, dev.ref(), dev.ref())
	b.Platform = &inputevent.PlatformData{HasEventCode: true, EventCode: hwCode}
	if pressed {
		t.emit(&inputevent.ButtonPress{Base: b, Button: logical})
	} else {
		b.Kind = inputevent.KindButtonRelease
		t.emit(&inputevent.ButtonRelease{Base: b, Button: logical})
	}
}

// handleTabletTip flushes axes before tip-down and after tip-up, so the
// coordinate is correct at the moment of contact transition.
func (t *translator) handleTabletTip(ev *inputevent.TabletToolTipEvent) {
	dev := t.devices.byDevice(ev.Device)
	if dev == nil || dev.tools == nil {
		return
	}
	tool := dev.tools.current()
	logical, ok := mapButtonCode(btnTouch, true)
	if !ok {
		return
	}

	flushAxes := func() {
		w, h := t.stageExtents()
		fx, fy := t.motion.absolute(dev, true, ev.Axes.X*w, ev.Axes.Y*h)
		axes := buildAxisVector(tool, ev.Axes)
		b := t.base(inputevent.KindMotion, ev.TimeUS, dev.ref(), dev.ref())
		t.emit(&inputevent.Motion{Base: b, X: fx, Y: fy, Axes: axes, ToolKey: toolKeyOf(tool)})
	}

	if ev.Down {
		flushAxes()
		t.buttons.set(logical, true)
		b := t.base(inputevent.KindButtonPress, ev.TimeUS, dev.ref(), dev.ref())
		t.emit(&inputevent.ButtonPress{Base: b, Button: logical})
	} else {
		t.buttons.set(logical, false)
		b := t.base(inputevent.KindButtonRelease, ev.TimeUS, dev.ref(), dev.ref())
		t.emit(&inputevent.ButtonRelease{Base: b, Button: logical})
		flushAxes()
	}
}

func (t *translator) handlePadButton(ev *inputevent.TabletPadButtonEvent) {
	dev := t.devices.byDevice(ev.Device)
	pressed := ev.State == inputevent.ButtonPressed
	b := t.base(inputevent.KindPadButtonPress, ev.TimeUS, t.refOf(dev), t.refOf(dev))
	if pressed {
		t.emit(&inputevent.PadButtonPress{Base: b, Number: ev.Number, Mode: ev.Mode, Group: ev.Group})
	} else {
		b.Kind = inputevent.KindPadButtonRelease
		t.emit(&inputevent.PadButtonRelease{Base: b, Number: ev.Number, Mode: ev.Mode, Group: ev.Group})
	}
}

func (t *translator) handlePadStrip(ev *inputevent.TabletPadStripEvent) {
	dev := t.devices.byDevice(ev.Device)
	b := t.base(inputevent.KindPadStrip, ev.TimeUS, t.refOf(dev), t.refOf(dev))
	t.emit(&inputevent.PadStrip{Base: b, Number: ev.Number, Mode: ev.Mode, Group: ev.Group, Source: ev.Source, Value: ev.Value})
}

func (t *translator) handlePadRing(ev *inputevent.TabletPadRingEvent) {
	dev := t.devices.byDevice(ev.Device)
	b := t.base(inputevent.KindPadRing, ev.TimeUS, t.refOf(dev), t.refOf(dev))
	t.emit(&inputevent.PadRing{Base: b, Number: ev.Number, Mode: ev.Mode, Group: ev.Group, Source: ev.Source, Angle: ev.Angle})
}

func (t *translator) handleSwitch(ev *inputevent.SwitchToggleEvent) {
	if ev.Switch != inputevent.SwitchTabletMode {
		return
	}
	t.touchMode.setTabletSwitchPresence(true)
	t.touchMode.setSwitchState(ev.State)
	t.runTouchModeInference()
}
