package seat

import (
	"time"

	"github.com/bnema/seatengine/internal/inputevent"
)

// repeatClock abstracts time scheduling so tests can drive the timer
// deterministically without real sleeps. newKeyRepeater falls back to
// realClock, which uses time.AfterFunc, when given a nil clock (as the
// translator does).
type repeatClock interface {
	after(d time.Duration, f func()) repeatTimerHandle
}

type repeatTimerHandle interface {
	stop() bool
}

type realClock struct{}

type realTimerHandle struct{ t *time.Timer }

func (realClock) after(d time.Duration, f func()) repeatTimerHandle {
	return realTimerHandle{t: time.AfterFunc(d, f)}
}

func (h realTimerHandle) stop() bool { return h.t.Stop() }

// keyRepeater schedules synthetic auto-repeat key events (C8). Grounded
// on the original timer-driven safety-release pattern in
// internal/input/all_devices_capture.go (grabTimer / time.AfterFunc),
// generalized from a one-shot safety timeout to a reschedulable
// delay+interval repeat loop.
type keyRepeater struct {
	clock repeatClock
	enabled bool
	delay time.Duration
	interval time.Duration

	pending repeatTimerHandle
	keycode uint32
	device inputevent.RawDevice
	fire func(keycode uint32, device inputevent.RawDevice)
}

func newKeyRepeater(clock repeatClock, fire func(uint32, inputevent.RawDevice)) *keyRepeater {
	if clock == nil {
		clock = realClock{}
	}
	return &keyRepeater{
		clock: clock,
		enabled: true,
		delay: inputevent.DefaultRepeatDelayMS * time.Millisecond,
		interval: inputevent.DefaultRepeatIntervalMS * time.Millisecond,
		fire: fire,
	}
}

func (r *keyRepeater) configure(enabled bool, delayMS, intervalMS int) {
	r.enabled = enabled
	r.delay = time.Duration(delayMS) * time.Millisecond
	r.interval = time.Duration(intervalMS) * time.Millisecond
}

// cancel stops any pending firing. Safe to call when nothing is pending.
func (r *keyRepeater) cancel() {
	if r.pending != nil {
		r.pending.stop()
		r.pending = nil
	}
	r.device = nil
}

// targets reports whether the repeater currently latches this device.
func (r *keyRepeater) targets(device inputevent.RawDevice) bool {
	return r.device != nil && r.device == device
}

// onKeyDown cancels any pending timer and, if repeat is enabled, latches
// the key and schedules the first firing after `delay`. Every keycode is
// latched; there is no per-key repeatability check.
func (r *keyRepeater) onKeyDown(keycode uint32, device inputevent.RawDevice) {
	r.cancel()
	if !r.enabled {
		return
	}
	r.keycode = keycode
	r.device = device
	r.pending = r.clock.after(r.delay, r.fireFirst)
}

func (r *keyRepeater) fireFirst() {
	r.fire(r.keycode, r.device)
	r.pending = r.clock.after(r.interval, r.fireAgain)
}

func (r *keyRepeater) fireAgain() {
	r.fire(r.keycode, r.device)
	r.pending = r.clock.after(r.interval, r.fireAgain)
}

// onKeyUp cancels the repeater if it was latched to this key+device.
func (r *keyRepeater) onKeyUp(keycode uint32, device inputevent.RawDevice) {
	if r.device == device && r.keycode == keycode {
		r.cancel()
	}
}

// onOtherKeyDown cancels the repeater unconditionally: any other key going
// down interrupts a held repeat.
func (r *keyRepeater) onOtherKeyDown() {
	r.cancel()
}

// onDeviceRemoved cancels the repeater if it targeted the removed device.
func (r *keyRepeater) onDeviceRemoved(device inputevent.RawDevice) {
	if r.targets(device) {
		r.cancel()
	}
}
