package seat

import (
	"testing"
	"time"

	"github.com/bnema/seatengine/internal/inputevent"
)

type fakeRawDevice struct{ path string }

func (d *fakeRawDevice) Path() string               { return d.path }
func (d *fakeRawDevice) Kind() inputevent.DeviceType { return inputevent.DeviceTypeKeyboard }

// fakeClock never fires on its own; tests invoke the scheduled funcs
// directly to drive the repeater deterministically.
type fakeClock struct {
	scheduled []func()
}

func (c *fakeClock) after(d time.Duration, f func()) repeatTimerHandle {
	c.scheduled = append(c.scheduled, f)
	return &fakeTimerHandle{}
}

func (c *fakeClock) fireLatest() {
	if len(c.scheduled) == 0 {
		return
	}
	f := c.scheduled[len(c.scheduled)-1]
	c.scheduled = c.scheduled[:len(c.scheduled)-1]
	f()
}

type fakeTimerHandle struct{ stopped bool }

func (h *fakeTimerHandle) stop() bool {
	wasPending := !h.stopped
	h.stopped = true
	return wasPending
}

func TestKeyRepeaterFiresDelayThenInterval(t *testing.T) {
	clock := &fakeClock{}
	var fired []uint32
	r := newKeyRepeater(clock, func(keycode uint32, device inputevent.RawDevice) {
		fired = append(fired, keycode)
	})
	dev := &fakeRawDevice{path: "/dev/input/event0"}

	r.onKeyDown(30, dev)
	if len(clock.scheduled) != 1 {
		t.Fatalf("expected one scheduled timer after key-down, got %d", len(clock.scheduled))
	}

	clock.fireLatest() // delay elapses, first repeat fires
	if len(fired) != 1 || fired[0] != 30 {
		t.Fatalf("expected one fire of keycode 30, got %v", fired)
	}

	clock.fireLatest() // interval elapses, second repeat fires
	clock.fireLatest()
	if len(fired) != 3 {
		t.Fatalf("expected repeated firing at each interval, got %d fires", len(fired))
	}
}

func TestKeyRepeaterDisabledNeverSchedules(t *testing.T) {
	clock := &fakeClock{}
	r := newKeyRepeater(clock, func(uint32, inputevent.RawDevice) {})
	r.configure(false, 400, 25)

	r.onKeyDown(30, &fakeRawDevice{path: "a"})
	if len(clock.scheduled) != 0 {
		t.Errorf("expected a disabled repeater to never schedule a timer")
	}
}

func TestKeyRepeaterKeyUpCancels(t *testing.T) {
	clock := &fakeClock{}
	var fired int
	r := newKeyRepeater(clock, func(uint32, inputevent.RawDevice) { fired++ })
	dev := &fakeRawDevice{path: "a"}

	r.onKeyDown(30, dev)
	r.onKeyUp(30, dev)

	if r.pending != nil {
		t.Errorf("expected onKeyUp to clear the pending timer")
	}
}

func TestKeyRepeaterOtherKeyDownCancels(t *testing.T) {
	clock := &fakeClock{}
	r := newKeyRepeater(clock, func(uint32, inputevent.RawDevice) {})
	dev := &fakeRawDevice{path: "a"}

	r.onKeyDown(30, dev)
	r.onOtherKeyDown()

	if r.device != nil {
		t.Errorf("expected onOtherKeyDown to unconditionally cancel the repeater")
	}
}

func TestKeyRepeaterDeviceRemovedOnlyCancelsIfTargeted(t *testing.T) {
	clock := &fakeClock{}
	r := newKeyRepeater(clock, func(uint32, inputevent.RawDevice) {})
	dev := &fakeRawDevice{path: "a"}
	other := &fakeRawDevice{path: "b"}

	r.onKeyDown(30, dev)
	r.onDeviceRemoved(other)
	if r.device == nil {
		t.Errorf("expected an unrelated device removal to leave the repeater untouched")
	}

	r.onDeviceRemoved(dev)
	if r.device != nil {
		t.Errorf("expected removing the targeted device to cancel the repeater")
	}
}

func TestKeyRepeaterTargets(t *testing.T) {
	clock := &fakeClock{}
	r := newKeyRepeater(clock, func(uint32, inputevent.RawDevice) {})
	dev := &fakeRawDevice{path: "a"}

	if r.targets(dev) {
		t.Errorf("expected targets() to be false before any key-down")
	}
	r.onKeyDown(30, dev)
	if !r.targets(dev) {
		t.Errorf("expected targets() to be true for the latched device")
	}
}
