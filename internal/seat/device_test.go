package seat

import (
	"testing"

	"github.com/bnema/seatengine/internal/inputevent"
)

type typedFakeDevice struct {
	path string
	kind inputevent.DeviceType
}

func (d *typedFakeDevice) Path() string               { return d.path }
func (d *typedFakeDevice) Kind() inputevent.DeviceType { return d.kind }

func TestClassifyUnknownDefaultsToPointer(t *testing.T) {
	if got := classify(inputevent.DeviceTypeUnknown); got != inputevent.DeviceTypePointer {
		t.Errorf("classify(Unknown) = %v, want DeviceTypePointer", got)
	}
	if got := classify(inputevent.DeviceTypeKeyboard); got != inputevent.DeviceTypeKeyboard {
		t.Errorf("classify should pass through a known hint unchanged, got %v", got)
	}
}

func TestDeviceRegistryHasLogicalLeadersFromBirth(t *testing.T) {
	r := newDeviceRegistry()
	all := r.all()
	if len(all) != 2 {
		t.Fatalf("expected exactly the two logical devices present at birth, got %d", len(all))
	}
	if all[0].Type != inputevent.DeviceTypePointer || all[1].Type != inputevent.DeviceTypeKeyboard {
		t.Errorf("expected logical pointer then logical keyboard, got %v then %v", all[0].Type, all[1].Type)
	}
}

func TestDeviceRegistryAddAssignsLeader(t *testing.T) {
	r := newDeviceRegistry()
	kb := &typedFakeDevice{path: "/dev/input/event1", kind: inputevent.DeviceTypeKeyboard}

	dev, _ := r.add(kb)
	if dev.Leader != r.logicalKeyboard {
		t.Errorf("expected a physical keyboard's leader to be the logical keyboard")
	}

	mouse := &typedFakeDevice{path: "/dev/input/event2", kind: inputevent.DeviceTypePointer}
	dev2, _ := r.add(mouse)
	if dev2.Leader != r.logicalPointer {
		t.Errorf("expected a physical pointer's leader to be the logical pointer")
	}
}

func TestDeviceRegistryAddDetectsTouchscreenPresenceChange(t *testing.T) {
	r := newDeviceRegistry()
	touch := &typedFakeDevice{path: "/dev/input/event3", kind: inputevent.DeviceTypeTouchscreen}

	_, changed := r.add(touch)
	if !changed {
		t.Errorf("expected adding the first touchscreen to report a presence change")
	}
	if !r.hasTouchscreen {
		t.Errorf("expected hasTouchscreen true after adding a touchscreen")
	}

	touch2 := &typedFakeDevice{path: "/dev/input/event4", kind: inputevent.DeviceTypeTouchscreen}
	_, changed = r.add(touch2)
	if changed {
		t.Errorf("expected a second touchscreen to not toggle presence again")
	}
}

func TestDeviceRegistryRemoveReleasesIDAndUpdatesPresence(t *testing.T) {
	r := newDeviceRegistry()
	touch := &typedFakeDevice{path: "/dev/input/event5", kind: inputevent.DeviceTypeTouchscreen}
	added, _ := r.add(touch)

	removed, changed := r.remove(touch)
	if removed != added {
		t.Errorf("expected remove to return the same Device that was added")
	}
	if !changed {
		t.Errorf("expected removing the last touchscreen to report a presence change")
	}
	if r.hasTouchscreen {
		t.Errorf("expected hasTouchscreen false after removing the only touchscreen")
	}
	if r.byDevice(touch) != nil {
		t.Errorf("expected byDevice to return nil after removal")
	}
	if r.count() != 0 {
		t.Errorf("expected count 0 after removing the only physical device, got %d", r.count())
	}
}

func TestDeviceRegistryRemoveUnknownIsNoop(t *testing.T) {
	r := newDeviceRegistry()
	dev, changed := r.remove(&typedFakeDevice{path: "never-added"})
	if dev != nil || changed {
		t.Errorf("expected removing an unregistered device to be a no-op")
	}
}

func TestDeviceRegistryTabletDeviceGetsToolState(t *testing.T) {
	r := newDeviceRegistry()
	pen := &typedFakeDevice{path: "/dev/input/event6", kind: inputevent.DeviceTypeTablet}
	dev, _ := r.add(pen)

	if dev.CurrentTool() != nil {
		t.Errorf("expected no current tool before one is seated")
	}
	if dev.tools == nil {
		t.Errorf("expected a tablet-like device to get tool state allocated")
	}
}

func TestDevicePathFallsBackToName(t *testing.T) {
	d := &Device{Name: "core pointer"}
	if got := d.Path(); got != "core pointer" {
		t.Errorf("expected Path() to fall back to Name when Raw is nil, got %q", got)
	}

	raw := &typedFakeDevice{path: "/dev/input/event7"}
	d2 := &Device{Raw: raw, Name: "ignored"}
	if got := d2.Path(); got != "/dev/input/event7" {
		t.Errorf("expected Path() to prefer Raw.Path() when set, got %q", got)
	}
}
