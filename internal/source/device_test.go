package source

import (
	"testing"

	"github.com/bnema/seatengine/internal/inputevent"
	evdev "github.com/gvalkov/golang-evdev"
)

func capsOf(pairs ...[2]int) map[evdev.CapabilityType][]evdev.CapabilityCode {
	caps := make(map[evdev.CapabilityType][]evdev.CapabilityCode)
	for _, p := range pairs {
		typ := evdev.CapabilityType{Type: p[0]}
		caps[typ] = append(caps[typ], evdev.CapabilityCode{Code: p[1]})
	}
	return caps
}

func TestClassifyPlainKeyboard(t *testing.T) {
	dev := &evdev.InputDevice{Capabilities: capsOf(
		[2]int{evdev.EV_KEY, evdev.KEY_A},
		[2]int{evdev.EV_KEY, evdev.KEY_SPACE},
	)}
	if got := classify(dev); got != inputevent.DeviceTypeKeyboard {
		t.Errorf("classify(keyboard caps) = %v, want DeviceTypeKeyboard", got)
	}
}

func TestClassifyMouse(t *testing.T) {
	dev := &evdev.InputDevice{Capabilities: capsOf(
		[2]int{evdev.EV_KEY, evdev.BTN_LEFT},
	)}
	if got := classify(dev); got != inputevent.DeviceTypePointer {
		t.Errorf("classify(mouse caps) = %v, want DeviceTypePointer", got)
	}
}

func TestClassifyTouchscreenNeedsMultitouchSlot(t *testing.T) {
	dev := &evdev.InputDevice{Capabilities: capsOf(
		[2]int{evdev.EV_ABS, evdev.ABS_MT_SLOT},
	)}
	if got := classify(dev); got != inputevent.DeviceTypeTouchscreen {
		t.Errorf("classify(touchscreen caps) = %v, want DeviceTypeTouchscreen", got)
	}
}

func TestClassifyTouchpadNeedsBothAbsAndKey(t *testing.T) {
	dev := &evdev.InputDevice{Capabilities: capsOf(
		[2]int{evdev.EV_ABS, evdev.ABS_X},
		[2]int{evdev.EV_KEY, evdev.BTN_LEFT},
	)}
	if got := classify(dev); got != inputevent.DeviceTypeTouchpad {
		t.Errorf("classify(touchpad caps) = %v, want DeviceTypeTouchpad", got)
	}
}

func TestClassifyTabletToolTakesPriorityOverPad(t *testing.T) {
	dev := &evdev.InputDevice{Capabilities: capsOf(
		[2]int{evdev.EV_KEY, evdev.BTN_TOOL_PEN},
		[2]int{evdev.EV_ABS, evdev.ABS_X},
	)}
	if got := classify(dev); got != inputevent.DeviceTypeTablet {
		t.Errorf("classify(tablet tool caps) = %v, want DeviceTypeTablet", got)
	}
}

func TestClassifyPadButtons(t *testing.T) {
	dev := &evdev.InputDevice{Capabilities: capsOf(
		[2]int{evdev.EV_KEY, evdev.BTN_0},
		[2]int{evdev.EV_ABS, evdev.ABS_X},
	)}
	if got := classify(dev); got != inputevent.DeviceTypePad {
		t.Errorf("classify(pad caps) = %v, want DeviceTypePad", got)
	}
}

func TestClassifyPureSwitchDeviceIsUnknown(t *testing.T) {
	dev := &evdev.InputDevice{Capabilities: capsOf(
		[2]int{evdev.EV_SW, 0},
	)}
	if got := classify(dev); got != inputevent.DeviceTypeUnknown {
		t.Errorf("classify(pure switch caps) = %v, want DeviceTypeUnknown", got)
	}
}

func TestClassifyNoCapabilitiesDefaultsToPointer(t *testing.T) {
	dev := &evdev.InputDevice{Capabilities: map[evdev.CapabilityType][]evdev.CapabilityCode{}}
	if got := classify(dev); got != inputevent.DeviceTypePointer {
		t.Errorf("classify(no caps) = %v, want DeviceTypePointer", got)
	}
}
