// Package source provides the concrete event-source implementation the
// seat engine polls: a thin decoder over Linux evdev device nodes using
// gvalkov/golang-evdev, feeding golang.org/x/sys/unix for fd polling.
// The seat package never imports this package directly — callers wire
// it in through seat.EventSource.
package source

import (
	"fmt"

	"github.com/bnema/seatengine/internal/inputevent"
	"github.com/bnema/seatengine/internal/logger"
	evdev "github.com/gvalkov/golang-evdev"
)

// device wraps one open evdev.InputDevice as an inputevent.RawDevice,
// caching its classification so Kind() never re-probes capabilities.
type device struct {
	path string
	dev *evdev.InputDevice
	kind inputevent.DeviceType

	touchSlot int // last-seen ABS_MT_SLOT value, for multitouch devices
}

func (d *device) Path() string { return d.path }
func (d *device) Kind() inputevent.DeviceType { return d.kind }

// classify derives a DeviceType from the evdev capability bitmap,
// grounded on the original device_detection.go EVIOCGBIT probing,
// generalized from "is this a mouse or a keyboard" (the original only
// two buckets) to the full device vocabulary the engine needs.
func classify(dev *evdev.InputDevice) inputevent.DeviceType {
	caps := dev.Capabilities
	hasEVKey := false
	hasEVAbs := false
	hasEVSw := false
	hasMultitouch := false
	hasTabletTool := false
	hasPadButtons := false
	hasPointerButtons := false

	for evType, codes := range caps {
		switch evType.Type {
		case evdev.EV_KEY:
			hasEVKey = true
			for _, code := range codes {
				switch code.Code {
				case evdev.BTN_TOOL_PEN, evdev.BTN_STYLUS:
					hasTabletTool = true
				case evdev.BTN_0, evdev.BTN_1:
					hasPadButtons = true
				case evdev.BTN_LEFT, evdev.BTN_RIGHT, evdev.BTN_MIDDLE:
					hasPointerButtons = true
				}
			}
		case evdev.EV_ABS:
			hasEVAbs = true
			for _, code := range codes {
				if code.Code == evdev.ABS_MT_SLOT {
					hasMultitouch = true
				}
			}
		case evdev.EV_SW:
			hasEVSw = true
		}
	}

	switch {
	case hasEVSw && !hasEVAbs && !hasEVKey:
		return inputevent.DeviceTypeUnknown // pure switch device, handled generically
	case hasTabletTool:
		return inputevent.DeviceTypeTablet
	case hasPadButtons && hasEVAbs:
		return inputevent.DeviceTypePad
	case hasMultitouch && hasEVAbs:
		return inputevent.DeviceTypeTouchscreen
	case hasEVAbs && hasEVKey:
		return inputevent.DeviceTypeTouchpad
	case hasEVKey && !hasEVAbs && !hasPointerButtons:
		return inputevent.DeviceTypeKeyboard
	default:
		return inputevent.DeviceTypePointer
	}
}

func openDevice(path string) (*device, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	d := &device{path: path, dev: dev}
	d.kind = classify(dev)
	return d, nil
}

func (d *device) close() {
	if err := d.dev.Release(); err != nil {
		logger.Debugf("source: release %s: %v", d.path, err)
	}
	d.dev.File.Close()
}
