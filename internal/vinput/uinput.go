// Package vinput provides the seat engine's virtual-device backends:
// concrete seat.VirtualDeviceFactory implementations the public surface
// (C16, CreateVirtualDevice) delegates to. The seat package never imports
// this one; it only depends on the narrow VirtualDeviceFactory interface,
// matching the opaque-collaborator treatment gives device
// creation.
package vinput

import (
	"fmt"

	"github.com/ThomasT75/uinput"
	"github.com/bnema/seatengine/internal/inputevent"
	"github.com/bnema/seatengine/internal/seat"
)

// UinputFactory creates virtual devices backed by the kernel uinput
// module. Grounded on the original uInputHandler
// (internal/input/uinput_handler.go), generalized from "one
// hardcoded virtual mouse" to "create whatever device type the engine
// asks for".
type UinputFactory struct {
	path string // usually "/dev/uinput"
}

func NewUinputFactory(path string) *UinputFactory {
	if path == "" {
		path = "/dev/uinput"
	}
	return &UinputFactory{path: path}
}

func (f *UinputFactory) Create(typ inputevent.DeviceType) (seat.VirtualDevice, error) {
	switch typ {
	case inputevent.DeviceTypePointer, inputevent.DeviceTypeTouchpad:
		m, err := uinput.CreateMouse(f.path, []byte("seatengine virtual pointer"))
		if err != nil {
			return nil, fmt.Errorf("vinput: create virtual mouse: %w", err)
		}
		return &uinputMouse{m}, nil
	case inputevent.DeviceTypeKeyboard:
		k, err := uinput.CreateKeyboard(f.path, []byte("seatengine virtual keyboard"))
		if err != nil {
			return nil, fmt.Errorf("vinput: create virtual keyboard: %w", err)
		}
		return &uinputKeyboard{k}, nil
	case inputevent.DeviceTypeTouchscreen:
		t, err := uinput.CreateTouchPad(f.path, []byte("seatengine virtual touch"), 0, 4095, 0, 4095)
		if err != nil {
			return nil, fmt.Errorf("vinput: create virtual touchpad: %w", err)
		}
		return &uinputTouch{t}, nil
	default:
		return nil, fmt.Errorf("vinput: unsupported virtual device type %s", typ)
	}
}

// uinputMouse adapts uinput.Mouse to also carry the high-level motion
// primitives seat.VirtualDevice consumers want (move/button/scroll),
// beyond the bare Close() the seat package's VirtualDevice interface
// requires.
type uinputMouse struct{ uinput.Mouse }

func (m *uinputMouse) MoveRelative(dx, dy int32) error { return m.Move(dx, dy) }

func (m *uinputMouse) SetButton(logical int, down bool) error {
	switch logical {
	case 1:
		if down {
			return m.LeftPress()
		}
		return m.LeftRelease()
	case 2:
		if down {
			return m.MiddlePress()
		}
		return m.MiddleRelease()
	case 3:
		if down {
			return m.RightPress()
		}
		return m.RightRelease()
	default:
		return fmt.Errorf("vinput: unsupported logical button %d", logical)
	}
}

func (m *uinputMouse) Scroll(horizontal bool, amount int32) error {
	return m.Wheel(horizontal, amount)
}

type uinputKeyboard struct{ uinput.Keyboard }

func (k *uinputKeyboard) SetKey(code uint32, down bool) error {
	if down {
		return k.KeyDown(int(code))
	}
	return k.KeyUp(int(code))
}

type uinputTouch struct{ uinput.TouchPad }

func (t *uinputTouch) Begin(x, y int32) error {
	return t.MoveTo(x, y)
}

func (t *uinputTouch) Update(x, y int32) error {
	return t.MoveTo(x, y)
}

func (t *uinputTouch) End() error {
	return t.LeftClick()
}
