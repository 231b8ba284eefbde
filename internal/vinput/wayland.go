package vinput

import (
	"context"
	"fmt"

	"github.com/bnema/wayland-virtual-input-go/virtual_keyboard"
	"github.com/bnema/wayland-virtual-input-go/virtual_pointer"
	"github.com/bnema/seatengine/internal/inputevent"
	"github.com/bnema/seatengine/internal/logger"
	"github.com/bnema/seatengine/internal/seat"
)

// WaylandFactory creates virtual devices through the wlr-virtual-pointer
// and virtual-keyboard Wayland protocols, for compositors that don't
// permit uinput access from an unprivileged process. Grounded on the
// teacher's WaylandVirtualInput (internal/input/wayland_virtual_input.go),
// narrowed from that type's dual capture+injection role down to the
// injection half only — capture lives in internal/source here.
type WaylandFactory struct {
	ctx context.Context
	pointerMgr *virtual_pointer.VirtualPointerManager
	keyboardMgr *virtual_keyboard.VirtualKeyboardManager
}

// NewWaylandFactory connects the given managers, already bound to a live
// Wayland display by the caller (display setup is a CLI-harness concern,
//, not this package's).
func NewWaylandFactory(ctx context.Context, pointerMgr *virtual_pointer.VirtualPointerManager, keyboardMgr *virtual_keyboard.VirtualKeyboardManager) *WaylandFactory {
	return &WaylandFactory{ctx: ctx, pointerMgr: pointerMgr, keyboardMgr: keyboardMgr}
}

func (f *WaylandFactory) Create(typ inputevent.DeviceType) (seat.VirtualDevice, error) {
	switch typ {
	case inputevent.DeviceTypePointer, inputevent.DeviceTypeTouchpad:
		if f.pointerMgr == nil {
			return nil, fmt.Errorf("vinput: no virtual pointer manager bound")
		}
		vp, err := f.pointerMgr.CreatePointer()
		if err != nil {
			return nil, fmt.Errorf("vinput: create wayland virtual pointer: %w", err)
		}
		return &waylandPointer{vp}, nil
	case inputevent.DeviceTypeKeyboard:
		if f.keyboardMgr == nil {
			return nil, fmt.Errorf("vinput: no virtual keyboard manager bound")
		}
		vk, err := f.keyboardMgr.CreateKeyboard()
		if err != nil {
			return nil, fmt.Errorf("vinput: create wayland virtual keyboard: %w", err)
		}
		return &waylandKeyboard{vk}, nil
	default:
		// Touch, tablet and pad have no wlr-virtual-* protocol counterpart;
		// the uinput backend is the only one that can create those.
		return nil, fmt.Errorf("vinput: wayland backend has no protocol for device type %s", typ)
	}
}

type waylandPointer struct {
	vp *virtual_pointer.VirtualPointer
}

func (p *waylandPointer) Close() error {
	if err := p.vp.Close(); err != nil {
		logger.Warnf("vinput: close wayland virtual pointer: %v", err)
		return err
	}
	return nil
}

type waylandKeyboard struct {
	vk *virtual_keyboard.VirtualKeyboard
}

func (k *waylandKeyboard) Close() error {
	if err := k.vk.Close(); err != nil {
		logger.Warnf("vinput: close wayland virtual keyboard: %v", err)
		return err
	}
	return nil
}
