package seat

import (
	"testing"

	"github.com/bnema/seatengine/internal/inputevent"
)

type fakeVirtualDevice struct{ closed bool }

func (d *fakeVirtualDevice) Close() error {
	d.closed = true
	return nil
}

type fakeVDevFactory struct {
	lastType inputevent.DeviceType
}

func (f *fakeVDevFactory) Create(typ inputevent.DeviceType) (VirtualDevice, error) {
	f.lastType = typ
	return &fakeVirtualDevice{}, nil
}

func TestNewSeatHasLogicalDevicesAndNoDispatcherWithoutSource(t *testing.T) {
	s := New(Config{ID: "seat0"})
	if s.Pointer() == nil || s.Keyboard() == nil {
		t.Fatalf("expected logical pointer/keyboard to be present from birth")
	}
	if len(s.Devices()) != 2 {
		t.Errorf("expected exactly 2 devices (no physical devices added), got %d", len(s.Devices()))
	}
	if s.dispatcher != nil {
		t.Errorf("expected no dispatcher to be constructed without a Source")
	}
}

func TestSeatWarpUpdatesPosition(t *testing.T) {
	s := New(Config{ID: "seat0"})
	x, y := s.Warp(10, 20)
	if x != 10 || y != 20 {
		t.Fatalf("expected Warp to return (10,20), got (%v,%v)", x, y)
	}
	st, err := s.QueryState(s.Pointer(), nil)
	if err != nil {
		t.Fatalf("QueryState returned error: %v", err)
	}
	if st.X != 10 || st.Y != 20 {
		t.Errorf("expected QueryState to reflect the warp, got (%v,%v)", st.X, st.Y)
	}
}

func TestSeatQueryStateNilDeviceIsNotFound(t *testing.T) {
	s := New(Config{ID: "seat0"})
	if _, err := s.QueryState(nil, nil); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for a nil device, got %v", err)
	}
}

func TestSeatQueryStateUnknownSequenceIsNotFound(t *testing.T) {
	s := New(Config{ID: "seat0"})
	seq := 999
	if _, err := s.QueryState(s.Pointer(), &seq); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for an unknown touch sequence, got %v", err)
	}
}

func TestSeatQueryStateLiveTouchSequence(t *testing.T) {
	s := New(Config{ID: "seat0"})
	ts, err := s.touch.acquire(2, 100, 200)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	seq := touchSequence(2)

	st, err := s.QueryState(s.Pointer(), &seq)
	if err != nil {
		t.Fatalf("QueryState returned error: %v", err)
	}
	if st.X != ts.x || st.Y != ts.y {
		t.Errorf("expected QueryState to report the touch's own coordinates, got (%v,%v)", st.X, st.Y)
	}
}

func TestSeatQueryStateNonPointerDeviceUsesCachedCoords(t *testing.T) {
	s := New(Config{ID: "seat0"})
	dev := &Device{Type: inputevent.DeviceTypeTablet, cachedX: 5, cachedY: 6}

	st, err := s.QueryState(dev, nil)
	if err != nil {
		t.Fatalf("QueryState returned error: %v", err)
	}
	if st.X != 5 || st.Y != 6 {
		t.Errorf("expected cached device coordinates (5,6), got (%v,%v)", st.X, st.Y)
	}
}

func TestSeatCreateVirtualDeviceReservesTouchSlotOnlyForTouchscreen(t *testing.T) {
	factory := &fakeVDevFactory{}
	s := New(Config{ID: "seat0", VDevFactory: factory})

	_, base, err := s.CreateVirtualDevice(inputevent.DeviceTypePointer)
	if err != nil {
		t.Fatalf("CreateVirtualDevice returned error: %v", err)
	}
	if base != -1 {
		t.Errorf("expected no touch-slot base reserved for a pointer, got %d", base)
	}

	_, base, err = s.CreateVirtualDevice(inputevent.DeviceTypeTouchscreen)
	if err != nil {
		t.Fatalf("CreateVirtualDevice returned error: %v", err)
	}
	if base < inputevent.VirtualSlotBaseMin {
		t.Errorf("expected a reserved touch-slot base, got %d", base)
	}
}

func TestSeatCreateVirtualDeviceWithoutFactoryErrors(t *testing.T) {
	s := New(Config{ID: "seat0"})
	if _, _, err := s.CreateVirtualDevice(inputevent.DeviceTypePointer); err == nil {
		t.Errorf("expected an error when no VDevFactory is configured")
	}
}

func TestSeatSetKeyboardLayoutIndexPreservesModifiers(t *testing.T) {
	s := New(Config{ID: "seat0"})
	s.translator.keyboard.updateKey(KeyLeftShift, true)
	before := s.translator.modifierState()

	s.SetKeyboardLayoutIndex(2)
	if s.KeyboardLayoutIndex() != 2 {
		t.Errorf("expected layout index 2, got %d", s.KeyboardLayoutIndex())
	}
	if s.translator.modifierState() != before {
		t.Errorf("expected modifier state preserved across a layout change")
	}
}

func TestSeatSetKeyboardRepeatWiresRepeater(t *testing.T) {
	s := New(Config{ID: "seat0"})
	s.SetKeyboardRepeat(false, 10, 10)
	if s.translator.repeater.enabled {
		t.Errorf("expected SetKeyboardRepeat(false,...) to disable the repeater")
	}
}

func TestSeatSetViewportsNilClears(t *testing.T) {
	s := New(Config{ID: "seat0"})
	s.SetViewports([]View{{X: 0, Y: 0, Width: 100, Height: 100, Scale: 1}})
	if s.motion.viewport == nil {
		t.Fatalf("expected a viewport to be installed")
	}
	s.SetViewports(nil)
	if s.motion.viewport != nil {
		t.Errorf("expected SetViewports(nil) to clear the viewport")
	}
}

func TestSeatSetPointerConstraintNilClears(t *testing.T) {
	s := New(Config{ID: "seat0"})
	s.SetPointerConstraint(&ConstraintRegion{X1: 0, Y1: 0, X2: 10, Y2: 10}, ConstraintPersistent)
	if s.motion.constraint.region == nil {
		t.Fatalf("expected a constraint region to be installed")
	}
	s.SetPointerConstraint(nil, ConstraintOneshot)
	if s.motion.constraint.region != nil {
		t.Errorf("expected SetPointerConstraint(nil,...) to clear the active constraint")
	}
}

func TestSeatNotifyBellReachesObserver(t *testing.T) {
	obs := &recordingBellObserver{}
	s := New(Config{ID: "seat0", Observer: obs})
	s.NotifyBell()
	if !obs.rang {
		t.Errorf("expected NotifyBell to call the observer's Bell")
	}
}

type recordingBellObserver struct {
	NoopObserver
	rang bool
}

func (o *recordingBellObserver) Bell() { o.rang = true }

func TestSeatNotifyBellWithoutObserverIsNoop(t *testing.T) {
	s := New(Config{ID: "seat0"})
	s.NotifyBell() // must not panic
}
