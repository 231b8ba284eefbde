package seat

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/seatengine/internal/inputevent"
)

type fakeEventSource struct {
	queued      [][]inputevent.Raw
	hasQueued   bool
	suspendErr  error
	resumeErr   error
	suspended   int
	resumed     int
	resumeDevs  []inputevent.RawDevice
}

func (s *fakeEventSource) Fd() int { return 0 }

func (s *fakeEventSource) HasQueued() bool { return s.hasQueued }

func (s *fakeEventSource) Drain() ([]inputevent.Raw, error) {
	if len(s.queued) == 0 {
		return nil, nil
	}
	batch := s.queued[0]
	s.queued = s.queued[1:]
	s.hasQueued = len(s.queued) > 0
	return batch, nil
}

func (s *fakeEventSource) Suspend() error {
	s.suspended++
	return s.suspendErr
}

func (s *fakeEventSource) Resume() ([]inputevent.RawDevice, error) {
	s.resumed++
	return s.resumeDevs, s.resumeErr
}

// fakePoller reports readable exactly once per queued batch, then blocks
// (returns via ctx.Done) once the source is dry, letting run() exit
// cleanly when the test cancels the context.
type fakePoller struct {
	readableCount int
}

func (p *fakePoller) Wait(ctx context.Context, fd int) (bool, error) {
	if p.readableCount > 0 {
		p.readableCount--
		return true, nil
	}
	<-ctx.Done()
	return false, ctx.Err()
}

func newTestDispatcher(src *fakeEventSource, poller *fakePoller) (*dispatcher, *translator) {
	devices := newDeviceRegistry()
	kb := newKeyboardComponent(nil)
	motion := newMotionPipeline()
	tm := newTouchModeTracker()
	tr := newTranslator(devices, kb, motion, tm, nil)
	return newDispatcher(src, poller, tr), tr
}

func TestDispatcherPumpProcessesDeviceAddedBeforeTranslator(t *testing.T) {
	dev := &typedFakeDevice{path: "/dev/input/event20", kind: inputevent.DeviceTypeKeyboard}
	src := &fakeEventSource{
		queued: [][]inputevent.Raw{
			{&inputevent.DeviceAddedEvent{Device: dev}},
		},
		hasQueued: true,
	}
	d, tr := newTestDispatcher(src, &fakePoller{})

	if err := d.pump(); err != nil {
		t.Fatalf("pump returned error: %v", err)
	}
	events := tr.drain()
	if len(events) != 1 || events[0].EventKind() != inputevent.KindDeviceAdded {
		t.Fatalf("expected a single DeviceAdded event, got %v", events)
	}
}

func TestDispatcherRunStopsOnContextCancel(t *testing.T) {
	src := &fakeEventSource{}
	poller := &fakePoller{}
	d, _ := newTestDispatcher(src, poller)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected run to return context.Canceled immediately, got %v", err)
	}
}

func TestDispatcherReleaseSuspendsAndMarksReleased(t *testing.T) {
	src := &fakeEventSource{}
	d, _ := newTestDispatcher(src, &fakePoller{})

	d.release()
	if src.suspended != 1 {
		t.Errorf("expected Suspend to be called once, got %d", src.suspended)
	}
	if !d.released {
		t.Errorf("expected released to be true after release()")
	}
}

func TestDispatcherDoubleReleaseIsNoop(t *testing.T) {
	src := &fakeEventSource{}
	d, _ := newTestDispatcher(src, &fakePoller{})

	d.release()
	d.release()
	if src.suspended != 1 {
		t.Errorf("expected a second release() to not call Suspend again, got %d calls", src.suspended)
	}
}

func TestDispatcherReclaimResumesAndResyncsKeyboard(t *testing.T) {
	src := &fakeEventSource{}
	d, _ := newTestDispatcher(src, &fakePoller{})

	d.release()
	d.reclaim()
	if src.resumed != 1 {
		t.Errorf("expected Resume to be called once, got %d", src.resumed)
	}
	if d.released {
		t.Errorf("expected released to be false after reclaim()")
	}
}

func TestDispatcherReclaimWithoutReleaseIsNoop(t *testing.T) {
	src := &fakeEventSource{}
	d, _ := newTestDispatcher(src, &fakePoller{})

	d.reclaim()
	if src.resumed != 0 {
		t.Errorf("expected reclaim without a prior release to skip Resume, got %d calls", src.resumed)
	}
}
