package seat

import (
	"context"

	"github.com/bnema/seatengine/internal/inputevent"
	"github.com/bnema/seatengine/internal/logger"
	charmlog "github.com/charmbracelet/log"
)

// EventSource is the engine's inbound collaborator: a libinput-like
// decoder sitting on top of the kernel device fds. The engine never
// parses evdev itself; internal/source provides the concrete
// implementation. Kept minimal and opaque.
type EventSource interface {
	// Fd returns the pollable file descriptor backing the source.
	Fd() int
	// HasQueued reports whether decoded events are already buffered,
	// independent of fd readability (the second dispatch wake condition).
	HasQueued() bool
	// Drain pulls all currently available raw events off the source.
	Drain() ([]inputevent.Raw, error)
	// Suspend asks the source to close its device fds (tty release).
	Suspend() error
	// Resume reopens device fds and reports which devices are live again
	// (tty reclaim).
	Resume() ([]inputevent.RawDevice, error)
}

// Poller abstracts the blocking wait on the source's fd, so dispatch
// logic is testable without a real epoll/poll syscall. The production
// implementation (wired in cmd/seatdemo) backs this with
// golang.org/x/sys/unix.Poll.
type Poller interface {
	Wait(ctx context.Context, fd int) (readable bool, err error)
}

// dispatcher is the polled I/O loop over the event source's fd (C15).
// Grounded on the original read loop in internal/input/all_devices_capture.go
// (the epoll-style multi-fd select loop feeding per-device handlers),
// generalized from "N independent per-device goroutines" to a single
// cooperative loop matching the its single-threaded scheduling model.
type dispatcher struct {
	source EventSource
	poller Poller
	translator *translator

	log *charmlog.Logger

	released bool
}

func newDispatcher(source EventSource, poller Poller, tr *translator) *dispatcher {
	return &dispatcher{source: source, poller: poller, translator: tr, log: logger.WithPrefix("DISPATCH")}
}

// run blocks, dispatching events, until ctx is cancelled.
func (d *dispatcher) run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.source.HasQueued() {
			readable, err := d.poller.Wait(ctx, d.source.Fd())
			if err != nil {
				return err
			}
			if !readable {
				continue
			}
		}
		if err := d.pump(); err != nil {
			return err
		}
	}
}

// pump drains the source once and processes every raw event, in order,
// stopping when drained.
func (d *dispatcher) pump() error {
	events, err := d.source.Drain()
	if err != nil {
		return err
	}
	for _, ev := range events {
		d.processBaseEvent(ev)
		d.translator.handle(ev)
	}
	return nil
}

// processBaseEvent handles device add/remove before the translator sees
// anything else, step 2.
func (d *dispatcher) processBaseEvent(ev inputevent.Raw) {
	switch e := ev.(type) {
	case *inputevent.DeviceAddedEvent:
		d.translator.onDeviceAdded(e.Device)
	case *inputevent.DeviceRemovedEvent:
		d.translator.onDeviceRemoved(e.Device)
	}
}

// release suspends the source (tty switch away). Calling it twice is a
// no-op with a warning, never a crash.
func (d *dispatcher) release() {
	if d.released {
		d.log.Warnf("release called while already released")
		return
	}
	if err := d.source.Suspend(); err != nil {
		d.log.Errorf("suspend failed: %v", err)
	}
	d.pump() //nolint:errcheck // drain whatever arrived before the fds closed
	d.released = true
}

// reclaim resumes the source (tty switch back), re-seating keyboard LED
// state and re-draining. Calling it without a prior release is a no-op
// with a warning.
func (d *dispatcher) reclaim() {
	if !d.released {
		d.log.Warnf("reclaim called without a prior release")
		return
	}
	if _, err := d.source.Resume(); err != nil {
		d.log.Errorf("resume failed: %v", err)
	}
	d.translator.keyboard.resync()
	d.released = false
	d.pump() //nolint:errcheck
}
