package seat

// Observer receives seat-level signals that aren't part of the outbound
// event queue proper: state-change notifications a compositor typically
// wires straight to its own bookkeeping rather than forwarding to
// clients. Modeled as an interface (rather than the ad hoc callback
// fields scattered across internal/input) to re-architect libinput's
// raw signal emission as an explicit sink; NoopObserver lets callers
// opt out of any subset.
type Observer interface {
	ModsStateChanged(mods uint32)
	TouchModeChanged(touchMode bool)
	ToolChanged(toolKey toolKeyPublic)
	Bell()
	A11yToggleKey(key uint32, held bool)
}

// toolKeyPublic mirrors inputevent.ToolKey; defined here to avoid forcing
// every Observer implementer to import inputevent just for this one
// notification's payload. Seat converts internally.
type toolKeyPublic struct {
	Serial uint64
	Type int
}

// NoopObserver implements Observer with no-ops; embed it to implement
// only the signals a caller cares about.
type NoopObserver struct{}

func (NoopObserver) ModsStateChanged(uint32) {}
func (NoopObserver) TouchModeChanged(bool) {}
func (NoopObserver) ToolChanged(toolKeyPublic) {}
func (NoopObserver) Bell() {}
func (NoopObserver) A11yToggleKey(uint32, bool) {}
