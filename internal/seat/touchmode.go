package seat

// touchModeTracker derives "touch mode" from device presence plus the
// tablet-mode switch state (C11): touch_mode := has_touchscreen &&
// (!has_tablet_switch || tablet_mode_switch_state). Emits
// touch-mode-changed only on transitions.
type touchModeTracker struct {
	hasTouchscreen  bool
	hasTabletSwitch bool
	switchState     bool
	current         bool
}

func newTouchModeTracker() *touchModeTracker {
	return &touchModeTracker{}
}

func (t *touchModeTracker) compute() bool {
	return t.hasTouchscreen && (!t.hasTabletSwitch || t.switchState)
}

// refresh recomputes touch mode and returns (newValue, changed).
func (t *touchModeTracker) refresh() (bool, bool) {
	next := t.compute()
	changed := next != t.current
	t.current = next
	return next, changed
}

func (t *touchModeTracker) setTouchscreenPresence(present bool) {
	t.hasTouchscreen = present
}

func (t *touchModeTracker) setTabletSwitchPresence(present bool) {
	t.hasTabletSwitch = present
}

func (t *touchModeTracker) setSwitchState(state bool) {
	t.switchState = state
}
