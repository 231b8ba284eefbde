package seat

// ConstraintLifetime mirrors the oneshot/persistent lifetime distinction
// of the pointer-constraints-unstable-v1 Wayland protocol (see the
// teacher's pointer_constraints package for the wire-level definitions;
// the engine itself never speaks the protocol — it only applies the
// resulting confinement region to candidate pointer motion).
type ConstraintLifetime int

const (
	ConstraintOneshot ConstraintLifetime = iota
	ConstraintPersistent
)

// ConstraintRegion is an axis-aligned region the pointer is confined to,
// or a single locked point when Locked is true.
type ConstraintRegion struct {
	Locked       bool
	LockX, LockY float64
	X1, Y1       float64
	X2, Y2       float64
}

func (r ConstraintRegion) contains(x, y float64) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// pointerConstraint is the seat's optional external region-confinement
// object (C6). Only one constraint is active at a time, matching the
// teacher's model of a single locked/confined pointer object per surface.
type pointerConstraint struct {
	region   *ConstraintRegion
	lifetime ConstraintLifetime
}

func newPointerConstraint() *pointerConstraint {
	return &pointerConstraint{}
}

func (c *pointerConstraint) set(region *ConstraintRegion, lifetime ConstraintLifetime) {
	c.region = region
	c.lifetime = lifetime
}

func (c *pointerConstraint) clear() {
	c.region = nil
}

// apply is the constrain chain's second stage: given the pointer's last
// committed position and a barrier-clamped candidate, rewrite the
// candidate in place if a constraint region is active.
func (c *pointerConstraint) apply(oldX, oldY float64, x, y *float64) {
	if c.region == nil {
		return
	}
	if c.region.Locked {
		*x, *y = c.region.LockX, c.region.LockY
		return
	}
	if c.region.contains(*x, *y) {
		return
	}
	*x = clampF(*x, c.region.X1, c.region.X2)
	*y = clampF(*y, c.region.Y1, c.region.Y2)
	_ = oldX
	_ = oldY
}
