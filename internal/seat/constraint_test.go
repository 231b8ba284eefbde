package seat

import "testing"

func TestConstraintRegionContains(t *testing.T) {
	r := ConstraintRegion{X1: 0, Y1: 0, X2: 100, Y2: 100}
	if !r.contains(50, 50) {
		t.Errorf("expected (50,50) inside the region")
	}
	if r.contains(150, 50) {
		t.Errorf("expected (150,50) outside the region")
	}
}

func TestPointerConstraintClampsToRegion(t *testing.T) {
	c := newPointerConstraint()
	c.set(&ConstraintRegion{X1: 0, Y1: 0, X2: 100, Y2: 100}, ConstraintPersistent)

	x, y := 150.0, 50.0
	c.apply(50, 50, &x, &y)
	if x != 100 || y != 50 {
		t.Errorf("expected (x,y) clamped to (100,50), got (%v,%v)", x, y)
	}
}

func TestPointerConstraintInsideRegionIsUntouched(t *testing.T) {
	c := newPointerConstraint()
	c.set(&ConstraintRegion{X1: 0, Y1: 0, X2: 100, Y2: 100}, ConstraintPersistent)

	x, y := 50.0, 60.0
	c.apply(40, 40, &x, &y)
	if x != 50 || y != 60 {
		t.Errorf("expected a position already inside the region to pass through unmodified, got (%v,%v)", x, y)
	}
}

func TestPointerConstraintLockedPinsPosition(t *testing.T) {
	c := newPointerConstraint()
	c.set(&ConstraintRegion{Locked: true, LockX: 42, LockY: 84}, ConstraintOneshot)

	x, y := 999.0, 999.0
	c.apply(0, 0, &x, &y)
	if x != 42 || y != 84 {
		t.Errorf("expected a locked constraint to pin (x,y) to (42,84), got (%v,%v)", x, y)
	}
}

func TestPointerConstraintNilRegionIsNoop(t *testing.T) {
	c := newPointerConstraint()
	x, y := 10.0, 20.0
	c.apply(0, 0, &x, &y)
	if x != 10 || y != 20 {
		t.Errorf("expected no active constraint to leave (x,y) untouched, got (%v,%v)", x, y)
	}
}

func TestPointerConstraintClear(t *testing.T) {
	c := newPointerConstraint()
	c.set(&ConstraintRegion{X1: 0, Y1: 0, X2: 10, Y2: 10}, ConstraintPersistent)
	c.clear()

	x, y := 500.0, 500.0
	c.apply(0, 0, &x, &y)
	if x != 500 || y != 500 {
		t.Errorf("expected clear() to deactivate the constraint, got (%v,%v)", x, y)
	}
}
