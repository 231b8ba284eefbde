package seat

import "testing"

// TestRelativeScaleCrossOutputBoundary covers a 1.0-scale view adjacent
// to a 2.0-scale view, starting 50px left of the shared boundary, moving
// raw dx=100. The portion before the boundary applies at 1.0, the
// remainder at 2.0, landing the cursor 100px into the second view past
// its left edge. This is the boundary-behavior invariant: remaining raw
// past a crossing is rescaled by the destination view's own scale.
func TestRelativeScaleCrossOutputBoundary(t *testing.T) {
	m := newMotionPipeline()
	m.setViewport(NewViewport([]View{
		{X: 0, Y: 0, Width: 1000, Height: 1000, Scale: 1.0},
		{X: 1000, Y: 0, Width: 1000, Height: 1000, Scale: 2.0},
	}))
	m.x, m.y = 950, 500

	dx, dy := m.relativeScale(100, 0)

	wantDx := 150.0 // 50px at scale 1.0 to the boundary, then 50px remaining * scale 2.0
	if dx != wantDx {
		t.Errorf("relativeScale dx = %v, want %v", dx, wantDx)
	}
	if dy != 0 {
		t.Errorf("relativeScale dy = %v, want 0", dy)
	}

	finalX := m.x + dx
	if finalX != 1100 {
		t.Errorf("final x = %v, want 1100 (boundary 1000 + 100)", finalX)
	}
}

// TestRelativeScaleCrossOutputLargerDelta exercises the same boundary
// as TestRelativeScaleCrossOutputBoundary with a raw delta large enough
// that most of it falls past the crossing (150 of the 200 raw px),
// confirming the destination-scale rescale is applied to the remainder
// consistently regardless of how much of the raw delta survives the
// first view.
func TestRelativeScaleCrossOutputLargerDelta(t *testing.T) {
	m := newMotionPipeline()
	m.setViewport(NewViewport([]View{
		{X: 0, Y: 0, Width: 1000, Height: 1000, Scale: 1.0},
		{X: 1000, Y: 0, Width: 1000, Height: 1000, Scale: 2.0},
	}))
	m.x, m.y = 950, 500

	dx, dy := m.relativeScale(200, 0)

	wantDx := 350.0 // 50px at scale 1.0 to the boundary, then 150px remaining * scale 2.0
	if dx != wantDx {
		t.Errorf("relativeScale dx = %v, want %v", dx, wantDx)
	}
	if dy != 0 {
		t.Errorf("relativeScale dy = %v, want 0", dy)
	}

	finalX := m.x + dx
	if finalX != 1300 {
		t.Errorf("final x = %v, want 1300 (boundary 1000 + 300)", finalX)
	}
}

// TestRelativeScaleForwardThroughThreeViews checks that a raw delta
// crossing two internal boundaries in the same direction keeps
// advancing instead of stopping at the first one: forbidding immediate
// reversal across the boundary just crossed must not forbid continuing
// forward across the next one.
func TestRelativeScaleForwardThroughThreeViews(t *testing.T) {
	m := newMotionPipeline()
	m.setViewport(NewViewport([]View{
		{X: 0, Y: 0, Width: 100, Height: 1000, Scale: 1.0},
		{X: 100, Y: 0, Width: 100, Height: 1000, Scale: 1.0},
		{X: 200, Y: 0, Width: 1000, Height: 1000, Scale: 2.0},
	}))
	m.x, m.y = 50, 500

	dx, dy := m.relativeScale(220, 0)

	finalX := m.x + dx
	if finalX != 340 {
		t.Errorf("final x = %v, want 340 (crossed two boundaries forward, rescaled in the third view)", finalX)
	}
	if dy != 0 {
		t.Errorf("relativeScale dy = %v, want 0", dy)
	}
}

func TestRelativeScaleStaysWithinSingleView(t *testing.T) {
	m := newMotionPipeline()
	m.setViewport(NewViewport([]View{
		{X: 0, Y: 0, Width: 1000, Height: 1000, Scale: 1.5},
	}))
	m.x, m.y = 100, 100

	dx, dy := m.relativeScale(50, 20)
	if dx != 75 || dy != 30 {
		t.Errorf("expected the delta scaled by the view's 1.5 scale, got (%v,%v)", dx, dy)
	}
}

func TestRelativeScaleNoViewportIsPassthrough(t *testing.T) {
	m := newMotionPipeline()
	dx, dy := m.relativeScale(30, -10)
	if dx != 30 || dy != -10 {
		t.Errorf("expected passthrough with no viewport configured, got (%v,%v)", dx, dy)
	}
}

func TestMonitorClampPreventsEscape(t *testing.T) {
	m := newMotionPipeline()
	m.setViewport(NewViewport([]View{
		{X: 0, Y: 0, Width: 1000, Height: 1000, Scale: 1.0},
	}))
	m.x, m.y = 500, 500

	x, y := 1500.0, 500.0
	m.constrainChain(&x, &y)

	if x < 0 || x >= 1000 {
		t.Errorf("expected clamp to keep x within [0,1000), got %v", x)
	}
}

func TestWarpSetsPosition(t *testing.T) {
	m := newMotionPipeline()
	x, y := m.warp(42, 84)
	if x != 42 || y != 84 {
		t.Errorf("warp returned (%v,%v), want (42,84)", x, y)
	}
	curX, curY := m.position()
	if curX != 42 || curY != 84 {
		t.Errorf("position() after warp = (%v,%v), want (42,84)", curX, curY)
	}
}
