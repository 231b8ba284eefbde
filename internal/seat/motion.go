package seat

import "github.com/bnema/seatengine/internal/inputevent"

// maxBisectionSteps bounds the cross-output bisection loop
// against a malformed viewport layout with a neighbor cycle; a
// well-formed layout never visits more views than it has.
const maxBisectionSteps = 64

// dirNone is a sentinel meaning "no direction to forbid yet", used as the
// initial lastDir going into the bisection loop.
const dirNone Direction = -1

// motionPipeline holds the seat-wide pointer position and the
// constrain-chain collaborators, and implements the absolute/relative
// motion algorithms of C12. Grounded on the pointer handling in
// internal/input/all_devices_capture.go (the monitor-aware warp/clamp
// logic) and internal/display/monitor.go (GetMonitorAt/GetEdge), unified
// here to add per-output scale and explicit cross-output bisection.
type motionPipeline struct {
	x, y float64

	barriers *barrierManager
	constraint *pointerConstraint
	viewport *Viewport
	stageViewsScaled bool
}

func newMotionPipeline() *motionPipeline {
	return &motionPipeline{
		x: inputevent.InitialPointerX,
		y: inputevent.InitialPointerY,
		barriers: newBarrierManager(),
		constraint: newPointerConstraint(),
	}
}

func (m *motionPipeline) setViewport(vp *Viewport) {
	m.viewport = vp
}

func (m *motionPipeline) setStageViewsScaled(scaled bool) {
	m.stageViewsScaled = scaled
}

func (m *motionPipeline) position() (float64, float64) {
	return m.x, m.y
}

// constrainChain runs barriers -> constraint -> monitor clamp against a
// candidate (x,y), in place, relative to the seat's last committed
// position.
func (m *motionPipeline) constrainChain(x, y *float64) {
	oldX, oldY := m.x, m.y
	m.barriers.clamp(oldX, oldY, x, y)
	m.constraint.apply(oldX, oldY, x, y)
	m.monitorClamp(oldX, oldY, x, y)
}

// monitorClamp implements escape prevention : if the
// candidate leaves every view but the last committed position was inside
// one, clamp the candidate back into that view's interior.
func (m *motionPipeline) monitorClamp(oldX, oldY float64, x, y *float64) {
	if m.viewport == nil {
		return
	}
	if m.viewport.HitTest(*x, *y) >= 0 {
		return
	}
	idx := m.viewport.HitTest(oldX, oldY)
	if idx < 0 {
		return
	}
	v, _ := m.viewport.At(idx)
	x1, y1, x2, y2 := v.Bounds()
	*x = clampF(*x, float64(x1), float64(x2-1))
	*y = clampF(*y, float64(y1), float64(y2-1))
}

// absolute implements the absolute-motion algorithm : constrain (unless tablet), update the seat/device cached
// position, and return the final coordinates the caller should attach to
// the outbound MOTION event.
func (m *motionPipeline) absolute(dev *Device, isTablet bool, x, y float64) (finalX, finalY float64) {
	fx, fy := x, y
	if !isTablet {
		m.constrainChain(&fx, &fy)
		m.x, m.y = fx, fy
	}
	if dev != nil {
		dev.cachedX, dev.cachedY = fx, fy
	}
	return fx, fy
}

// warp is a direct absolute motion at time 0 to (x,y), bypassing no
// stage of the constrain chain (the caller is asserting the position
// authoritatively, same as any other non-tablet absolute motion).
func (m *motionPipeline) warp(x, y float64) (float64, float64) {
	return m.absolute(nil, false, x, y)
}

// relativeScale implements the cross-output relative-motion scaling
// algorithm : given the current position and a raw (dx,dy),
// returns the scaled (dx,dy) to apply as an absolute motion of
// (x+dx, y+dy).
func (m *motionPipeline) relativeScale(dx, dy float64) (float64, float64) {
	if m.stageViewsScaled || m.viewport == nil {
		return dx, dy
	}
	x, y := m.x, m.y
	idx := m.viewport.HitTest(x, y)
	if idx < 0 {
		return dx, dy
	}
	v, _ := m.viewport.At(idx)
	newDx := dx * v.Scale
	newDy := dy * v.Scale

	destIdx := m.viewport.HitTest(x+newDx, y+newDy)
	if destIdx == idx || destIdx < 0 {
		return newDx, newDy
	}

	curX, curY := x, y
	curIdx := idx
	remDx, remDy := newDx, newDy
	lastDir := dirNone

	for step := 0; step < maxBisectionSteps; step++ {
		view, ok := m.viewport.At(curIdx)
		if !ok {
			break
		}
		ix, iy, dir, crossed := intersectViewEdge(view, curX, curY, remDx, remDy, lastDir)
		if !crossed {
			curX += remDx
			curY += remDy
			remDx, remDy = 0, 0
			break
		}
		neighbor := m.viewport.Neighbor(curIdx, dir)
		if neighbor < 0 {
			curX, curY = ix, iy
			remDx, remDy = 0, 0
			break
		}
		restDx := (curX + remDx) - ix
		restDy := (curY + remDy) - iy
		nv, _ := m.viewport.At(neighbor)
		remDx = restDx * nv.Scale
		remDy = restDy * nv.Scale
		curX, curY = ix, iy
		curIdx = neighbor
		lastDir = directionOpposite(dir)
	}

	targetX := curX + remDx
	targetY := curY + remDy
	return targetX - x, targetY - y
}

// intersectViewEdge finds the first edge of view that segment
// (sx,sy)->(sx+dx,sy+dy) crosses, skipping the edge that lies in direction
// forbid (the edge the segment just entered through, so it never reverses
// straight back across the same boundary). Returns the
// crossing point, the crossed direction, and whether a crossing exists
// within the segment (t in (0,1]).
func intersectViewEdge(view View, sx, sy, dx, dy float64, forbid Direction) (ix, iy float64, dir Direction, ok bool) {
	x1, y1, x2, y2 := view.Bounds()
	bestT := 1.0000001
	found := false

	consider := func(t float64, d Direction, px, py float64) {
		if d == forbid {
			return
		}
		if t <= 0 || t > 1 {
			return
		}
		if t < bestT {
			bestT, ix, iy, dir, found = t, px, py, d, true
		}
	}

	if dx > 0 {
		t := (float64(x2) - sx) / dx
		consider(t, DirRight, float64(x2), sy+t*dy)
	} else if dx < 0 {
		t := (float64(x1) - sx) / dx
		consider(t, DirLeft, float64(x1), sy+t*dy)
	}
	if dy > 0 {
		t := (float64(y2) - sy) / dy
		consider(t, DirDown, sx+t*dx, float64(y2))
	} else if dy < 0 {
		t := (float64(y1) - sy) / dy
		consider(t, DirUp, sx+t*dx, float64(y1))
	}

	return ix, iy, dir, found
}
