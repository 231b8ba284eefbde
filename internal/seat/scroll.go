package seat

import (
	"math"

	"github.com/bnema/seatengine/internal/inputevent"
)

// scrollAccumulator combines continuous scroll deltas into synthetic
// discrete steps (C13), built fresh in the style of the rest of the
// package (plain struct, explicit methods, no hidden goroutines).
type scrollAccumulator struct {
	accX, accY float64
}

func newScrollAccumulator() *scrollAccumulator {
	return &scrollAccumulator{}
}

// discreteCounts is the result of feeding one continuous axis event
// through the accumulator: how many emulated discrete steps to emit on
// each axis, and in which direction.
type discreteCounts struct {
	left, right int
	up, down int
}

// feedContinuous accumulates a continuous (finger/trackpad) scroll event
// and returns the discrete step counts to emit, A
// FINISHED axis resets its accumulator to zero and contributes no
// discrete events.
func (s *scrollAccumulator) feedContinuous(dx, dy float64, finishedX, finishedY bool) discreteCounts {
	if finishedX {
		s.accX = 0
	} else {
		s.accX += dx
	}
	if finishedY {
		s.accY = 0
	} else {
		s.accY += dy
	}

	var out discreteCounts
	if !finishedX {
		n := int(math.Floor(math.Abs(s.accX) / inputevent.DiscreteScrollStep))
		if n > 0 {
			if s.accX < 0 {
				out.left = n
			} else {
				out.right = n
			}
			s.accX = math.Mod(s.accX, inputevent.DiscreteScrollStep)
		}
	}
	if !finishedY {
		n := int(math.Floor(math.Abs(s.accY) / inputevent.DiscreteScrollStep))
		if n > 0 {
			if s.accY < 0 {
				out.up = n
			} else {
				out.down = n
			}
			s.accY = math.Mod(s.accY, inputevent.DiscreteScrollStep)
		}
	}
	return out
}

// smoothValue converts a raw continuous pixel delta to the SMOOTH event
// value (pixels/DISCRETE_STEP, ).
func smoothValue(pixels float64) float64 {
	return pixels / inputevent.DiscreteScrollStep
}

// reset clears both accumulators, used when a device generating scroll
// events is removed.
func (s *scrollAccumulator) reset() {
	s.accX, s.accY = 0, 0
}
