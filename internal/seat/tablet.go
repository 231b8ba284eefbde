package seat

import "github.com/bnema/seatengine/internal/inputevent"

// curvePoint is one control point of a piecewise-linear pressure curve
// mapping [0,1] -> [0,1].
type curvePoint struct{ in, out float64 }

// Tool is a cached tablet tool instance, identified by (serial, type)
// within a device so repeated proximity-in returns the same instance
//.
type Tool struct {
	Serial uint64
	Type inputevent.ToolType
	Caps inputevent.ToolCapability

	curve []curvePoint
	buttonCodes map[uint32]uint32 // hardware code remap table
}

// defaultCurve is the identity pressure curve.
func defaultCurve() []curvePoint {
	return []curvePoint{{0, 0}, {1, 1}}
}

func newTool(serial uint64, typ inputevent.ToolType, caps inputevent.ToolCapability) *Tool {
	return &Tool{Serial: serial, Type: typ, Caps: caps, curve: defaultCurve()}
}

// SetPressureCurve installs a piecewise-linear pressure curve, sorted by
// input ascending. A curve with fewer than 2 points falls back to
// identity.
func (t *Tool) SetPressureCurve(points [][2]float64) {
	if len(points) < 2 {
		t.curve = defaultCurve()
		return
	}
	cp := make([]curvePoint, len(points))
	for i, p := range points {
		cp[i] = curvePoint{in: p[0], out: p[1]}
	}
	t.curve = cp
}

// SetButtonCodeMap installs a per-tool hardware button-code remap table.
func (t *Tool) SetButtonCodeMap(m map[uint32]uint32) {
	t.buttonCodes = m
}

// applyPressure maps p through the tool's pressure curve via piecewise
// linear interpolation.
func (t *Tool) applyPressure(p float64) float64 {
	curve := t.curve
	if len(curve) < 2 {
		return p
	}
	if p <= curve[0].in {
		return curve[0].out
	}
	last := curve[len(curve)-1]
	if p >= last.in {
		return last.out
	}
	for i := 1; i < len(curve); i++ {
		a, b := curve[i-1], curve[i]
		if p <= b.in {
			if b.in == a.in {
				return b.out
			}
			frac := (p - a.in) / (b.in - a.in)
			return a.out + frac*(b.out-a.out)
		}
	}
	return p
}

// remapButton returns the hardware code to report for rawCode, and the
// logical button number (1..12) computed from the *original* rawCode
//.
func (t *Tool) remapButton(rawCode uint32, isTablet bool) (hwCode uint32, logical int, ok bool) {
	logical, ok = mapButtonCode(rawCode, isTablet)
	hwCode = rawCode
	if t.buttonCodes != nil {
		if remapped, exists := t.buttonCodes[rawCode]; exists {
			hwCode = remapped
		}
	}
	return hwCode, logical, ok
}

// toolKey identifies a Tool for caching purposes.
type toolKey struct {
	serial uint64
	typ inputevent.ToolType
}

// tabletToolState is the per-device tablet tool cache and lifecycle
// tracker (C10). Grounded on the original per-device handler map in
// internal/input/all_devices_capture.go (deviceHandler keyed by path),
// generalized from "one handler per physical device" to "one cached tool
// set per tablet device, keyed by (serial,type)".
type tabletToolState struct {
	tools map[toolKey]*Tool
	lastTool *Tool
}

func newTabletToolState() *tabletToolState {
	return &tabletToolState{tools: make(map[toolKey]*Tool)}
}

// proximityIn looks up or creates the tool for (serial,type), sets it as
// the last tool, and returns it.
func (s *tabletToolState) proximityIn(serial uint64, typ inputevent.ToolType, caps inputevent.ToolCapability) *Tool {
	key := toolKey{serial, typ}
	tool, ok := s.tools[key]
	if !ok {
		tool = newTool(serial, typ, caps)
		s.tools[key] = tool
	}
	s.lastTool = tool
	return tool
}

// proximityOut clears the last tool. Callers must emit PROXIMITY_OUT
// *before* calling this.
func (s *tabletToolState) proximityOut() {
	s.lastTool = nil
}

func (s *tabletToolState) current() *Tool {
	return s.lastTool
}

// buildAxisVector constructs the dense axis vector in the fixed order
// x, y, distance?, pressure?, tilt_x?, tilt_y?, rotation?, slider?,
// wheel?, including only axes the tool reports capable, with pressure
// passed through the tool's curve.
func buildAxisVector(tool *Tool, axes inputevent.TabletAxes) []float64 {
	out := []float64{axes.X, axes.Y}
	if tool == nil {
		return out
	}
	if tool.Caps&inputevent.ToolCapDistance != 0 && axes.HasDistance {
		out = append(out, axes.Distance)
	}
	if tool.Caps&inputevent.ToolCapPressure != 0 && axes.HasPressure {
		out = append(out, tool.applyPressure(axes.Pressure))
	}
	if tool.Caps&inputevent.ToolCapTilt != 0 && axes.HasTilt {
		out = append(out, axes.TiltX, axes.TiltY)
	}
	if tool.Caps&inputevent.ToolCapRotation != 0 && axes.HasRotation {
		out = append(out, axes.Rotation)
	}
	if tool.Caps&inputevent.ToolCapSlider != 0 && axes.HasSlider {
		out = append(out, axes.Slider)
	}
	if tool.Caps&inputevent.ToolCapWheel != 0 && axes.HasWheel {
		out = append(out, axes.Wheel)
	}
	return out
}
