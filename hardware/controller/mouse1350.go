package controller

// mouse1350 emulates the Koala/Trackball-style "joystick mouse": motion is
// converted to the same four direction switches a real joystick would
// close, so it plugs into an unmodified joystick port. Directly grounded on
// Mouse1350::execute in original_source/Core/Peripherals/Mouse/Mouse1350.cpp,
// including its 3-deep position latch pipeline used to smooth direction
// decisions across frames.
type mouse1350 struct {
	x, y           int
	latchedX       [3]int
	latchedY       [3]int
	controlBits    uint8
	rightButtonDown bool
	leftButtonDown  bool
}

// dividerX/dividerY scale host pixel motion down to the mouse's internal
// counter resolution; VirtualC64 uses the same two constants for both the
// 1350 and the NEOS mouse.
const (
	mouseDividerX = 64
	mouseDividerY = 64
)

func (m *mouse1350) execute(s MouseState) {
	m.x += s.DX
	m.y += s.DY
	m.rightButtonDown = s.RightButton
	m.leftButtonDown = s.LeftButton

	mouseX := m.x / mouseDividerX
	mouseY := m.y / mouseDividerY

	deltaX := float64(mouseX - m.latchedX[0])
	deltaY := float64(m.latchedY[0] - mouseY)
	absX, absY := abs(deltaX), abs(deltaY)
	max := absX
	if absY > max {
		max = absY
	}

	bits := uint8(0xff)
	if max > 0 {
		deltaX /= max
		deltaY /= max
		if deltaY < -0.5 {
			bits &^= 1 << 0 // up
		}
		if deltaY > 0.5 {
			bits &^= 1 << 1 // down
		}
		if deltaX < -0.5 {
			bits &^= 1 << 2 // left
		}
		if deltaX > 0.5 {
			bits &^= 1 << 3 // right
		}
	}
	m.controlBits = bits

	m.latchedX[0], m.latchedX[1] = m.latchedX[1], m.latchedX[2]
	m.latchedY[0], m.latchedY[1] = m.latchedY[1], m.latchedY[2]
	m.latchedX[2] = mouseX
	m.latchedY[2] = mouseY
}

// controlPort returns the direction bits plus the left button on bit 4, the
// same bit the joystick fire button occupies; the right button is read via
// POT X on a real 1350, not modelled here since this mouse is otherwise
// wired exactly like a joystick.
func (m *mouse1350) controlPort() uint8 {
	b := m.controlBits
	if m.leftButtonDown {
		b &^= 1 << 4
	}
	return b
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
