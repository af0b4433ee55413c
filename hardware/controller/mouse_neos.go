package controller

import "github.com/gopher64/gopher64/hardware/scheduler"

// neosMouse emulates the NEOS mouse's serial nibble protocol: the host
// strobes a control-port line (wired to CIA1's PA2/PB2 depending on port)
// and reads back, in sequence, the high and low nibbles of deltaX then
// deltaY on bits 0-3, with the left button on bit 4. Directly
// grounded on NeosMouse::{readControlPort,risingStrobe,fallingStrobe,
// latchPosition,updateControlPort} in original_source/Core/Peripherals/
// Mouse/NeosMouse.cpp.
type neosMouse struct {
	clock *scheduler.Clock

	leftButtonDown, rightButtonDown bool

	x, y           int
	latchedX       int
	latchedY       int
	deltaX, deltaY uint8

	state         int
	triggerCycle  int64
	strobe        bool
}

// neosTimeoutCycles is VICE's measured 232-cycle strobe timeout, after which
// an in-progress nibble sequence is abandoned and the state machine resets
// to X_HIGH with a freshly latched position.
const neosTimeoutCycles = 232

func (m *neosMouse) attachClock(clock *scheduler.Clock) { m.clock = clock }

// latch records a frame's motion/button sample; the actual X/Y deltas are
// computed lazily, in latchPosition, once the nibble sequence wraps back to
// X_HIGH (matching the original's targetX/targetY sampled at fallingStrobe
// time rather than at every host report).
func (m *neosMouse) latch(s MouseState) {
	m.x += s.DX
	m.y += s.DY
	m.leftButtonDown = s.LeftButton
	m.rightButtonDown = s.RightButton
	m.checkTimeout()
}

func (m *neosMouse) checkTimeout() {
	if m.clock == nil || m.state == 0 {
		return
	}
	if m.clock.Cycles() > m.triggerCycle+neosTimeoutCycles {
		m.state = 0
		m.latchPosition()
	}
}

func (m *neosMouse) latchPosition() {
	mouseX := m.x / mouseDividerX
	mouseY := m.y / mouseDividerY

	dx := clampI(m.latchedX-mouseX, -128, 127)
	dy := clampI(mouseY-m.latchedY, -128, 127)
	m.deltaX = uint8(dx)
	m.deltaY = uint8(dy)

	m.latchedX = mouseX
	m.latchedY = mouseY
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// strobeAction is driven by whichever CIA port bit the host DOS toggles to
// request the next nibble (the NEOS protocol's data-ready strobe); edges
// advance the X_HIGH -> X_LOW -> Y_HIGH -> Y_LOW -> X_HIGH cycle.
func (m *neosMouse) strobeAction(level bool) {
	rising := level && !m.strobe
	falling := !level && m.strobe
	m.strobe = level

	switch {
	case rising:
		switch m.state {
		case 0:
			m.state = 1
		case 2:
			m.state = 3
		}
	case falling:
		switch m.state {
		case 1:
			m.state = 2
		case 3:
			m.state = 0
			m.latchPosition()
		}
	}
	if m.clock != nil {
		m.triggerCycle = m.clock.Cycles()
	}
}

// controlPort packs the left button on bit 4 (active-low, the joystick fire
// line), reads bits 5-7 high, and puts the nibble selected by state on bits
// 0-3. The right button is not reported on this port.
func (m *neosMouse) controlPort() uint8 {
	result := uint8(0xf0)
	if m.leftButtonDown {
		result = 0xe0
	}

	switch m.state {
	case 0:
		result |= (m.deltaX >> 4) & 0x0f
	case 1:
		result |= m.deltaX & 0x0f
	case 2:
		result |= (m.deltaY >> 4) & 0x0f
	case 3:
		result |= m.deltaY & 0x0f
	}
	return result
}
