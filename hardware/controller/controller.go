// Package controller implements the two control ports: joystick and the
// three mouse protocols the original hardware recognised (1350, 1351,
// NEOS). Ports are driven purely by the discrete state the host supplies
// each frame (joystick switches, mouse dx/dy/buttons) rather than by
// binding to any OS input device directly, matching the external controller
// API this module exposes rather than the teacher's direct OS-HID binding.
package controller

import (
	"github.com/gopher64/gopher64/hardware/cia"
	"github.com/gopher64/gopher64/hardware/scheduler"
)

// neosStrobeBit is the port line the NEOS mouse's DOS driver toggles to
// request the next nibble, the same physical pin a joystick's "left"
// switch would pull low.
const neosStrobeBit = 1 << 2

// DeviceKind selects what, if anything, is plugged into a control port.
type DeviceKind int

const (
	None DeviceKind = iota
	Joystick
	Mouse1350
	Mouse1351
	MouseNEOS
)

// JoystickState is the digital switch state of a joystick, active-high in
// this struct (Bits() below inverts to the port's active-low convention).
type JoystickState struct {
	Up, Down, Left, Right, Fire bool
}

// MouseState is the relative motion and button state a host reports once
// per frame for whichever mouse protocol is selected; DX/DY are host pixel
// deltas since the last report, not yet scaled to the drive-specific
// counters each protocol below keeps.
type MouseState struct {
	DX, DY                  int
	LeftButton, RightButton bool
}

// framesPerSecond assumes PAL's 50Hz frame rate, the region spec.md treats
// as the default; autofire is specified purely in Hz so NTSC ports simply
// run the same toggle rate against a different frame cadence.
const framesPerSecond = 50.0

// Autofire toggles the fire bit at a fixed frequency while held, grounded
// on the teacher's own joystick autofire feature and on preferences.
// Preferences' AutofireFrequency/AutofireBullets fields.
type Autofire struct {
	FrequencyHz float64
	Bullets     int // -1 means infinite

	firing      bool
	on          bool
	framesLeft  float64
	bulletsLeft int
}

// Tick advances the autofire state machine by one frame and returns
// whether the fire line should be held low this frame. held is the
// instantaneous (non-autofire) button state; autofire only engages while
// held and stops once Bullets have been fired.
func (a *Autofire) Tick(held bool) bool {
	if a.FrequencyHz <= 0 || !held {
		a.firing = false
		a.on = false
		a.framesLeft = 0
		return held
	}
	if !a.firing {
		a.firing = true
		a.framesLeft = framesPerSecond / (a.FrequencyHz * 2)
		a.bulletsLeft = a.Bullets
	}
	if a.bulletsLeft == 0 {
		return false
	}
	a.framesLeft--
	if a.framesLeft <= 0 {
		a.framesLeft = framesPerSecond / (a.FrequencyHz * 2)
		a.on = !a.on
		if !a.on && a.bulletsLeft > 0 {
			a.bulletsLeft--
		}
	}
	return a.on
}

// Port is one of the C64's two control ports. Exactly one of the device
// implementations below is live at a time, selected by Kind.
type Port struct {
	Kind DeviceKind

	Joystick JoystickState
	Autofire Autofire

	mouse1350 mouse1350
	mouseNeos neosMouse
	mouse1351 mouse1351
}

// Tick advances whatever per-frame state the selected device needs; only
// the joystick's autofire has any (the NEOS strobe timeout is checked by
// SetMouse instead). Call once per emulated frame regardless of which
// device is plugged in.
func (p *Port) Tick() {
	if p.Kind == Joystick {
		p.Joystick.Fire = p.Autofire.Tick(p.Joystick.Fire)
	}
}

// SetMouse feeds a frame's worth of relative mouse motion and button state
// to whichever mouse protocol is selected; a no-op if Kind isn't a mouse.
func (p *Port) SetMouse(m MouseState) {
	switch p.Kind {
	case Mouse1350:
		p.mouse1350.execute(m)
	case MouseNEOS:
		p.mouseNeos.latch(m)
	case Mouse1351:
		p.mouse1351.execute(m)
	}
}

// Bits returns the byte this port drives onto its half of CIA1's parallel
// ports (active-low: a clear bit means the switch is closed / the line is
// pulled down), the value External on the attached cia.Port resolves reads
// against.
func (p *Port) Bits() uint8 {
	switch p.Kind {
	case Joystick:
		return joystickBits(p.Joystick)
	case Mouse1350:
		return p.mouse1350.controlPort()
	case MouseNEOS:
		return p.mouseNeos.controlPort()
	case Mouse1351:
		return p.mouse1351.controlPort()
	default:
		return 0xff
	}
}

// PotX/PotY report the port's analog POT pins, read through SID's POTX/
// POTY registers (CIA1 port A bits 6-7 select which port's paddles are
// connected); only Mouse1351 drives these with anything but a floating 0xff.
func (p *Port) PotX() uint8 {
	if p.Kind == Mouse1351 {
		return p.mouse1351.potX()
	}
	return 0xff
}

func (p *Port) PotY() uint8 {
	if p.Kind == Mouse1351 {
		return p.mouse1351.potY()
	}
	return 0xff
}

// joystickBits packs {up,down,left,right,fire} onto bits 0-4, active-low,
// matching CIA1 port A/B's joystick wiring (spec.md: "Port A of CIA1:
// keyboard matrix columns... joystick port 1 is multiplexed on port A").
func joystickBits(s JoystickState) uint8 {
	b := uint8(0xff)
	if s.Up {
		b &^= 1 << 0
	}
	if s.Down {
		b &^= 1 << 1
	}
	if s.Left {
		b &^= 1 << 2
	}
	if s.Right {
		b &^= 1 << 3
	}
	if s.Fire {
		b &^= 1 << 4
	}
	return b
}

// AttachPortA wires p as the device driving CIA1's port A (control port 1).
func (p *Port) AttachPortA(cia1 *cia.CIA) {
	cia1.PortA.External = p.Bits
	cia1.PortA.Notify = p.notifyWrite
}

// AttachPortB wires p as the device driving CIA1's port B (control port 2).
func (p *Port) AttachPortB(cia1 *cia.CIA) {
	cia1.PortB.External = p.Bits
	cia1.PortB.Notify = p.notifyWrite
}

// AttachClock gives the port access to the master cycle count, needed only
// by the NEOS mouse's strobe-timeout detection.
func (p *Port) AttachClock(clock *scheduler.Clock) { p.mouseNeos.attachClock(clock) }

// notifyWrite is called whenever the CPU writes the port this device is
// attached to; only the NEOS mouse cares, watching the strobe bit for edges.
func (p *Port) notifyWrite(data uint8) {
	if p.Kind == MouseNEOS {
		p.mouseNeos.strobeAction(data&neosStrobeBit != 0)
	}
}
