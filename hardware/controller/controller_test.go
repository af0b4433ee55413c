package controller_test

import (
	"testing"

	"github.com/gopher64/gopher64/hardware/cia"
	"github.com/gopher64/gopher64/hardware/controller"
	"github.com/gopher64/gopher64/hardware/scheduler"
)

func TestJoystickBitsActiveLow(t *testing.T) {
	p := &controller.Port{Kind: controller.Joystick}
	p.Joystick = controller.JoystickState{Up: true, Fire: true}

	bits := p.Bits()
	if bits&0x01 != 0 {
		t.Fatalf("expected up bit clear, got %08b", bits)
	}
	if bits&0x10 != 0 {
		t.Fatalf("expected fire bit clear, got %08b", bits)
	}
	if bits&0x0c != 0x0c {
		t.Fatalf("expected left/right bits set (not pressed), got %08b", bits)
	}
}

func TestAttachPortAWiresExternal(t *testing.T) {
	clock := &scheduler.Clock{}
	irq := noopInterrupt{}
	cia1 := cia.NewCIA(clock, irq)

	p := &controller.Port{Kind: controller.Joystick}
	p.AttachPortA(cia1)

	p.Joystick.Down = true
	if cia1.PortA.Read()&0x02 != 0 {
		t.Fatalf("expected CIA1 port A to reflect the joystick's down bit")
	}
}

func TestAutofireTogglesAtFrequency(t *testing.T) {
	a := &controller.Autofire{FrequencyHz: 25, Bullets: -1}

	fired := false
	for i := 0; i < 10; i++ {
		if a.Tick(true) {
			fired = true
		}
	}
	if !fired {
		t.Fatalf("expected autofire to pulse the fire line within 10 frames at 25Hz/50fps")
	}
}

func TestAutofireStopsWhenReleased(t *testing.T) {
	a := &controller.Autofire{FrequencyHz: 25, Bullets: -1}
	a.Tick(true)
	if a.Tick(false) {
		t.Fatalf("expected releasing the button to stop autofire immediately")
	}
}

func TestMouse1350ReportsDirectionFromMotion(t *testing.T) {
	p := &controller.Port{Kind: controller.Mouse1350}
	for i := 0; i < 4; i++ {
		p.SetMouse(controller.MouseState{DX: 200, DY: 0})
	}
	if p.Bits()&0x08 != 0 {
		t.Fatalf("expected rightward motion to clear the right bit, got %08b", p.Bits())
	}
}

func TestMouse1350LeftButtonOnBit4(t *testing.T) {
	p := &controller.Port{Kind: controller.Mouse1350}
	p.SetMouse(controller.MouseState{LeftButton: true})
	if p.Bits()&0x10 != 0 {
		t.Fatalf("expected left button to clear bit 4, got %08b", p.Bits())
	}
}

func TestNeosMouseStepsThroughNibbleSequence(t *testing.T) {
	clock := &scheduler.Clock{}
	p := &controller.Port{Kind: controller.MouseNEOS}
	p.AttachClock(clock)

	beforeMotion := p.Bits() & 0x0f

	p.SetMouse(controller.MouseState{DX: 300, DY: -100})

	cia1 := cia.NewCIA(clock, noopInterrupt{})
	p.AttachPortB(cia1)
	cia1.PortB.DDR = 0xff

	// one full lap of the nibble sequence (X_HIGH -> X_LOW -> Y_HIGH ->
	// Y_LOW -> X_HIGH) latches the accumulated motion into deltaX/deltaY.
	cia1.PortB.Write(0x04) // rising: state 0 -> 1
	cia1.PortB.Write(0x00) // falling: state 1 -> 2
	cia1.PortB.Write(0x04) // rising: state 2 -> 3
	cia1.PortB.Write(0x00) // falling: state 3 -> 0, latches position

	afterMotion := p.Bits() & 0x0f
	if beforeMotion == afterMotion {
		t.Fatalf("expected a full strobe lap to latch the reported motion into the X_HIGH nibble")
	}
}

func TestMouse1351PotBitsStayInRange(t *testing.T) {
	p := &controller.Port{Kind: controller.Mouse1351}
	for i := 0; i < 50; i++ {
		p.SetMouse(controller.MouseState{DX: 5000, DY: -5000})
	}
	if p.PotX() == 0 || p.PotX() == 0xff {
		t.Fatalf("expected POT X to stay within the mouse's 6-bit encoding, got %#x", p.PotX())
	}
}

type noopInterrupt struct{}

func (noopInterrupt) Assert()  {}
func (noopInterrupt) Release() {}
