package cia_test

import (
	"testing"

	"github.com/gopher64/gopher64/hardware/cia"
	"github.com/gopher64/gopher64/hardware/scheduler"
)

type fakeInterrupt struct {
	asserted int
	released int
}

func (f *fakeInterrupt) Assert()  { f.asserted++ }
func (f *fakeInterrupt) Release() { f.released++ }

func TestTimerAUnderflowRaisesInterrupt(t *testing.T) {
	clock := &scheduler.Clock{}
	irq := &fakeInterrupt{}
	c := cia.NewCIA(clock, irq)

	var lo, hi uint8 = 2, 0
	c.WriteTimerALatch(&lo, &hi)
	c.ForceLoadA()
	c.WriteIMR(0x81) // enable timer A interrupt
	c.StartTimerA(false)

	for i := 0; i < 3; i++ {
		c.Tick()
	}

	if irq.asserted == 0 {
		t.Fatalf("expected timer A underflow to assert the interrupt line")
	}

	icr := c.ReadICR()
	if icr&0x01 == 0 {
		t.Fatalf("expected ICR bit 0 set after timer A underflow, got %08b", icr)
	}
	if irq.released == 0 {
		t.Fatalf("expected reading ICR to release the interrupt line")
	}
	if second := c.ReadICR(); second != 0 {
		t.Fatalf("expected ICR to clear itself on read, got %08b", second)
	}
}

func TestTimerOneShotStopsAfterUnderflow(t *testing.T) {
	clock := &scheduler.Clock{}
	c := cia.NewCIA(clock, nil)

	var lo, hi uint8 = 1, 0
	c.WriteTimerALatch(&lo, &hi)
	c.ForceLoadA()
	c.StartTimerA(true)

	c.Tick()
	c.Tick()

	before := c.TimerACounter()
	c.Tick()
	if c.TimerACounter() != before {
		t.Fatalf("one-shot timer kept running after underflow")
	}
}

func TestTODIncrementsAndWrapsBCD(t *testing.T) {
	clock := &scheduler.Clock{}
	c := cia.NewCIA(clock, nil)

	c.WriteTOD(0, 0x09, false) // tenths = 9
	c.TickTOD()

	if got := c.ReadTOD(0); got != 0x00 {
		t.Fatalf("expected tenths to wrap to 0, got %#x", got)
	}
	if got := c.ReadTOD(1); got != 0x01 {
		t.Fatalf("expected seconds to carry to 1, got %#x", got)
	}
}

func TestTODLatchFreezesUntilTenthsRead(t *testing.T) {
	clock := &scheduler.Clock{}
	c := cia.NewCIA(clock, nil)

	c.WriteTOD(3, 0x05, false)
	_ = c.ReadTOD(3) // latches

	c.WriteTOD(3, 0x06, false)
	if got := c.ReadTOD(3); got != 0x05 {
		t.Fatalf("expected latched hours 0x05, got %#x", got)
	}

	_ = c.ReadTOD(0) // releases the latch
	if got := c.ReadTOD(3); got != 0x06 {
		t.Fatalf("expected live hours 0x06 after latch release, got %#x", got)
	}
}

func TestPortReadCombinesOutputAndExternalInput(t *testing.T) {
	p := &cia.Port{
		DDR:  0x0f, // low nibble output, high nibble input
		Data: 0x0a,
		External: func() uint8 {
			return 0xf0
		},
	}
	if got := p.Read(); got != 0xfa {
		t.Fatalf("expected combined port read 0xfa, got %#x", got)
	}
}
