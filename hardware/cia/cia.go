// Package cia implements the 6526 Complex Interface Adapter:
// two 16-bit timers, a BCD time-of-day clock, a serial shift register, and
// two 8-bit parallel ports. Two instances exist in a running machine, CIA1
// (keyboard/joysticks, driving the CPU IRQ line) and CIA2 (IEC/VIC
// bank/user port, driving NMI); Interrupt below abstracts which.
//
// The struct layout and sleep-state optimisation follow the CPU's
// cycleCallback-driven stepping used elsewhere in this module. Register
// writes take effect at once; scheduler.TimeDelayed is not used.
package cia

import (
	"github.com/gopher64/gopher64/hardware/scheduler"
)

// Interrupt is implemented by whatever line a CIA drives on IRQ assertion:
// the CPU's IRQ input for CIA1, its NMI input for CIA2.
type Interrupt interface {
	Assert()
	Release()
}

// Port is a single 8-bit parallel port: data direction register and output
// latch are owned by the CIA, but the actual pin state seen by a reader
// (keyboard matrix, joystick, IEC line) is resolved by External.
type Port struct {
	DDR  uint8
	Data uint8

	// External supplies the externally-driven bits (keyboard columns being
	// pulled low, joystick switches, IEC lines from other bus masters);
	// Read takes each input bit (DDR clear) from this and each output bit
	// from Data.
	External func() uint8

	// Notify, if set, is called with the port's new visible output
	// whenever Write changes it; devices that watch for edges on a port
	// line (the NEOS mouse's strobe, a disk drive's IEC handshake) attach
	// here instead of polling Data themselves.
	Notify func(data uint8)
}

// Read returns what a CPU read of this port's data register would see:
// output bits reflect Data, input bits reflect whatever External reports.
func (p *Port) Read() uint8 {
	ext := uint8(0xff)
	if p.External != nil {
		ext = p.External()
	}
	return (p.Data & p.DDR) | (ext &^ p.DDR)
}

// Write updates the port's output latch and notifies any attached watcher
// of the new visible output, the same value a subsequent Read would return.
func (p *Port) Write(data uint8) {
	p.Data = data
	if p.Notify != nil {
		p.Notify(p.Read())
	}
}

// timer is one of a CIA's two 16-bit down-counters.
type timer struct {
	latch   uint16
	counter uint16
	running bool
	oneShot bool
	irq     bool // this timer's bit in IMR
	underflowedThisCycle bool
}

func (t *timer) reload() {
	t.counter = t.latch
}

// tick decrements the counter by one if running, reporting whether it
// underflowed (reached zero) this cycle. On underflow the counter reloads
// from the latch unconditionally; oneShot additionally stops the timer.
func (t *timer) tick() bool {
	t.underflowedThisCycle = false
	if !t.running {
		return false
	}
	if t.counter == 0 {
		t.reload()
		t.underflowedThisCycle = true
		if t.oneShot {
			t.running = false
		}
		return true
	}
	t.counter--
	return false
}

// CIA is one 6526 instance.
type CIA struct {
	clock *scheduler.Clock
	irq   Interrupt

	PortA Port
	PortB Port

	timerA timer
	timerB timer

	// Serial shift register, driven by timer A in output mode.
	sdr      uint8
	sdrCount int

	// TOD: 24-hour BCD clock, latched on read of the hours register and
	// held until the tenths register is read.
	tod      [4]uint8 // tenths, seconds, minutes, hours (BCD)
	todLatch [4]uint8
	todLatched bool
	todAlarm [4]uint8
	todRunning bool

	icr uint8 // pending interrupt sources (read clears, and releases the line)
	imr uint8 // interrupt mask

	// cra/crb are the raw control-register bytes as last written, kept only
	// so a register read can echo them back; the bits that matter (start,
	// one-shot, force-load) are decoded and applied immediately on write.
	cra, crb uint8

	idleCounter int64
}

// NewCIA constructs a CIA wired to irq (the CPU line this instance drives).
func NewCIA(clock *scheduler.Clock, irq Interrupt) *CIA {
	c := &CIA{clock: clock, irq: irq}
	c.todRunning = true
	return c
}

// asleep reports whether both timers are stopped and the TOD is paused, the
// condition under which Tick can be skipped entirely in favour of bumping
// idleCounter. Since observable state
// cannot change while asleep, skipping produces byte-identical results to
// ticking cycle-by-cycle.
func (c *CIA) asleep() bool {
	return !c.timerA.running && !c.timerB.running && !c.todRunning
}

// Tick advances the CIA by one master cycle, or bumps idleCounter if the
// CIA is provably idle.
func (c *CIA) Tick() {
	if c.asleep() {
		c.idleCounter++
		return
	}

	if c.timerA.tick() {
		c.sdrShift()
		c.raise(1 << 0)
	}

	// timer B's "count timer A underflows" mode (CRB bit 6) is not decoded:
	// a running timer B always counts master cycles here. TickCascaded
	// steps it once more per call and, like this, only counts while timer
	// B is running.
	if c.timerB.tick() {
		c.raise(1 << 1)
	}
}

// TickCascaded steps timer B once, used when CRB selects "count timer A
// underflows" mode instead of the free-running master-cycle clock.
func (c *CIA) TickCascaded() {
	if c.timerB.tick() {
		c.raise(1 << 1)
	}
}

func (c *CIA) sdrShift() {
	if c.sdrCount > 0 {
		c.sdrCount--
		if c.sdrCount == 0 {
			c.raise(1 << 3)
		}
	}
}

// raise sets a bit in ICR and, if its corresponding IMR bit is enabled,
// asserts the interrupt line (bit 7 of ICR, the "any interrupt occurred"
// summary bit, latches at the same time).
func (c *CIA) raise(bit uint8) {
	c.icr |= bit
	if c.imr&bit != 0 {
		c.icr |= 0x80
		if c.irq != nil {
			c.irq.Assert()
		}
	}
}

// ReadICR returns the pending interrupt sources and, per the 6526 spec,
// clears ICR and releases the interrupt line as a side effect of the read.
func (c *CIA) ReadICR() uint8 {
	v := c.icr
	c.icr = 0
	if c.irq != nil {
		c.irq.Release()
	}
	return v
}

// WriteIMR writes the interrupt mask register using the 6526's set/clear
// convention: bit 7 of data selects whether the other bits are ORed into
// (1) or ANDed out of (0) the current mask.
func (c *CIA) WriteIMR(data uint8) {
	if data&0x80 != 0 {
		c.imr |= data &^ 0x80
	} else {
		c.imr &^= data
	}
}

// StartTimerA/StartTimerB/StopTimerA/StopTimerB control the two timers'
// running state from the CRA/CRB register writes.
func (c *CIA) StartTimerA(oneShot bool) {
	c.timerA.running = true
	c.timerA.oneShot = oneShot
}

func (c *CIA) StopTimerA() { c.timerA.running = false }

func (c *CIA) StartTimerB(oneShot bool) {
	c.timerB.running = true
	c.timerB.oneShot = oneShot
}

func (c *CIA) StopTimerB() { c.timerB.running = false }

// WriteTimerALatch/WriteTimerBLatch update the reload latch; ForceLoad
// additionally copies the latch into the live counter immediately (the
// 6526's "force load" strobe).
func (c *CIA) WriteTimerALatch(lo, hi *uint8) {
	if lo != nil {
		c.timerA.latch = (c.timerA.latch & 0xff00) | uint16(*lo)
	}
	if hi != nil {
		c.timerA.latch = (c.timerA.latch & 0x00ff) | uint16(*hi)<<8
	}
}

func (c *CIA) WriteTimerBLatch(lo, hi *uint8) {
	if lo != nil {
		c.timerB.latch = (c.timerB.latch & 0xff00) | uint16(*lo)
	}
	if hi != nil {
		c.timerB.latch = (c.timerB.latch & 0x00ff) | uint16(*hi)<<8
	}
}

func (c *CIA) ForceLoadA() { c.timerA.reload() }
func (c *CIA) ForceLoadB() { c.timerB.reload() }

func (c *CIA) TimerACounter() uint16 { return c.timerA.counter }
func (c *CIA) TimerBCounter() uint16 { return c.timerB.counter }

// ReadTOD returns the latched (frozen) value of register index i (0=tenths,
// 1=seconds, 2=minutes, 3=hours) if a latch is active, else the live value.
// Reading the hours register (index 3) freezes the latch; reading tenths
// (index 0) releases it, per the 6526's documented TOD read sequence.
func (c *CIA) ReadTOD(i int) uint8 {
	if i == 3 && !c.todLatched {
		c.todLatch = c.tod
		c.todLatched = true
	}
	v := c.tod[i]
	if c.todLatched {
		v = c.todLatch[i]
	}
	if i == 0 {
		c.todLatched = false
	}
	return v
}

// WriteTOD sets register index i directly (used to set the clock or, when
// CRB bit 7 is set, the alarm).
func (c *CIA) WriteTOD(i int, value uint8, alarm bool) {
	if alarm {
		c.todAlarm[i] = value
		return
	}
	c.tod[i] = value
	if i == 3 {
		c.todRunning = true
	}
}

// TickTOD advances the tenths-of-a-second counter by one; the owner calls
// it ten times per emulated second rather than every master cycle. The
// CRA bit 7 power-line frequency selection is not consulted.
func (c *CIA) TickTOD() {
	if !c.todRunning {
		return
	}
	c.tod[0] = bcdIncrement(c.tod[0], 10)
	if c.tod[0] != 0 {
		return
	}
	c.tod[1] = bcdIncrement(c.tod[1], 60)
	if c.tod[1] != 0 {
		return
	}
	c.tod[2] = bcdIncrement(c.tod[2], 60)
	if c.tod[2] != 0 {
		return
	}
	c.tod[3] = bcdIncrement(c.tod[3], 24)

	if c.tod == c.todAlarm {
		c.raise(1 << 2)
	}
}

// bcdIncrement increments a BCD-encoded value, wrapping to zero at limit
// (given in decimal) and carrying the tens digit correctly.
func bcdIncrement(v uint8, limit uint8) uint8 {
	lo := v & 0x0f
	hi := v >> 4
	lo++
	if lo == 10 {
		lo = 0
		hi++
	}
	dec := hi*10 + lo
	if dec >= limit {
		return 0
	}
	return hi<<4 | lo
}
