package hardware

import (
	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/cia"
	"github.com/gopher64/gopher64/hardware/clocks"
	"github.com/gopher64/gopher64/hardware/controller"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/drive"
	"github.com/gopher64/gopher64/hardware/iec"
	"github.com/gopher64/gopher64/hardware/memory/cartridge"
	"github.com/gopher64/gopher64/hardware/memory/cpubus"
	"github.com/gopher64/gopher64/hardware/memory/memmap"
	"github.com/gopher64/gopher64/hardware/scheduler"
	"github.com/gopher64/gopher64/hardware/sidbridge"
	"github.com/gopher64/gopher64/hardware/vic"
)

// IRQ/NMI source bits, passed to cpu.CPU.IRQLine/NMILine so each source can
// hold its line without one source's Release() dropping another's.
const (
	irqCIA1 = 1 << 0
	irqVIC  = 1 << 1
	irqCart = 1 << 2 // the cartridge port's own IRQ line (REU end-of-block)

	nmiCIA2 = 1 << 0
	nmiCart = 1 << 1 // the cartridge port freeze button
)

// driveWakeFrames is how long WakeDrive keeps a drive out of its idle
// power-save state after an IEC line change, one second at the 50Hz frame
// rate this module treats as the nominal cadence regardless of region.
const driveWakeFrames = 50

// busGrant adapts vic.BusGrant onto the CPU's RdyFlg: held BA stalls the
// CPU from starting its next instruction, the coarse, instruction-boundary
// approximation of RDY noted where IRQ/NMI sampling makes the same
// trade-off (see cpu.CPU.ExecuteInstruction).
type busGrant struct {
	cpu *cpu.CPU
}

func (b *busGrant) SetBA(held bool) { b.cpu.RdyFlg = !held }

// driveSlot tracks one drive's independent, slightly-faster clock against
// the shared master cycle count: credit accumulates by driveRatio every
// master cycle and is spent in whole ExecuteInstruction calls, each of
// which reports how many drive cycles it actually consumed.
type driveSlot struct {
	drive  *drive.Drive
	credit float64
}

// C64 is the root of the emulation: every sub-system reachable from here is
// wired together once, in New, and then stepped one 6510 instruction at a
// time via Step. Sub-systems with their own per-cycle timing (the VIC-II's
// raster pipeline, both CIAs' timers, the IEC bus, the two drives' own
// CPUs) advance from inside the CPU's cycle callback rather than from Step
// itself, so that the number of times they tick always matches the number
// of bus cycles the current instruction actually takes.
type C64 struct {
	env    *environment.Environment
	region string

	Clock *scheduler.Clock
	Mem    *memmap.Router
	CPU    *cpu.CPU

	CIA1 *cia.CIA
	CIA2 *cia.CIA
	VIC  *vic.VIC
	SID  *sidbridge.Bridge
	Cart *cartridge.Cartridge

	IEC    *iec.Bus
	Drive8 *drive.Drive
	Drive9 *drive.Drive

	Port1 *controller.Port
	Port2 *controller.Port

	bus       *busGrant
	io        *ioBus
	colour    [1024]byte
	cartNMI   cpu.Interrupt
	cartIRQ   cpu.Interrupt
	drive8Slot driveSlot
	drive9Slot driveSlot
	driveRatio float64

	todAccum       int64
	cyclesPerTenth int64

	lastRaster int
}

// New constructs a fully wired machine for the given region ("PAL", "NTSC",
// "NTSC_R56A"); ROM images and a cartridge are loaded separately via
// LoadBasicROM/LoadKernalROM/LoadCharROM/LoadDriveROM/AttachCartridge.
func New(env *environment.Environment, region string) (*C64, error) {
	m := &C64{env: env, region: region}

	m.Clock = &scheduler.Clock{}
	m.Cart = cartridge.NewCartridge(env)
	m.Mem = memmap.NewRouter(m.Cart)

	m.CPU = cpu.NewCPU(env, m.Mem)
	m.CPU.AttachPort(m.Mem)

	m.CIA1 = cia.NewCIA(m.Clock, m.CPU.IRQLine(irqCIA1))
	m.CIA2 = cia.NewCIA(m.Clock, m.CPU.NMILine(nmiCIA2))
	m.cartNMI = m.CPU.NMILine(nmiCart)
	m.cartIRQ = m.CPU.IRQLine(irqCart)

	m.bus = &busGrant{cpu: m.CPU}
	m.VIC = vic.NewVIC(env, m.CPU.IRQLine(irqVIC), m.bus, region)

	m.SID = sidbridge.NewBridge(nil)

	m.io = &ioBus{vic: m.VIC, sid: m.SID, cia1: m.CIA1, cia2: m.CIA2, colour: &m.colour}
	m.Mem.AttachIO(m.io)

	m.Drive8 = drive.NewDrive(env, 8)
	m.Drive9 = drive.NewDrive(env, 9)
	m.drive8Slot = driveSlot{drive: m.Drive8}
	m.drive9Slot = driveSlot{drive: m.Drive9}

	m.IEC = iec.NewBus(m)
	m.IEC.Drive8.Connected = true
	m.IEC.Drive8.On = true
	m.IEC.Drive9.Connected = true
	m.IEC.Drive9.On = true

	m.Drive8.IECWireBus(func() bool { return m.IEC.Atn }, func() bool { return m.IEC.Clk }, func() bool { return m.IEC.Data })
	m.Drive9.IECWireBus(func() bool { return m.IEC.Atn }, func() bool { return m.IEC.Clk }, func() bool { return m.IEC.Data })

	m.wireCIA2()

	m.Port1 = &controller.Port{}
	m.Port2 = &controller.Port{}
	// spec.md: "joystick port 1 is multiplexed on port A, joystick port 2
	// on port B"
	m.Port1.AttachPortA(m.CIA1)
	m.Port2.AttachPortB(m.CIA1)
	m.Port1.AttachClock(m.Clock)
	m.Port2.AttachClock(m.Clock)
	m.SID.AttachPotSource(m.potX, m.potY)

	hz := regionHz(region)
	m.driveRatio = clocks.DriveHz / hz
	m.cyclesPerTenth = int64(hz / 10)

	if err := m.Reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// wireCIA2 attaches CIA2 port A: bits 0-1 select the VIC's 16K bank, bits
// 3-5 drive ATN/CLK/DATA onto the IEC bus, bits 6-7 read CLK IN/DATA IN
// back. Grounded on original_source/Emulator/LogicBoard/IEC.cpp's
// updateIecLinesC64Side, which decodes the identical bit layout from
// cia2.getPA().
func (m *C64) wireCIA2() {
	m.CIA2.PortA.External = func() uint8 {
		var b uint8 = 0xff
		if m.IEC.Clk {
			b &^= 0x40
		}
		if m.IEC.Data {
			b &^= 0x80
		}
		return b
	}
	m.CIA2.PortA.Notify = func(data uint8) {
		m.VIC.SetBank(data & 0x03)
		m.IEC.CIA.Atn = data&0x08 != 0
		m.IEC.CIA.Clk = data&0x10 != 0
		m.IEC.CIA.Data = data&0x20 != 0
		m.IEC.Recompute()
	}
}

// potX/potY back sidbridge's POTX/POTY registers from whichever control
// port has a 1351 mouse selected; CIA1 PRA bits 6-7 normally select which
// port's paddles are connected, a selection this emulation simplifies away
// by preferring port 2 whenever it carries a 1351, matching the common case
// of a single mouse on port 2.
func (m *C64) potX() uint8 {
	if m.Port2.Kind == controller.Mouse1351 {
		return m.Port2.PotX()
	}
	return m.Port1.PotX()
}

func (m *C64) potY() uint8 {
	if m.Port2.Kind == controller.Mouse1351 {
		return m.Port2.PotY()
	}
	return m.Port1.PotY()
}

func regionHz(region string) float64 {
	switch region {
	case "NTSC", "NTSC_R56A":
		return clocks.NTSC
	default:
		return clocks.PAL
	}
}

// LoadBasicROM/LoadKernalROM/LoadCharROM install the fixed ROM images.
func (m *C64) LoadBasicROM(data []byte)  { copy(m.Mem.ROM.Basic[:], data) }
func (m *C64) LoadKernalROM(data []byte) { copy(m.Mem.ROM.Kernal[:], data) }
func (m *C64) LoadCharROM(data []byte)   { copy(m.Mem.ROM.Char[:], data) }

// LoadDriveROM installs the 1541 DOS ROM image for drive unit (8 or 9).
func (m *C64) LoadDriveROM(unit int, data []byte) {
	switch unit {
	case 8:
		m.Drive8.LoadROM(data)
	case 9:
		m.Drive9.LoadROM(data)
	}
}

// AttachCartridge loads a cartridge image and rebuilds the memory map's
// bank-switching tables from the cartridge's /GAME and /EXROM lines.
func (m *C64) AttachCartridge(t cartridge.CartridgeType, filename, shortname, hash string, banks [][]byte) error {
	if err := m.Cart.Attach(t, filename, shortname, hash, banks); err != nil {
		return err
	}
	m.recomputeMap()
	return nil
}

// EjectCartridge removes whatever cartridge is attached.
func (m *C64) EjectCartridge() {
	m.Cart.Eject()
	m.recomputeMap()
}

// recomputeMap forces the router to rebuild its tables against the
// cartridge's current /GAME and /EXROM lines by re-writing the CPU's I/O
// port with its own current value, the same write path a program's own
// bank-switch write takes.
func (m *C64) recomputeMap() {
	m.CPU.WritePort(0x0001, m.CPU.ReadPort(0x0001))
}

// Freeze/Unfreeze model the cartridge port's freeze button (Action
// Replay/Final Cartridge style): the cartridge forces a known bank/mode and
// the NMI line is pulled for as long as the button is held.
func (m *C64) Freeze() {
	m.Cart.FreezePressed()
	m.cartNMI.Assert()
}

func (m *C64) Unfreeze() {
	m.Cart.FreezeReleased()
	m.cartNMI.Release()
}

// SetDriveConnected attaches or detaches drive unit (8 or 9) from the IEC
// bus without powering it down; a detached drive no longer participates in
// the bus's wired-AND computation.
func (m *C64) SetDriveConnected(unit int, connected bool) {
	switch unit {
	case 8:
		m.IEC.Drive8.Connected = connected
	case 9:
		m.IEC.Drive9.Connected = connected
	}
}

// Reset reinitialises the main CPU and both drives' CPUs and loads each
// from its reset vector; the cartridge's own reset hook re-initialises
// mapper-specific volatile state (bank, RAM) first, since some mappers
// force a particular bank on reset that the vector fetch itself depends on.
func (m *C64) Reset() error {
	m.Cart.Reset()

	// CPU.Reset() ends by recomputing the router's tables from the port's
	// reset-default state, so no separate recomputeMap() call is needed
	// here the way AttachCartridge/EjectCartridge need one mid-session.
	m.CPU.Reset()
	if err := m.CPU.LoadPCIndirect(cpubus.Reset); err != nil {
		return err
	}

	for _, d := range [...]*drive.Drive{m.Drive8, m.Drive9} {
		d.CPU.Reset()
		if err := d.CPU.LoadPCIndirect(cpubus.Reset); err != nil {
			return err
		}
	}

	return nil
}

// Step executes one 6510 instruction, stepping every other chip the number
// of master cycles that instruction actually takes via cycleCallback.
func (m *C64) Step() error {
	return m.CPU.ExecuteInstruction(m.cycleCallback)
}

// cycleCallback runs once per master cycle spent inside the current CPU
// instruction (including the single stalled cycle RdyFlg-false produces):
// it steps the VIC-II's raster pipeline, ticks both CIAs, recomputes and
// ticks the IEC bus, advances whichever drives aren't idle, and finally
// advances the master clock itself.
func (m *C64) cycleCallback() error {
	m.VIC.Step()
	m.CIA1.Tick()
	m.CIA2.Tick()

	if m.Cart.Execute(m.Mem.RAM[:]) {
		m.cartIRQ.Assert()
	} else {
		m.cartIRQ.Release()
	}

	m.recomputeIEC()
	m.IEC.Tick()

	if err := m.advanceDrives(); err != nil {
		return err
	}

	m.checkFrameBoundary()

	m.todAccum++
	if m.todAccum >= m.cyclesPerTenth {
		m.todAccum = 0
		m.CIA1.TickTOD()
		m.CIA2.TickTOD()
	}

	m.Clock.Tick()
	return nil
}

// checkFrameBoundary detects the VIC raster counter wrapping back to line
// 0 (there's no dedicated frame-complete signal to hook) and, on each such
// wrap, advances both drives' disk-change state machines and idle-power
// watchdogs by one step, the once-per-frame cadence spec.md's drive
// power-save and disk-insertion sequencing call for.
func (m *C64) checkFrameBoundary() {
	raster := m.VIC.Raster()
	if raster < m.lastRaster {
		m.Drive8.AdvanceDiskChange()
		m.Drive9.AdvanceDiskChange()
		m.Drive8.TickIdleWatchdog()
		m.Drive9.TickIdleWatchdog()
	}
	m.lastRaster = raster
}

// recomputeIEC reads both drives' current serial-port output bits and
// folds them into the bus's peer state, then asks the bus to recompute the
// wired-AND line values (and notify any resulting edges).
func (m *C64) recomputeIEC() {
	atn8, clk8, data8 := m.Drive8.IECOutput()
	m.IEC.Drive8.Atn, m.IEC.Drive8.Clk, m.IEC.Drive8.Data = atn8, clk8, data8

	atn9, clk9, data9 := m.Drive9.IECOutput()
	m.IEC.Drive9.Atn, m.IEC.Drive9.Clk, m.IEC.Drive9.Data = atn9, clk9, data9

	m.IEC.Recompute()
}

// advanceDrives spends each idle drive's accumulated cycle credit (its
// clock runs independently of, and slightly faster than, the main
// machine's) in whole ExecuteInstruction calls.
func (m *C64) advanceDrives() error {
	for _, s := range [...]*driveSlot{&m.drive8Slot, &m.drive9Slot} {
		if s.drive.IsIdle() {
			continue
		}
		s.credit += m.driveRatio
		for s.credit >= 1 {
			if err := s.drive.ExecuteInstruction(); err != nil {
				return err
			}
			spent := s.drive.CPU.LastResult.Cycles
			if spent <= 0 {
				spent = 1
			}
			s.credit -= float64(spent)
		}
	}
	return nil
}

// BusIdle implements iec.Notifier; nothing currently observes bus-idle
// transitions outside the bus's own busy/idle bookkeeping.
func (m *C64) BusIdle() {}

// WakeDrive implements iec.Notifier, resetting unit's idle power-save
// countdown whenever a bus line changes under it.
func (m *C64) WakeDrive(unit int) {
	switch unit {
	case 8:
		m.Drive8.WakeUp(driveWakeFrames)
	case 9:
		m.Drive9.WakeUp(driveWakeFrames)
	}
}

// ATNEdge implements iec.Notifier, delivering an ATN transition to the
// named drive's VIA1 CA1 input.
func (m *C64) ATNEdge(unit int, asserted bool) {
	switch unit {
	case 8:
		m.Drive8.IECAtnEdge(asserted)
	case 9:
		m.Drive9.IECAtnEdge(asserted)
	}
}
