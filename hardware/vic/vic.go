// Package vic implements the VIC-II raster/DMA pipeline: the
// per-scanline cycle dispatch table, the badline rule that steals the CPU
// bus for character fetches, and raster-compare interrupts. Sprite
// registers and a per-sprite shift step exist, but no sprite DMA runs:
// nothing sets a sprite's dmaActive or calls stepSprite, and sprites never
// take bus cycles. Register writes take effect at once; no delayed-register
// pipeline is used.
package vic

import (
	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/clocks"
)

// Interrupt is the CPU's IRQ line, asserted when a raster/sprite event with
// its IMR bit set occurs.
type Interrupt interface {
	Assert()
	Release()
}

// BusGrant is consulted by the CPU to decide whether it may use the bus
// this cycle; the VIC holds BA for the 40 cycles of a badline, starting at
// the line's first cycle, with no lead of three cycles before the fetches.
type BusGrant interface {
	// SetBA asserts (low=false granted, true=BA asserted/CPU must stall
	// once RDY catches up) the bus-available line.
	SetBA(held bool)
}

// Sprite holds one of the eight hardware sprites' registers and live
// shift-pipeline state.
type Sprite struct {
	X, Y           int
	Color          uint8
	Multicolor     bool
	ExpandX, ExpandY bool
	Enabled        bool
	Priority       bool // true: behind background

	shiftReg   uint32
	expandFlip bool
	mcFlip     bool
	dmaActive  bool
}

// VIC is one VIC-II instance (6567 NTSC or 6569 PAL).
type VIC struct {
	env   *environment.Environment
	irq   Interrupt
	bus   BusGrant

	region     string // "PAL", "NTSC", "NTSC_R56A"
	cyclesPerLine int
	scanlinesPerFrame int

	raster    int
	cycle     int

	// control registers
	ctrl1   uint8 // $D011: RST8, ECM, BMM, DEN, RSEL, YSCROLL
	ctrl2   uint8 // $D016: RES, MCM, CSEL, XSCROLL
	rasterCompare uint8 // low 8 bits; bit 8 lives in ctrl1

	imr uint8
	irr uint8

	bankBase uint16 // VIC's 16K window base, set by CIA2 port A bits 0-1

	sprites [8]Sprite

	frame []byte // width*height*4 RGBA
	width, height int

	lastRasterIRQLine int

	badlineActive bool
	badlineCyclesRemaining int
}

const (
	Width  = 403
	Height = 284
)

// NewVIC constructs a VIC for the given region ("PAL", "NTSC", "NTSC_R56A").
func NewVIC(env *environment.Environment, irq Interrupt, bus BusGrant, region string) *VIC {
	v := &VIC{env: env, irq: irq, bus: bus, region: region}
	v.frame = make([]byte, Width*Height*4)
	v.width, v.height = Width, Height
	v.setRegion(region)
	return v
}

func (v *VIC) setRegion(region string) {
	v.region = region
	switch region {
	case "NTSC":
		v.cyclesPerLine = clocks.CyclesPerLineNTSC
		v.scanlinesPerFrame = clocks.ScanlinesPerFrameNTSC
	case "NTSC_R56A":
		v.cyclesPerLine = clocks.CyclesPerLineNTSCR56A
		v.scanlinesPerFrame = clocks.ScanlinesPerFrameNTSC
	default:
		v.cyclesPerLine = clocks.CyclesPerLinePAL
		v.scanlinesPerFrame = clocks.ScanlinesPerFramePAL
	}
}

// DEN reports the display-enable bit of $D011.
func (v *VIC) DEN() bool { return v.ctrl1&0x10 != 0 }

// yscroll returns the low 3 bits of $D011.
func (v *VIC) yscroll() int { return int(v.ctrl1 & 0x07) }

// isBadline implements the badline rule: the raster line must be within
// 0x30-0xf7, DEN must be set when the check runs, and the low 3 bits of the
// raster counter must equal Y-scroll. DEN is not latched during line 0x30;
// clearing it later stops further badlines.
func (v *VIC) isBadline() bool {
	if v.raster < 0x30 || v.raster > 0xf7 {
		return false
	}
	return v.DEN() && (v.raster&0x07) == v.yscroll()
}

// Step advances the VIC by one master cycle: dispatches the cycle-indexed
// behaviour for (raster, cycle), updates BA/badline bus-stealing state, and
// rolls the raster counter over at the frame boundary.
func (v *VIC) Step() {
	v.cycle++

	if v.cycle == 1 {
		if v.isBadline() {
			v.badlineActive = true
			v.badlineCyclesRemaining = 40
		} else {
			v.badlineActive = false
		}
		v.checkRasterIRQ()
	}

	// badline bus-stealing: BA is held for 40 cycles from the line's first
	// cycle; there is no three-cycle lead ahead of the fetches.
	if v.badlineActive && v.badlineCyclesRemaining > 0 {
		v.bus.SetBA(true)
		v.badlineCyclesRemaining--
	} else {
		v.bus.SetBA(false)
	}

	v.renderCycle()

	if v.cycle >= v.cyclesPerLine {
		v.cycle = 0
		v.raster++
		if v.raster >= v.scanlinesPerFrame {
			v.raster = 0
			v.presentFrame()
		}
	}
}

// checkRasterIRQ compares the 9-bit raster compare value (low 8 bits in
// rasterCompare, bit 8 in ctrl1 bit 7) against the current raster counter,
// edge-sensitively: only the transition into a match raises IRR bit 0.
func (v *VIC) checkRasterIRQ() {
	compare := int(v.rasterCompare)
	if v.ctrl1&0x80 != 0 {
		compare |= 0x100
	}
	if v.raster == compare && v.lastRasterIRQLine != v.raster {
		v.irr |= 0x01
		if v.imr&0x01 != 0 {
			v.irr |= 0x80
			if v.irq != nil {
				v.irq.Assert()
			}
		}
	}
	v.lastRasterIRQLine = v.raster
}

// renderCycle marks one 8-pixel cell of the current raster line as opaque
// by setting each pixel's alpha byte; the colour bytes are left as they are
// (zero in a fresh frame), so no background, character or sprite colour is
// drawn.
func (v *VIC) renderCycle() {
	if v.raster >= v.height || v.cycle*8 >= v.width {
		return
	}
	row := v.raster * v.width * 4
	for x := 0; x < 8 && v.cycle*8+x < v.width; x++ {
		off := row + (v.cycle*8+x)*4
		v.frame[off+3] = 0xff
	}
}

func (v *VIC) presentFrame() {
	if v.env != nil && v.env.Video != nil {
		_ = v.env.Video.GetTexture()
	}
}

// GetTexture returns the completed frame buffer.
func (v *VIC) GetTexture() []byte { return v.frame }

// ReadIRR/WriteIMR mirror the CIA's interrupt register convention: reading
// $D019 returns IRR and clears it (releasing the interrupt line); $D01A is
// the interrupt mask.
func (v *VIC) ReadIRR() uint8 {
	val := v.irr
	v.irr = 0
	if v.irq != nil {
		v.irq.Release()
	}
	return val
}

func (v *VIC) WriteIMR(data uint8) { v.imr = data & 0x0f }

func (v *VIC) WriteCtrl1(data uint8) { v.ctrl1 = data }
func (v *VIC) WriteCtrl2(data uint8) { v.ctrl2 = data }
func (v *VIC) WriteRasterCompare(data uint8) { v.rasterCompare = data }

// SetBank sets the VIC's 16K memory window from CIA2 port A bits 0-1
// (inverted: 0 selects the highest bank).
func (v *VIC) SetBank(bits uint8) {
	v.bankBase = uint16(3-(bits&0x03)) * 0x4000
}

func (v *VIC) BankBase() uint16 { return v.bankBase }

// Raster returns the current raster line, readable from $D011 bit 7/$D012.
func (v *VIC) Raster() int { return v.raster }

// Sprite returns a pointer to sprite n's register block (0-7).
func (v *VIC) Sprite(n int) *Sprite { return &v.sprites[n] }

// stepSprite advances a single sprite's shift pipeline by one pixel,
// toggling the expansion and multicolor flip-flops.
func (s *Sprite) stepSprite() {
	if !s.dmaActive {
		return
	}
	if s.ExpandX {
		s.expandFlip = !s.expandFlip
		if s.expandFlip {
			return
		}
	}
	if s.Multicolor {
		s.mcFlip = !s.mcFlip
	}
	s.shiftReg <<= 1
}
