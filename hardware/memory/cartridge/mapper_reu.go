package cartridge

import "github.com/gopher64/gopher64/errors"

// reuSize is the onboard RAM capacity this REU emulates: the 1764's 512K,
// comfortably covering the 256K/128K variants too since every address this
// mapper computes is taken modulo reuSize.
const reuSize = 512 * 1024

// Transfer type, the low two bits of the command register.
const (
	reuTransferStash  = 0
	reuTransferFetch  = 1
	reuTransferSwap   = 2
	reuTransferVerify = 3
)

// reuType is the RAM Expansion Unit: eleven registers at IO2 $DF00-$DF0A
// driving a DMA engine that walks a C64 address and a REU address in
// lockstep, one byte per master cycle, until its length counter exhausts.
// There is no onboard ROM, so ROML/ROMH are never claimed and /GAME,/EXROM
// stay high throughout; ignores CHIP packets entirely, since a REU image
// carries no ROM data to load.
type reuType struct {
	ram []byte

	status  uint8
	command uint8
	c64Base uint16
	reuBase uint32 // low 19 bits used (512K); upper bits harmless, masked by len(ram)
	length  uint16
	imr     uint8
	acr     uint8

	running bool
}

func newREU(banks [][]byte) (CartMapper, error) {
	c := &reuType{ram: make([]byte, reuSize)}
	c.Initialise()
	return c, nil
}

func (c *reuType) Initialise() {
	c.status, c.command = 0, 0
	c.c64Base, c.reuBase, c.length = 0, 0, 0
	c.imr, c.acr = 0, 0
	c.running = false
}

func (c *reuType) Peek(w Window, addr uint16) (uint8, error) {
	if w != WindowIO2 {
		return 0, errors.Errorf(errors.UnreadableAddress, addr)
	}
	switch addr & 0xff {
	case 0x00:
		return c.status, nil
	case 0x01:
		return c.command, nil
	case 0x02:
		return uint8(c.c64Base), nil
	case 0x03:
		return uint8(c.c64Base >> 8), nil
	case 0x04:
		return uint8(c.reuBase), nil
	case 0x05:
		return uint8(c.reuBase >> 8), nil
	case 0x06:
		return uint8(c.reuBase >> 16), nil
	case 0x07:
		return uint8(c.length), nil
	case 0x08:
		return uint8(c.length >> 8), nil
	case 0x09:
		return c.imr, nil
	case 0x0a:
		return c.acr, nil
	}
	return 0xff, nil
}

// Read is Peek plus the one side effect a real 1764's status register read
// has: the latched IRQ/END OF BLOCK/FAULT bits (7-5) clear, and the IRQ
// line releases.
func (c *reuType) Read(w Window, addr uint16) (uint8, error) {
	val, err := c.Peek(w, addr)
	if err != nil {
		return 0, err
	}
	if w == WindowIO2 && addr&0xff == 0x00 {
		c.status &= 0x1f
	}
	return val, nil
}

func (c *reuType) Poke(w Window, addr uint16, data uint8) error {
	if w != WindowIO2 {
		return errors.Errorf(errors.UnpokeableAddress, addr)
	}
	switch addr & 0xff {
	case 0x01:
		c.command = data
	case 0x02:
		c.c64Base = c.c64Base&0xff00 | uint16(data)
	case 0x03:
		c.c64Base = c.c64Base&0x00ff | uint16(data)<<8
	case 0x04:
		c.reuBase = c.reuBase&0xffff00 | uint32(data)
	case 0x05:
		c.reuBase = c.reuBase&0xff00ff | uint32(data)<<8
	case 0x06:
		c.reuBase = c.reuBase&0x00ffff | uint32(data)<<16
	case 0x07:
		c.length = c.length&0xff00 | uint16(data)
	case 0x08:
		c.length = c.length&0x00ff | uint16(data)<<8
	case 0x09:
		c.imr = data
	case 0x0a:
		c.acr = data
	}
	return nil
}

// Write is Poke plus command bit 7 (EXECUTE): setting it starts the DMA
// engine, picked up by Execute on the next master cycle.
func (c *reuType) Write(w Window, addr uint16, data uint8) error {
	if err := c.Poke(w, addr, data); err != nil {
		return err
	}
	if w == WindowIO2 && addr&0xff == 0x01 && data&0x80 != 0 {
		c.running = true
	}
	return nil
}

// Execute advances the DMA engine by one master cycle while running,
// moving exactly one byte between ram (the router's main memory) and the
// REU's own RAM per the command register's transfer type, then reports
// whether the shared IRQ line should be held asserted: only once both IMR
// bit 7 (master enable) and bit 6 (end-of-block mask) are set and the
// status register's latched IRQ/end-of-block bits are pending.
func (c *reuType) Execute(ram []byte) bool {
	if c.running && c.length != 0 {
		c64Addr := int(c.c64Base)
		reuAddr := int(c.reuBase) % len(c.ram)

		if c64Addr < len(ram) {
			switch c.command & 0x03 {
			case reuTransferStash:
				c.ram[reuAddr] = ram[c64Addr]
			case reuTransferFetch:
				ram[c64Addr] = c.ram[reuAddr]
			case reuTransferSwap:
				ram[c64Addr], c.ram[reuAddr] = c.ram[reuAddr], ram[c64Addr]
			case reuTransferVerify:
				if ram[c64Addr] != c.ram[reuAddr] {
					c.status |= 0x20
				}
			}
		}

		if c.acr&0x80 == 0 {
			c.c64Base++
		}
		if c.acr&0x40 == 0 {
			c.reuBase = (c.reuBase + 1) & 0xffffff
		}

		c.length--
		if c.length == 0 {
			c.running = false
			c.command &^= 0x80
			c.status |= 0xc0 // IRQ pending + END OF BLOCK
		}
	}

	return c.status&0x80 != 0 && c.imr&0xc0 == 0xc0
}

func (c *reuType) GameExrom() (bool, bool) { return true, true }
func (c *reuType) NumBanks() int           { return 1 }
func (c *reuType) Bank() int               { return 0 }

func (c *reuType) SetBank(bank int) error {
	if bank != 0 {
		return errors.Errorf(errors.OptionInvalid, bank)
	}
	return nil
}

// reuState is the snapshot shape for SaveState/RestoreState: the REU's own
// RAM plus its eleven registers' worth of state.
type reuState struct {
	ram                          []byte
	status, command, imr, acr   uint8
	c64Base                      uint16
	reuBase                      uint32
	length                       uint16
	running                      bool
}

func (c *reuType) SaveState() interface{} {
	ram := make([]byte, len(c.ram))
	copy(ram, c.ram)
	return reuState{
		ram: ram, status: c.status, command: c.command, imr: c.imr, acr: c.acr,
		c64Base: c.c64Base, reuBase: c.reuBase, length: c.length, running: c.running,
	}
}

func (c *reuType) RestoreState(state interface{}) error {
	s, ok := state.(reuState)
	if !ok {
		return errors.Errorf(errors.SnapshotIncompatible, state)
	}
	copy(c.ram, s.ram)
	c.status, c.command, c.imr, c.acr = s.status, s.command, s.imr, s.acr
	c.c64Base, c.reuBase, c.length, c.running = s.c64Base, s.reuBase, s.length, s.running
	return nil
}

func (c *reuType) FreezePressed()  {}
func (c *reuType) FreezeReleased() {}
func (c *reuType) ID() string      { return "REU" }
