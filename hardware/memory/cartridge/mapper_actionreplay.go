package cartridge

import "github.com/gopher64/gopher64/errors"

// actionReplay is grounded directly on ActionReplay::setControlReg /
// ActionReplay::peek / ActionReplay::peekIO2 in VirtualC64's
// ActionReplay.cpp: an 8-bit control register at IO1 with
//
//	bit 0 /GAME, bit 1 /EXROM (each bit is reported by GameExrom as the
//	line level, 1 == high), bits 3-4 bank select, bit 5 enables an 8K RAM
//	overlay mapped at ROML/IO2, bit 6 resets the freeze latch.
//
// IO2 is a 256-byte window into whichever 8K ROM bank (or the RAM overlay,
// when enabled) is selected, offset 0x1f00.
type actionReplay struct {
	banks   [][]byte // up to four 8K ROM banks
	ram     [0x2000]byte
	control uint8
	frozen  bool
}

func newActionReplay(banks [][]byte) (CartMapper, error) {
	if len(banks) == 0 {
		return nil, errors.Errorf(errors.CartridgeFileError, "no CHIP packets")
	}
	c := &actionReplay{banks: banks}
	c.Initialise()
	return c, nil
}

func (c *actionReplay) Initialise() {
	c.control = 0
	c.frozen = false
}

func (c *actionReplay) bank() int      { return int(c.control>>3) & 0x03 }
func (c *actionReplay) ramEnabled() bool { return c.control&0x20 != 0 }
func (c *actionReplay) cartDisabled() bool { return c.control&0x04 != 0 }

func (c *actionReplay) Peek(w Window, addr uint16) (uint8, error) {
	if c.cartDisabled() {
		return 0, errors.Errorf(errors.UnreadableAddress, addr)
	}
	switch w {
	case WindowROML:
		if c.ramEnabled() {
			return c.ram[addr&0x1fff], nil
		}
		return c.banks[c.bank()%len(c.banks)][addr&0x1fff], nil
	case WindowIO1:
		return c.control, nil
	case WindowIO2:
		if c.ramEnabled() {
			return c.ram[0x1f00+int(addr&0xff)], nil
		}
		return c.banks[c.bank()%len(c.banks)][0x1f00+int(addr&0xff)], nil
	}
	return 0, errors.Errorf(errors.UnreadableAddress, addr)
}

func (c *actionReplay) Read(w Window, addr uint16) (uint8, error) {
	return c.Peek(w, addr)
}

func (c *actionReplay) Write(w Window, addr uint16, data uint8) error {
	switch w {
	case WindowIO1:
		c.control = data
		if data&0x40 != 0 {
			c.frozen = false
		}
		return nil
	case WindowIO2:
		if c.ramEnabled() {
			c.ram[0x1f00+int(addr&0xff)] = data
			return nil
		}
	case WindowROML:
		if c.ramEnabled() {
			c.ram[addr&0x1fff] = data
			return nil
		}
	}
	return errors.Errorf(errors.UnpokeableAddress, addr)
}

func (c *actionReplay) Poke(w Window, addr uint16, data uint8) error {
	return c.Write(w, addr, data)
}

// GameExrom implements the bit0/bit1 lines from setControlReg,
// plus the full cartDisabled override which pulls both lines high.
func (c *actionReplay) GameExrom() (bool, bool) {
	if c.cartDisabled() {
		return true, true
	}
	return c.control&0x01 != 0, c.control&0x02 != 0
}

func (c *actionReplay) NumBanks() int { return len(c.banks) }
func (c *actionReplay) Bank() int     { return c.bank() }
func (c *actionReplay) SetBank(bank int) error {
	if bank < 0 || bank >= len(c.banks) {
		return errors.Errorf(errors.OptionInvalid, bank)
	}
	c.control = (c.control &^ 0x18) | uint8(bank<<3)
	return nil
}

func (c *actionReplay) SaveState() interface{} {
	return [2]interface{}{c.control, c.ram}
}
func (c *actionReplay) RestoreState(state interface{}) error {
	s, ok := state.([2]interface{})
	if !ok {
		return errors.Errorf(errors.SnapshotIncompatible, state)
	}
	c.control = s[0].(uint8)
	c.ram = s[1].([0x2000]byte)
	return nil
}

// FreezePressed forces the control register into the known "just froze"
// state (cartridge enabled, bank 0, RAM disabled) the way pressing the
// physical freeze button on the real board does via its NMI/IRQ pulldown.
func (c *actionReplay) FreezePressed() {
	c.control = 0x00
	c.frozen = true
}
func (c *actionReplay) FreezeReleased() {}
func (c *actionReplay) ID() string      { return "ACTION_REPLAY" }
