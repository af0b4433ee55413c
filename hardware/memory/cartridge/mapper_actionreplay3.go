package cartridge

import "github.com/gopher64/gopher64/errors"

// actionReplay3 is grounded on ActionReplay3::setControlReg /
// ActionReplay3::peekIO2 / ActionReplay3::bank in ActionReplay.cpp: a
// simpler control register than the original Action Replay, selecting one
// of four 8K ROM packets with no RAM overlay and no IO1 readback (writes to
// a control register at IO1 select the bank and a single disable bit; IO2
// is a straight 256-byte window into the active packet).
type actionReplay3 struct {
	banks    [][]byte
	control  uint8
}

func newActionReplay3(banks [][]byte) (CartMapper, error) {
	if len(banks) == 0 {
		return nil, errors.Errorf(errors.CartridgeFileError, "no CHIP packets")
	}
	c := &actionReplay3{banks: banks}
	c.Initialise()
	return c, nil
}

func (c *actionReplay3) Initialise() {
	c.control = 0
}

func (c *actionReplay3) bank() int        { return int(c.control) & 0x03 }
func (c *actionReplay3) cartDisabled() bool { return c.control&0x04 != 0 }

func (c *actionReplay3) Peek(w Window, addr uint16) (uint8, error) {
	if c.cartDisabled() {
		return 0, errors.Errorf(errors.UnreadableAddress, addr)
	}
	switch w {
	case WindowROML:
		return c.banks[c.bank()%len(c.banks)][addr&0x1fff], nil
	case WindowIO2:
		return c.banks[c.bank()%len(c.banks)][0x1f00+int(addr&0xff)], nil
	}
	return 0, errors.Errorf(errors.UnreadableAddress, addr)
}

func (c *actionReplay3) Read(w Window, addr uint16) (uint8, error) {
	return c.Peek(w, addr)
}

func (c *actionReplay3) Write(w Window, addr uint16, data uint8) error {
	if w == WindowIO1 {
		c.control = data
		return nil
	}
	return errors.Errorf(errors.UnpokeableAddress, addr)
}

func (c *actionReplay3) Poke(w Window, addr uint16, data uint8) error {
	return c.Write(w, addr, data)
}

func (c *actionReplay3) GameExrom() (bool, bool) {
	if c.cartDisabled() {
		return true, true
	}
	return false, false
}

func (c *actionReplay3) NumBanks() int { return len(c.banks) }
func (c *actionReplay3) Bank() int     { return c.bank() }
func (c *actionReplay3) SetBank(bank int) error {
	if bank < 0 || bank >= len(c.banks) {
		return errors.Errorf(errors.OptionInvalid, bank)
	}
	c.control = (c.control &^ 0x03) | uint8(bank)
	return nil
}
func (c *actionReplay3) SaveState() interface{} { return c.control }
func (c *actionReplay3) RestoreState(state interface{}) error {
	v, ok := state.(uint8)
	if !ok {
		return errors.Errorf(errors.SnapshotIncompatible, state)
	}
	c.control = v
	return nil
}

// FreezePressed pulls the control register low, re-enabling the cartridge
// at bank 0 the way the QD-style Action Replay 3 freeze button does via its
// combined NMI+IRQ pulldown.
func (c *actionReplay3) FreezePressed()  { c.control = 0 }
func (c *actionReplay3) FreezeReleased() {}
func (c *actionReplay3) ID() string      { return "ACTION_REPLAY3" }
