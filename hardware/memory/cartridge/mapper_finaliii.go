package cartridge

import "github.com/gopher64/gopher64/errors"

// finalIII holds four 16K banks (each split ROML+ROMH). A single control
// register at IO2 $DFFF selects the bank in its low two bits, bit 4 hides
// ROMH (8K-only "game" mode), and bit 5 disables the cartridge entirely
// (used by the built-in freeze/reset menu to relinquish control).
type finalIII struct {
	banks      [][]byte // four 16K images
	bank       int
	hideROMH   bool
	disabled   bool
}

func newFinalIII(banks [][]byte) (CartMapper, error) {
	if len(banks) == 0 {
		return nil, errors.Errorf(errors.CartridgeFileError, "no CHIP packets")
	}
	c := &finalIII{banks: banks}
	c.Initialise()
	return c, nil
}

func (c *finalIII) Initialise() {
	c.bank = 0
	c.hideROMH = false
	c.disabled = false
}

func (c *finalIII) Peek(w Window, addr uint16) (uint8, error) {
	if c.disabled {
		return 0, errors.Errorf(errors.UnreadableAddress, addr)
	}
	img := c.banks[c.bank%len(c.banks)]
	switch w {
	case WindowROML:
		return img[addr&0x1fff], nil
	case WindowROMH:
		if c.hideROMH {
			return 0, errors.Errorf(errors.UnreadableAddress, addr)
		}
		return img[0x2000+int(addr&0x1fff)], nil
	}
	return 0, errors.Errorf(errors.UnreadableAddress, addr)
}

func (c *finalIII) Read(w Window, addr uint16) (uint8, error) {
	return c.Peek(w, addr)
}

func (c *finalIII) Write(w Window, addr uint16, data uint8) error {
	if w != WindowIO2 || addr != 0xff {
		return errors.Errorf(errors.UnpokeableAddress, addr)
	}
	c.bank = int(data & 0x03)
	c.hideROMH = data&0x10 != 0
	c.disabled = data&0x20 != 0
	return nil
}

func (c *finalIII) Poke(w Window, addr uint16, data uint8) error {
	return c.Write(w, addr, data)
}

func (c *finalIII) GameExrom() (bool, bool) {
	if c.disabled {
		return true, true
	}
	return false, false
}
func (c *finalIII) NumBanks() int { return len(c.banks) }
func (c *finalIII) Bank() int     { return c.bank }
func (c *finalIII) SetBank(bank int) error {
	if bank < 0 || bank >= len(c.banks) {
		return errors.Errorf(errors.OptionInvalid, bank)
	}
	c.bank = bank
	return nil
}
func (c *finalIII) SaveState() interface{} {
	return [3]interface{}{c.bank, c.hideROMH, c.disabled}
}
func (c *finalIII) RestoreState(state interface{}) error {
	s, ok := state.([3]interface{})
	if !ok {
		return errors.Errorf(errors.SnapshotIncompatible, state)
	}
	c.bank = s[0].(int)
	c.hideROMH = s[1].(bool)
	c.disabled = s[2].(bool)
	return nil
}

// FreezePressed re-enables the cartridge and forces bank 0, the way the
// Final Cartridge III's freeze button invokes its built-in utility menu.
func (c *finalIII) FreezePressed() {
	c.disabled = false
	c.hideROMH = false
	c.bank = 0
}
func (c *finalIII) FreezeReleased() {}
func (c *finalIII) ID() string      { return "FINAL_III" }
