package cartridge

import "github.com/gopher64/gopher64/errors"

// magicDesk is an 8K-window-only bank switcher: up to 64 banks of 8K
// selected by bits 0-5 of a write to IO1 $DE00, with bit 7 of the write additionally toggling
// /EXROM to disconnect the cartridge entirely (used by games that want to
// fall through to BASIC). There is no ROMH window.
type magicDesk struct {
	banks []byte // concatenated 8K banks
	bank  int
	exromHigh bool
}

func newMagicDesk(banks [][]byte) (CartMapper, error) {
	if len(banks) == 0 {
		return nil, errors.Errorf(errors.CartridgeFileError, "no CHIP packets")
	}
	flat := make([]byte, 0, len(banks)*0x2000)
	for _, b := range banks {
		flat = append(flat, b...)
	}
	c := &magicDesk{banks: flat}
	c.Initialise()
	return c, nil
}

func (c *magicDesk) Initialise() {
	c.bank = 0
	c.exromHigh = false
}

func (c *magicDesk) numBanks() int { return len(c.banks) / 0x2000 }

func (c *magicDesk) Peek(w Window, addr uint16) (uint8, error) {
	if w != WindowROML {
		return 0, errors.Errorf(errors.UnreadableAddress, addr)
	}
	off := c.bank*0x2000 + int(addr&0x1fff)
	return c.banks[off], nil
}

func (c *magicDesk) Read(w Window, addr uint16) (uint8, error) {
	return c.Peek(w, addr)
}

func (c *magicDesk) Write(w Window, addr uint16, data uint8) error {
	if w != WindowIO1 {
		return errors.Errorf(errors.UnpokeableAddress, addr)
	}
	c.exromHigh = data&0x80 != 0
	return c.SetBank(int(data & 0x3f))
}

func (c *magicDesk) Poke(w Window, addr uint16, data uint8) error {
	return c.Write(w, addr, data)
}

func (c *magicDesk) GameExrom() (bool, bool) { return true, c.exromHigh }
func (c *magicDesk) NumBanks() int           { return c.numBanks() }
func (c *magicDesk) Bank() int               { return c.bank }

func (c *magicDesk) SetBank(bank int) error {
	if bank < 0 || bank >= c.numBanks() {
		return errors.Errorf(errors.OptionInvalid, bank)
	}
	c.bank = bank
	return nil
}

func (c *magicDesk) SaveState() interface{} { return [2]interface{}{c.bank, c.exromHigh} }
func (c *magicDesk) RestoreState(state interface{}) error {
	s, ok := state.([2]interface{})
	if !ok {
		return errors.Errorf(errors.SnapshotIncompatible, state)
	}
	c.bank = s[0].(int)
	c.exromHigh = s[1].(bool)
	return nil
}
func (c *magicDesk) FreezePressed()  {}
func (c *magicDesk) FreezeReleased() {}
func (c *magicDesk) ID() string      { return "MAGIC_DESK" }
