package cartridge

import "github.com/gopher64/gopher64/errors"

// oceanType covers the Ocean/Fun Play/Super Games family: up to 64 banks of
// 8K (or 16K, for early Ocean carts with a ROMH half too) selected by
// writing the bank number to IO1 $DE00, low 6 bits, with /GAME and /EXROM
// held low throughout.
type oceanType struct {
	banks [][]byte
	bank  int
	has16k bool
}

func newOceanType(banks [][]byte) (CartMapper, error) {
	if len(banks) == 0 {
		return nil, errors.Errorf(errors.CartridgeFileError, "no CHIP packets")
	}
	c := &oceanType{banks: banks, has16k: len(banks[0]) > 0x2000}
	c.Initialise()
	return c, nil
}

func (c *oceanType) Initialise() {
	c.bank = 0
}

func (c *oceanType) Peek(w Window, addr uint16) (uint8, error) {
	switch w {
	case WindowROML:
		return c.banks[c.bank][addr&0x1fff], nil
	case WindowROMH:
		if !c.has16k {
			return 0, errors.Errorf(errors.UnreadableAddress, addr)
		}
		return c.banks[c.bank][0x2000+int(addr&0x1fff)], nil
	}
	return 0, errors.Errorf(errors.UnreadableAddress, addr)
}

func (c *oceanType) Read(w Window, addr uint16) (uint8, error) {
	return c.Peek(w, addr)
}

func (c *oceanType) Write(w Window, addr uint16, data uint8) error {
	if w == WindowIO1 {
		return c.SetBank(int(data & 0x3f))
	}
	return errors.Errorf(errors.UnpokeableAddress, addr)
}

func (c *oceanType) Poke(w Window, addr uint16, data uint8) error {
	return c.Write(w, addr, data)
}

func (c *oceanType) GameExrom() (bool, bool) { return false, false }
func (c *oceanType) NumBanks() int           { return len(c.banks) }
func (c *oceanType) Bank() int               { return c.bank }

func (c *oceanType) SetBank(bank int) error {
	if bank < 0 || bank >= len(c.banks) {
		return errors.Errorf(errors.OptionInvalid, bank)
	}
	c.bank = bank
	return nil
}

func (c *oceanType) SaveState() interface{}         { return c.bank }
func (c *oceanType) RestoreState(state interface{}) error {
	bank, ok := state.(int)
	if !ok {
		return errors.Errorf(errors.SnapshotIncompatible, state)
	}
	return c.SetBank(bank)
}
func (c *oceanType) FreezePressed()  {}
func (c *oceanType) FreezeReleased() {}
func (c *oceanType) ID() string      { return "OCEAN" }
