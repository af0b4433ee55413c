package cartridge

import "github.com/gopher64/gopher64/errors"

// normal is the plain 8K/16K cartridge: a single fixed ROML (and, for 16K
// images, ROMH) bank with no bank-switching register at all.
type normal struct {
	rom   []byte
	has16k bool
	game  bool
	exrom bool
}

func newNormal(banks [][]byte) (CartMapper, error) {
	if len(banks) == 0 {
		return nil, errors.Errorf(errors.CartridgeFileError, "no CHIP packets")
	}

	c := &normal{rom: banks[0]}
	c.has16k = len(c.rom) > 0x2000
	c.Initialise()
	return c, nil
}

func (c *normal) Initialise() {
	// /EXROM low (false) with /GAME high (8K image) or /GAME low (16K
	// image) selects the ROM mode; ultimax (/GAME low, /EXROM high) is never
	// used by the NORMAL type.
	c.game = !c.has16k
	c.exrom = false
}

func (c *normal) Read(w Window, addr uint16) (uint8, error) {
	return c.Peek(w, addr)
}

func (c *normal) Peek(w Window, addr uint16) (uint8, error) {
	switch w {
	case WindowROML:
		return c.rom[addr&0x1fff], nil
	case WindowROMH:
		if !c.has16k {
			return 0, errors.Errorf(errors.UnreadableAddress, addr)
		}
		return c.rom[0x2000+int(addr&0x1fff)], nil
	}
	return 0, errors.Errorf(errors.UnreadableAddress, addr)
}

func (c *normal) Write(w Window, addr uint16, data uint8) error {
	return errors.Errorf(errors.UnpokeableAddress, addr)
}

func (c *normal) Poke(w Window, addr uint16, data uint8) error {
	return c.Write(w, addr, data)
}

func (c *normal) GameExrom() (bool, bool) { return c.game, c.exrom }
func (c *normal) NumBanks() int           { return 1 }
func (c *normal) Bank() int               { return 0 }
func (c *normal) SetBank(bank int) error {
	return errors.Errorf(errors.OptionInvalid, bank)
}
func (c *normal) SaveState() interface{}            { return nil }
func (c *normal) RestoreState(interface{}) error    { return nil }
func (c *normal) FreezePressed()                    {}
func (c *normal) FreezeReleased()                   {}
func (c *normal) ID() string                        { return "NORMAL" }
