package cartridge

import "github.com/gopher64/gopher64/errors"

// kcsPower is a fixed 16K cartridge (ROML+ROMH, /GAME low /EXROM low) whose
// /EXROM line drops the moment either IO1 or IO2 is accessed (read or
// write), disconnecting the cartridge until the next reset; used by the KCS
// Power reset-protected freeze cartridges.
type kcsPower struct {
	rom       []byte
	disabled  bool
}

func newKCSPower(banks [][]byte) (CartMapper, error) {
	if len(banks) == 0 || len(banks[0]) < 0x4000 {
		return nil, errors.Errorf(errors.CartridgeFileError, "kcs power requires a 16K image")
	}
	c := &kcsPower{rom: banks[0]}
	c.Initialise()
	return c, nil
}

func (c *kcsPower) Initialise() {
	c.disabled = false
}

func (c *kcsPower) Peek(w Window, addr uint16) (uint8, error) {
	if c.disabled {
		return 0, errors.Errorf(errors.UnreadableAddress, addr)
	}
	switch w {
	case WindowROML:
		return c.rom[addr&0x1fff], nil
	case WindowROMH:
		return c.rom[0x2000+int(addr&0x1fff)], nil
	}
	return 0, errors.Errorf(errors.UnreadableAddress, addr)
}

func (c *kcsPower) Read(w Window, addr uint16) (uint8, error) {
	if w == WindowIO1 || w == WindowIO2 {
		c.disabled = true
		return 0, nil
	}
	return c.Peek(w, addr)
}

func (c *kcsPower) Write(w Window, addr uint16, data uint8) error {
	if w == WindowIO1 || w == WindowIO2 {
		c.disabled = true
		return nil
	}
	return errors.Errorf(errors.UnpokeableAddress, addr)
}

func (c *kcsPower) Poke(w Window, addr uint16, data uint8) error {
	return errors.Errorf(errors.UnpokeableAddress, addr)
}

func (c *kcsPower) GameExrom() (bool, bool) {
	if c.disabled {
		return true, true
	}
	return false, false
}
func (c *kcsPower) NumBanks() int { return 1 }
func (c *kcsPower) Bank() int     { return 0 }
func (c *kcsPower) SetBank(bank int) error {
	return errors.Errorf(errors.OptionInvalid, bank)
}
func (c *kcsPower) SaveState() interface{} { return c.disabled }
func (c *kcsPower) RestoreState(state interface{}) error {
	v, ok := state.(bool)
	if !ok {
		return errors.Errorf(errors.SnapshotIncompatible, state)
	}
	c.disabled = v
	return nil
}
func (c *kcsPower) FreezePressed()  { c.disabled = false }
func (c *kcsPower) FreezeReleased() {}
func (c *kcsPower) ID() string      { return "KCS_POWER" }
