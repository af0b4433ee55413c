package cartridge

import "github.com/gopher64/gopher64/errors"

// simonsBasic carries two fixed 8K banks mapped simultaneously as ROML+ROMH
// (16K mode, /GAME low /EXROM low) until a write to IO1 switches to 8K-only
// mode (ROML, /GAME high /EXROM low); any IO2 write switches back to 16K.
type simonsBasic struct {
	lo, hi []byte
	mode16k bool
}

func newSimonsBasic(banks [][]byte) (CartMapper, error) {
	if len(banks) < 2 {
		return nil, errors.Errorf(errors.CartridgeFileError, "simons basic requires two CHIP packets")
	}
	c := &simonsBasic{lo: banks[0], hi: banks[1]}
	c.Initialise()
	return c, nil
}

func (c *simonsBasic) Initialise() {
	c.mode16k = true
}

func (c *simonsBasic) Peek(w Window, addr uint16) (uint8, error) {
	switch w {
	case WindowROML:
		return c.lo[addr&0x1fff], nil
	case WindowROMH:
		if !c.mode16k {
			return 0, errors.Errorf(errors.UnreadableAddress, addr)
		}
		return c.hi[addr&0x1fff], nil
	}
	return 0, errors.Errorf(errors.UnreadableAddress, addr)
}

func (c *simonsBasic) Read(w Window, addr uint16) (uint8, error) {
	return c.Peek(w, addr)
}

func (c *simonsBasic) Write(w Window, addr uint16, data uint8) error {
	switch w {
	case WindowIO1:
		c.mode16k = false
		return nil
	case WindowIO2:
		c.mode16k = true
		return nil
	}
	return errors.Errorf(errors.UnpokeableAddress, addr)
}

func (c *simonsBasic) Poke(w Window, addr uint16, data uint8) error {
	return c.Write(w, addr, data)
}

func (c *simonsBasic) GameExrom() (bool, bool) { return !c.mode16k, false }
func (c *simonsBasic) NumBanks() int           { return 1 }
func (c *simonsBasic) Bank() int               { return 0 }
func (c *simonsBasic) SetBank(bank int) error {
	return errors.Errorf(errors.OptionInvalid, bank)
}
func (c *simonsBasic) SaveState() interface{} { return c.mode16k }
func (c *simonsBasic) RestoreState(state interface{}) error {
	v, ok := state.(bool)
	if !ok {
		return errors.Errorf(errors.SnapshotIncompatible, state)
	}
	c.mode16k = v
	return nil
}
func (c *simonsBasic) FreezePressed()  {}
func (c *simonsBasic) FreezeReleased() {}
func (c *simonsBasic) ID() string      { return "SIMONS_BASIC" }
