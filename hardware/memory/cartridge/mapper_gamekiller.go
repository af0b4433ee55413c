package cartridge

import "github.com/gopher64/gopher64/errors"

// gameKiller is grounded on GameKiller::pokeIO1/pokeIO2/updatePeekPokeLookupTables
// in GameKiller.cpp: any write to either IO1 or IO2 increments a shared
// counter; once two writes have landed the cartridge disconnects itself
// (control > 1 disables the ROMH override), a anti-piracy trick that trips
// up software single-stepping through the unlock sequence. The freeze
// button resets the counter and re-arms the cartridge.
type gameKiller struct {
	rom     []byte
	control int
}

func newGameKiller(banks [][]byte) (CartMapper, error) {
	if len(banks) == 0 {
		return nil, errors.Errorf(errors.CartridgeFileError, "no CHIP packets")
	}
	c := &gameKiller{rom: banks[0]}
	c.Initialise()
	return c, nil
}

func (c *gameKiller) Initialise() {
	c.control = 0
}

func (c *gameKiller) armed() bool { return c.control <= 1 }

func (c *gameKiller) Peek(w Window, addr uint16) (uint8, error) {
	if !c.armed() {
		return 0, errors.Errorf(errors.UnreadableAddress, addr)
	}
	switch w {
	case WindowROMH:
		return c.rom[addr&0x1fff], nil
	case WindowIO1, WindowIO2:
		return 0, nil
	}
	return 0, errors.Errorf(errors.UnreadableAddress, addr)
}

func (c *gameKiller) Read(w Window, addr uint16) (uint8, error) {
	return c.Peek(w, addr)
}

func (c *gameKiller) Write(w Window, addr uint16, data uint8) error {
	if w == WindowIO1 || w == WindowIO2 {
		c.control++
		return nil
	}
	return errors.Errorf(errors.UnpokeableAddress, addr)
}

func (c *gameKiller) Poke(w Window, addr uint16, data uint8) error {
	return c.Write(w, addr, data)
}

// GameExrom reports ultimax mode (/GAME low, /EXROM high) while armed, the
// state that maps ROMH at $E000 into the CPU's view; once tripped both lines
// go high and the cartridge vanishes from the map.
func (c *gameKiller) GameExrom() (bool, bool) {
	if !c.armed() {
		return true, true
	}
	return false, true
}

func (c *gameKiller) NumBanks() int { return 1 }
func (c *gameKiller) Bank() int     { return 0 }
func (c *gameKiller) SetBank(bank int) error {
	return errors.Errorf(errors.OptionInvalid, bank)
}
func (c *gameKiller) SaveState() interface{} { return c.control }
func (c *gameKiller) RestoreState(state interface{}) error {
	v, ok := state.(int)
	if !ok {
		return errors.Errorf(errors.SnapshotIncompatible, state)
	}
	c.control = v
	return nil
}

// FreezePressed re-arms the cartridge, matching GameKiller::nmiWillTrigger
// resetting control back to its OFF state on every freeze-button NMI pulse.
func (c *gameKiller) FreezePressed()  { c.control = 0 }
func (c *gameKiller) FreezeReleased() {}
func (c *gameKiller) ID() string      { return "GAME_KILLER" }
