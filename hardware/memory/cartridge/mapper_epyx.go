package cartridge

import "github.com/gopher64/gopher64/errors"

// epyxFastload is a single fixed 8K bank whose /EXROM line is only held low
// for a short capacitor-timed window after any ROML or IO1 read; the
// cartridge goes quiet (falls out of the map) if nothing touches it for a
// while. The capacitor is modelled as a countdown in CPU cycles,
// decremented by Tick, which Execute calls once per master cycle.
type epyxFastload struct {
	rom     []byte
	timeout int
}

const epyxCapacitorCycles = 512

func newEpyxFastload(banks [][]byte) (CartMapper, error) {
	if len(banks) == 0 {
		return nil, errors.Errorf(errors.CartridgeFileError, "no CHIP packets")
	}
	c := &epyxFastload{rom: banks[0]}
	c.Initialise()
	return c, nil
}

func (c *epyxFastload) Initialise() {
	c.timeout = 0
}

// Tick counts down the capacitor by one master cycle; once it reaches zero
// the cartridge stops asserting /EXROM until touched again.
func (c *epyxFastload) Tick() {
	if c.timeout > 0 {
		c.timeout--
	}
}

// Execute implements executer, so that Cartridge.Execute, called once per
// master cycle, drives the capacitor countdown.
func (c *epyxFastload) Execute(ram []byte) bool {
	c.Tick()
	return false
}

func (c *epyxFastload) Peek(w Window, addr uint16) (uint8, error) {
	switch w {
	case WindowROML:
		return c.rom[addr&0x1fff], nil
	case WindowIO1:
		return c.rom[0x1e00+int(addr&0xff)], nil
	}
	return 0, errors.Errorf(errors.UnreadableAddress, addr)
}

func (c *epyxFastload) Read(w Window, addr uint16) (uint8, error) {
	c.timeout = epyxCapacitorCycles
	return c.Peek(w, addr)
}

func (c *epyxFastload) Write(w Window, addr uint16, data uint8) error {
	return errors.Errorf(errors.UnpokeableAddress, addr)
}
func (c *epyxFastload) Poke(w Window, addr uint16, data uint8) error {
	return c.Write(w, addr, data)
}

func (c *epyxFastload) GameExrom() (bool, bool) {
	return true, c.timeout == 0
}
func (c *epyxFastload) NumBanks() int { return 1 }
func (c *epyxFastload) Bank() int     { return 0 }
func (c *epyxFastload) SetBank(bank int) error {
	return errors.Errorf(errors.OptionInvalid, bank)
}
func (c *epyxFastload) SaveState() interface{}         { return c.timeout }
func (c *epyxFastload) RestoreState(state interface{}) error {
	v, ok := state.(int)
	if !ok {
		return errors.Errorf(errors.SnapshotIncompatible, state)
	}
	c.timeout = v
	return nil
}
func (c *epyxFastload) FreezePressed()  {}
func (c *epyxFastload) FreezeReleased() {}
func (c *epyxFastload) ID() string      { return "EPYX_FASTLOAD" }
