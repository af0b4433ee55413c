package cartridge

import "github.com/gopher64/gopher64/errors"

// atomicPower reuses actionReplay's control-register layout but adds the
// "special mapping" bit (control bit 5, same position as ramEnabled on the
// base Action Replay) which here also maps the 8K RAM overlay into ROMH,
// per AtomicPower::getRamCapacity / AtomicPower::peek in ActionReplay.cpp.
// ROML reads then come from the ROM bank; IO2 reads and writes and ROML
// writes keep the base Action Replay's overlay handling.
type atomicPower struct {
	actionReplay
}

func newAtomicPower(banks [][]byte) (CartMapper, error) {
	if len(banks) == 0 {
		return nil, errors.Errorf(errors.CartridgeFileError, "no CHIP packets")
	}
	c := &atomicPower{actionReplay: actionReplay{banks: banks}}
	c.Initialise()
	return c, nil
}

func (c *atomicPower) Peek(w Window, addr uint16) (uint8, error) {
	if c.cartDisabled() {
		return 0, errors.Errorf(errors.UnreadableAddress, addr)
	}
	if w == WindowROMH && c.ramEnabled() {
		return c.ram[addr&0x1fff], nil
	}
	if w == WindowROML && c.ramEnabled() {
		return c.banks[c.bank()%len(c.banks)][addr&0x1fff], nil
	}
	return c.actionReplay.Peek(w, addr)
}

func (c *atomicPower) Read(w Window, addr uint16) (uint8, error) {
	return c.Peek(w, addr)
}

func (c *atomicPower) Write(w Window, addr uint16, data uint8) error {
	if w == WindowROMH && c.ramEnabled() {
		c.ram[addr&0x1fff] = data
		return nil
	}
	return c.actionReplay.Write(w, addr, data)
}

func (c *atomicPower) Poke(w Window, addr uint16, data uint8) error {
	return c.Write(w, addr, data)
}

// GameExrom forces 16K mode (both lines low) whenever the RAM overlay is
// active, since the special mapping needs ROMH present simultaneously with
// ROML; otherwise defers to the base Action Replay logic.
func (c *atomicPower) GameExrom() (bool, bool) {
	if c.cartDisabled() {
		return true, true
	}
	if c.ramEnabled() {
		return false, false
	}
	return c.actionReplay.GameExrom()
}

func (c *atomicPower) ID() string { return "ATOMIC_POWER" }
