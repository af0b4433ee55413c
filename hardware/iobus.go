package hardware

import (
	"github.com/gopher64/gopher64/hardware/cia"
	"github.com/gopher64/gopher64/hardware/sidbridge"
	"github.com/gopher64/gopher64/hardware/vic"
)

// ioBus implements memmap.IODevice, dispatching the $D000-$DFFF window to
// the chip that owns each sub-range: $D000-$D3FF VIC-II (mirrored every
// $40), $D400-$D7FF SID (the bridge masks its own $20-byte stride),
// $D800-$DBFF colour RAM, $DC00-$DCFF CIA1, $DD00-$DDFF CIA2. The
// cartridge's IO1/IO2 windows at $DE00/$DF00 never reach here; the router
// dispatches those to the cartridge directly.
type ioBus struct {
	vic  *vic.VIC
	sid  *sidbridge.Bridge
	cia1 *cia.CIA
	cia2 *cia.CIA

	// colour is the VIC's 1K, 4-bit-wide colour RAM; real hardware only
	// bonds out the low nibble, so the high nibble floats and reads back
	// whatever was last on the bus. This emulation approximates that with
	// a fixed 0xf0 rather than modelling the floating bus precisely.
	colour *[1024]byte
}

func (io *ioBus) ReadIO(addr uint16) (uint8, error) {
	switch {
	case addr < 0xd400:
		return io.vic.ReadRegister(uint8(addr & 0x3f)), nil
	case addr < 0xd800:
		return io.sid.Read(addr), nil
	case addr < 0xdc00:
		return io.colour[addr&0x3ff] | 0xf0, nil
	case addr < 0xdd00:
		return io.cia1.ReadRegister(uint8(addr & 0x0f)), nil
	default:
		return io.cia2.ReadRegister(uint8(addr & 0x0f)), nil
	}
}

func (io *ioBus) WriteIO(addr uint16, data uint8) error {
	switch {
	case addr < 0xd400:
		io.vic.WriteRegister(uint8(addr&0x3f), data)
	case addr < 0xd800:
		io.sid.Write(addr, data)
	case addr < 0xdc00:
		io.colour[addr&0x3ff] = data & 0x0f
	case addr < 0xdd00:
		io.cia1.WriteRegister(uint8(addr&0x0f), data)
	default:
		io.cia2.WriteRegister(uint8(addr&0x0f), data)
	}
	return nil
}

// PeekIO/PokeIO are the debugger-safe counterparts; Peek avoids the
// interrupt-register clear-on-read side effects ReadIO would otherwise
// trigger on the VIC and either CIA. Poke writes through unconditionally,
// same as the router's own Poke does for RAM.
func (io *ioBus) PeekIO(addr uint16) (uint8, error) {
	switch {
	case addr < 0xd400:
		return io.vic.PeekRegister(uint8(addr & 0x3f)), nil
	case addr < 0xd800:
		return io.sid.Read(addr), nil
	case addr < 0xdc00:
		return io.colour[addr&0x3ff] | 0xf0, nil
	case addr < 0xdd00:
		return io.cia1.PeekRegister(uint8(addr & 0x0f)), nil
	default:
		return io.cia2.PeekRegister(uint8(addr & 0x0f)), nil
	}
}

func (io *ioBus) PokeIO(addr uint16, data uint8) error {
	return io.WriteIO(addr, data)
}
