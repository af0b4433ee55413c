package memmap

import (
	"github.com/gopher64/gopher64/errors"
	"github.com/gopher64/gopher64/hardware/memory/cartridge"
)

// IODevice is consulted for the $D000-$DFFF window when IO is mapped in:
// $D000-$D3FF VIC-II (mirrored every $40), $D400-$D7FF SID (mirrored every
// $20), $D800-$DBFF colour RAM, $DC00-$DCFF CIA1, $DD00-$DDFF CIA2.
// $DE00-$DFFF (the cartridge's IO1/IO2) go to the cartridge instead and
// never reach the IODevice.
type IODevice interface {
	ReadIO(addr uint16) (uint8, error)
	WriteIO(addr uint16, data uint8) error
	PeekIO(addr uint16) (uint8, error)
	PokeIO(addr uint16, data uint8) error
}

// ROMSet holds the fixed BASIC/KERNAL/character ROM images, 8K each.
type ROMSet struct {
	Basic [0x2000]byte
	Kernal [0x2000]byte
	Char   [0x1000]byte
}

// Router is the C64's bank-switched memory, servicing the CPU's 16-bit
// address space by consulting Tables rebuilt on every control-line change.
type Router struct {
	RAM  [0x10000]byte
	ROM  ROMSet
	Cart *cartridge.Cartridge
	IO   IODevice
	Port CPUPort

	cfg    Config
	tables Tables
}

// NewRouter wires a Router around an already-constructed cartridge; IO and
// Port are attached separately, via AttachIO once the CIA/VIC/SID chips
// exist and via cpu.CPU.AttachPort once the CPU exists (both in turn need a
// reference to the very Router being built, broken via the environment the
// way cyclic component references are generally handled in this module).
func NewRouter(cart *cartridge.Cartridge) *Router {
	r := &Router{Cart: cart}
	r.Recompute(Config{HIRAM: true, LORAM: true, CHAREN: true})
	return r
}

// AttachIO completes construction once the IO-window chips exist.
func (r *Router) AttachIO(io IODevice) {
	r.IO = io
}

// Recompute rebuilds the routing tables from cfg: the CPU port write handler
// or the cartridge driving /GAME or /EXROM calls this after changing a
// control line. It builds the base table and then gives the cartridge
// mapper the last word through UpdatePeekPokeLookupTables; none of the
// mappers in the cartridge package overrides the default routing.
func (r *Router) Recompute(cfg Config) {
	r.cfg = cfg
	if r.Cart != nil {
		game, exrom := r.Cart.GameExrom()
		cfg.Game = game
		cfg.Exrom = exrom
	} else {
		cfg.Game = true
		cfg.Exrom = true
	}
	r.tables = Build(cfg)
	r.applyCartOverrides()
}

// applyCartOverrides lets the attached mapper force individual banks'
// routing after the base table is built; mappers that don't need this
// (the overwhelming majority) report no overrides and the base table
// stands untouched.
func (r *Router) applyCartOverrides() {
	if r.Cart == nil {
		return
	}
	for _, ov := range r.Cart.UpdatePeekPokeLookupTables() {
		if ov.Bank < 0 || ov.Bank >= 16 {
			continue
		}
		if src, ok := translateSource(ov.Peek); ok {
			r.tables.Peek[ov.Bank] = src
		}
		if src, ok := translateSource(ov.Poke); ok {
			r.tables.Poke[ov.Bank] = src
		}
	}
}

// translateSource maps a cartridge.TableSource (a package-agnostic name, so
// the cartridge package never needs to import memmap) onto this package's
// own Source enum.
func translateSource(s cartridge.TableSource) (Source, bool) {
	switch s {
	case cartridge.TableRAM:
		return RAM, true
	case cartridge.TableCartLo:
		return CARTLO, true
	case cartridge.TableCartHi:
		return CARTHI, true
	case cartridge.TableNone:
		return NONE, true
	default:
		return 0, false
	}
}

func (r *Router) cartWindow(bank int) (cartridge.Window, bool) {
	switch bank {
	case 0x8, 0x9:
		return cartridge.WindowROML, true
	case 0xa, 0xb, 0xe, 0xf:
		return cartridge.WindowROMH, true
	}
	return 0, false
}

// Read implements cpubus.Memory.
func (r *Router) Read(addr uint16) (uint8, error) {
	if addr <= 0x0001 && r.Port != nil {
		return r.Port.ReadPort(addr), nil
	}
	bank := int(addr >> 12)
	switch r.tables.Peek[bank] {
	case RAM:
		return r.RAM[addr], nil
	case BASIC:
		return r.ROM.Basic[addr&0x1fff], nil
	case KERNAL:
		return r.ROM.Kernal[addr&0x1fff], nil
	case CHARROM:
		return r.ROM.Char[addr&0x0fff], nil
	case IO:
		if addr>>8 == 0xde || addr>>8 == 0xdf {
			w := cartridge.WindowIO1
			if addr>>8 == 0xdf {
				w = cartridge.WindowIO2
			}
			return r.Cart.Read(w, addr&0xff)
		}
		if r.IO == nil {
			return 0, errors.Errorf(errors.UnreadableAddress, addr)
		}
		return r.IO.ReadIO(addr)
	case CARTLO, CARTHI:
		w, _ := r.cartWindow(bank)
		return r.Cart.Read(w, addr&0x1fff)
	case NONE:
		return 0xff, nil // open bus
	}
	return 0, errors.Errorf(errors.UnreadableAddress, addr)
}

// Write implements cpubus.Memory. RAM is always written underneath
// whatever is mapped for reads, matching real hardware: ROM/IO visibility
// never stops the RAM beneath it from changing.
func (r *Router) Write(addr uint16, data uint8) error {
	if addr <= 0x0001 && r.Port != nil {
		r.Port.WritePort(addr, data)
		return nil
	}
	bank := int(addr >> 12)
	switch r.tables.Poke[bank] {
	case RAM:
		r.RAM[addr] = data
		return nil
	case IO:
		if addr>>8 == 0xde || addr>>8 == 0xdf {
			w := cartridge.WindowIO1
			if addr>>8 == 0xdf {
				w = cartridge.WindowIO2
			}
			return r.Cart.Write(w, addr&0xff, data)
		}
		if r.IO == nil {
			return errors.Errorf(errors.UnpokeableAddress, addr)
		}
		return r.IO.WriteIO(addr, data)
	case NONE:
		// ultimax holes (every bank mapped NONE): writes are discarded
		// entirely, unlike the rest of RAM which is always writable
		// underneath ROM.
		return nil
	}
	r.RAM[addr] = data
	return nil
}

// Peek/Poke are the debugger-safe counterparts that never trigger
// side-effecting hardware behaviour; cartridge windows, IO1/IO2 included,
// are read through the mapper's Peek.
func (r *Router) Peek(addr uint16) (uint8, error) {
	if addr <= 0x0001 && r.Port != nil {
		return r.Port.PeekPort(addr), nil
	}
	bank := int(addr >> 12)
	switch r.tables.Peek[bank] {
	case RAM:
		return r.RAM[addr], nil
	case BASIC:
		return r.ROM.Basic[addr&0x1fff], nil
	case KERNAL:
		return r.ROM.Kernal[addr&0x1fff], nil
	case CHARROM:
		return r.ROM.Char[addr&0x0fff], nil
	case IO:
		if addr>>8 == 0xde || addr>>8 == 0xdf {
			w := cartridge.WindowIO1
			if addr>>8 == 0xdf {
				w = cartridge.WindowIO2
			}
			return r.Cart.Peek(w, addr&0xff)
		}
		if r.IO == nil {
			return 0, errors.Errorf(errors.UnreadableAddress, addr)
		}
		return r.IO.PeekIO(addr)
	case CARTLO, CARTHI:
		w, _ := r.cartWindow(bank)
		return r.Cart.Peek(w, addr&0x1fff)
	}
	return 0xff, nil
}

func (r *Router) Poke(addr uint16, data uint8) error {
	r.RAM[addr] = data
	return nil
}
