package cartridge

import (
	"fmt"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/errors"
	"github.com/gopher64/gopher64/logger"
)

// Cartridge wraps the polymorphic CartMapper, recording identifying
// metadata (Filename/ShortName/Hash) outside the mapper itself.
type Cartridge struct {
	env *environment.Environment

	Filename  string
	ShortName string
	Hash      string

	Type   CartridgeType
	mapper CartMapper
}

// NewCartridge returns an ejected cartridge; call Attach to load an image.
func NewCartridge(env *environment.Environment) *Cartridge {
	cart := &Cartridge{env: env}
	cart.Eject()
	return cart
}

// Attach loads banks (already split into CHIP-packet-sized []byte slices by
// the CRT loader) using the dispatcher for the given type.
func (cart *Cartridge) Attach(t CartridgeType, filename, shortname, hash string, banks [][]byte) error {
	mapper, err := NewFromType(t, banks)
	if err != nil {
		return err
	}

	cart.Type = t
	cart.Filename = filename
	cart.ShortName = shortname
	cart.Hash = hash
	cart.mapper = mapper

	logger.Logf("cartridge", "inserted %s (%s)", cart.ShortName, cart.mapper.ID())

	return nil
}

// Eject removes the cartridge; the cartridge port then behaves as if open.
func (cart *Cartridge) Eject() {
	cart.Filename = "ejected"
	cart.ShortName = "ejected"
	cart.Hash = ""
	cart.Type = -1
	cart.mapper = nil
}

// IsEjected reports whether any cartridge is currently attached.
func (cart *Cartridge) IsEjected() bool {
	return cart.mapper == nil
}

func (cart *Cartridge) String() string {
	if cart.IsEjected() {
		return cart.ShortName
	}
	return fmt.Sprintf("%s (%s)", cart.ShortName, cart.mapper.ID())
}

// Reset re-initialises the attached mapper's volatile state.
func (cart *Cartridge) Reset() {
	if cart.mapper != nil {
		cart.mapper.Initialise()
	}
}

// Read services a CPU access into one of the four cartridge windows.
func (cart *Cartridge) Read(w Window, addr uint16) (uint8, error) {
	if cart.mapper == nil {
		return 0, errors.Errorf(errors.UnreadableAddress, addr)
	}
	return cart.mapper.Read(w, addr)
}

// Write services a CPU write into one of the four cartridge windows.
func (cart *Cartridge) Write(w Window, addr uint16, data uint8) error {
	if cart.mapper == nil {
		return errors.Errorf(errors.UnpokeableAddress, addr)
	}
	return cart.mapper.Write(w, addr, data)
}

// Peek/Poke are the side-effect-free debugger equivalents of Read/Write.
func (cart *Cartridge) Peek(w Window, addr uint16) (uint8, error) {
	if cart.mapper == nil {
		return 0, errors.Errorf(errors.UnreadableAddress, addr)
	}
	return cart.mapper.Peek(w, addr)
}

func (cart *Cartridge) Poke(w Window, addr uint16, data uint8) error {
	if cart.mapper == nil {
		return errors.Errorf(errors.UnpokeableAddress, addr)
	}
	return cart.mapper.Poke(w, addr, data)
}

// GameExrom reports the cartridge's current /GAME and /EXROM drive, or the
// "no cartridge" default of both lines high when nothing is attached.
func (cart *Cartridge) GameExrom() (game bool, exrom bool) {
	if cart.mapper == nil {
		return true, true
	}
	return cart.mapper.GameExrom()
}

// FreezePressed/FreezeReleased forward the cartridge port's freeze button,
// wired to the NMI line by the C64 root.
func (cart *Cartridge) FreezePressed() {
	if cart.mapper != nil {
		cart.mapper.FreezePressed()
	}
}

func (cart *Cartridge) FreezeReleased() {
	if cart.mapper != nil {
		cart.mapper.FreezeReleased()
	}
}

// Bank/NumBanks/SetBank expose the mapper's bank state to diagnostics.
func (cart *Cartridge) Bank() int {
	if cart.mapper == nil {
		return 0
	}
	return cart.mapper.Bank()
}

func (cart *Cartridge) NumBanks() int {
	if cart.mapper == nil {
		return 0
	}
	return cart.mapper.NumBanks()
}

func (cart *Cartridge) SetBank(bank int) error {
	if cart.mapper == nil {
		return errors.Errorf(errors.OptionInvalid, bank)
	}
	return cart.mapper.SetBank(bank)
}

// SaveState/RestoreState snapshot the attached mapper's volatile state for
// the rewind/savestate subsystem.
func (cart *Cartridge) SaveState() interface{} {
	if cart.mapper == nil {
		return nil
	}
	return cart.mapper.SaveState()
}

func (cart *Cartridge) RestoreState(state interface{}) error {
	if cart.mapper == nil {
		return errors.Errorf(errors.SnapshotIncompatible, state)
	}
	return cart.mapper.RestoreState(state)
}

// Execute drives any mapper-specific time-dependent behavior (REU's DMA
// engine) one master cycle's worth; ram is the router's main memory array,
// the only outside state a DMA-capable mapper needs to reach. It reports
// whether the mapper wants the cartridge port's shared IRQ line held
// asserted this cycle.
func (cart *Cartridge) Execute(ram []byte) bool {
	if cart.mapper == nil {
		return false
	}
	if e, ok := cart.mapper.(executer); ok {
		return e.Execute(ram)
	}
	return false
}

// UpdatePeekPokeLookupTables returns any bank overrides the attached
// mapper wants applied on top of the router's default table, or nil for
// mappers (and the ejected state) that never override routing.
func (cart *Cartridge) UpdatePeekPokeLookupTables() []TableOverride {
	if cart.mapper == nil {
		return nil
	}
	if o, ok := cart.mapper.(tableOverrider); ok {
		return o.UpdatePeekPokeLookupTables()
	}
	return nil
}

// RAMinfo reports the attached mapper's onboard RAM windows, if any.
func (cart *Cartridge) RAMinfo() []RAMinfo {
	if p, ok := cart.mapper.(ramInfoProvider); ok {
		return p.RAMinfo()
	}
	return nil
}
