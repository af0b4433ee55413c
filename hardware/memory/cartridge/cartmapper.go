// Package cartridge implements the cartridge port: the four memory windows
// (ROML, ROMH, IO1, IO2) a CRT image can claim, the /GAME and /EXROM lines it
// drives, and the per-type bank-switching logic each cartridge format uses.
//
// A CartMapper is the polymorphic core of a cartridge, selected by
// NewFromType from a numeric CartridgeType tag rather than a bank-switching
// format string.
package cartridge

// Window identifies which of the four address ranges a CPU access landed in.
// A CartMapper only ever sees addresses already normalised to 0x0000 within
// whichever window is in play.
type Window int

const (
	WindowROML Window = iota
	WindowROMH
	WindowIO1
	WindowIO2
)

// CartMapper implementations hold the actual data from the loaded CRT image
// and keep track of which bank is mapped into each window, plus whatever
// hidden register state the cartridge's own logic carries (freeze latches,
// bank counters, RAM enables).
type CartMapper interface {
	Initialise()

	Read(w Window, addr uint16) (data uint8, err error)
	Write(w Window, addr uint16, data uint8) error

	// Peek/Poke are the debugger-safe, side-effect-free counterparts of
	// Read/Write; most mappers can satisfy them by delegating straight to
	// the backing ROM/RAM array.
	Peek(w Window, addr uint16) (uint8, error)
	Poke(w Window, addr uint16, data uint8) error

	// GameExrom reports the cartridge's current /GAME and /EXROM line
	// states (true == line high / deasserted), consulted by the memmap
	// router every time either line could have changed.
	GameExrom() (game bool, exrom bool)

	NumBanks() int
	Bank() int
	SetBank(bank int) error

	SaveState() interface{}
	RestoreState(interface{}) error

	// FreezePressed/FreezeReleased model the Action Replay / Final
	// Cartridge style freeze button, which pulls NMI and forces a known
	// bank/mode. Mappers without a freeze button no-op both.
	FreezePressed()
	FreezeReleased()

	ID() string
}

// RAMinfo details the read/write windows of any cartridge RAM, surfaced to
// diagnostics tooling.
type RAMinfo struct {
	Label       string
	Active      bool
	ReadOrigin  uint16
	ReadMemtop  uint16
	WriteOrigin uint16
	WriteMemtop uint16
}

// ramInfoProvider is implemented by mappers carrying onboard RAM.
type ramInfoProvider interface {
	RAMinfo() []RAMinfo
}

// executer is implemented by mappers with their own time-dependent
// behavior (REU's DMA engine); Cartridge.Execute no-ops for mappers that
// don't implement it.
type executer interface {
	Execute(ram []byte) (irq bool)
}

// TableSource is a bank-routing source a mapper can force onto one of the
// router's sixteen 4K slots, named generically (rather than reusing
// memmap.Source) so this package never needs to import memmap.
type TableSource int

const (
	// TableUnchanged leaves the router's own default for this bank alone.
	TableUnchanged TableSource = iota
	TableRAM
	TableCartLo
	TableCartHi
	TableNone
)

// TableOverride forces bank's peek and/or poke source after the router has
// built its default table from Config; a TableUnchanged field leaves that
// half of the bank alone.
type TableOverride struct {
	Bank       int
	Peek, Poke TableSource
}

// tableOverrider is the hook for mappers that need the final say over
// specific banks' routing once the router has built its default table; no
// mapper in this package implements it. UpdatePeekPokeLookupTables mirrors
// VirtualC64's override timing (spec.md's "router builds base table, then
// gives cartridge the last word" sequence).
type tableOverrider interface {
	UpdatePeekPokeLookupTables() []TableOverride
}
