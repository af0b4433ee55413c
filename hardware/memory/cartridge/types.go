package cartridge

import (
	"github.com/gopher64/gopher64/errors"
)

// CartridgeType is the CRT header's hardware type field. Values and names
// follow the VICE/CCS64 CRT format numbering, the same numbering
// VirtualC64's Cartridge::isKnownType/isSupportedType switch over.
type CartridgeType int

const (
	NORMAL CartridgeType = iota
	ACTION_REPLAY
	KCS_POWER
	FINAL_III
	SIMONS_BASIC
	OCEAN
	EXPERT
	FUN_PLAY
	SUPER_GAMES
	ATOMIC_POWER
	EPYX_FASTLOAD
	WESTERMANN
	REX
	FINAL_I
	MAGIC_FORMEL
	GAME_SYSTEM
	WARP_SPEED
	DINAMIC
	ZAXXON
	MAGIC_DESK
	SUPER_SNAPSHOT_V5
	COMAL80
	STRUCTURED_BASIC
	ROSS
	DELA_EP64
	DELA_EP7x8
	DELA_EP256
	REX_EP256
	MIKRO_ASSEMBLER
	FINAL_PLUS
	ACTION_REPLAY4
	STARDOS
	EASYFLASH
	EASYFLASH_XBANK
	CAPTURE
	ACTION_REPLAY3
	RETRO_REPLAY
	MMC64
	DIGIMAX
	SUPER_SNAPSHOT
	IEEE488
	GAME_KILLER
	P64
	EXOS
	FREEZE_FRAME
	FREEZE_MACHINE
	SNAPSHOT64
	SUPER_EXPLODE_V5
	MAGIC_VOICE
	ACTION_REPLAY2
	MACH5
	DIASHOW_MAKER
	PAGEFOX
	KINGSOFT
	SILVERROCK_128
	FORMEL64
	RGCD
	RRNETMK3
	EASYCALC
	GMOD2
	REU
)

// isKnownType mirrors Cartridge::isKnownType: every value this package has a
// name for, regardless of whether it has a working mapper.
func isKnownType(t CartridgeType) bool {
	return t >= NORMAL && t <= REU
}

// supportedTypes lists the types this package can actually dispatch to a
// CartMapper. Everything else in isKnownType's range is a recognised but
// unimplemented cartridge and reports CartridgeUnsupported rather than
// CartridgeUnknown, matching Cartridge::isSupportedType's narrower allowlist.
var supportedTypes = map[CartridgeType]bool{
	NORMAL:          true,
	OCEAN:           true,
	FUN_PLAY:        true,
	SUPER_GAMES:     true,
	MAGIC_DESK:      true,
	SIMONS_BASIC:    true,
	FINAL_III:       true,
	EPYX_FASTLOAD:   true,
	ZAXXON:          true,
	KCS_POWER:       true,
	ACTION_REPLAY:   true,
	ACTION_REPLAY3:  true,
	ATOMIC_POWER:    true,
	GAME_KILLER:     true,
	REU:             true,
}

// NewFromType is the polymorphic constructor: it allocates the CartMapper
// implementation matching t, seeded from the raw CHIP-packet bytes already
// assembled by the CRT loader (one []byte per 8K/16K bank, in file order).
func NewFromType(t CartridgeType, banks [][]byte) (CartMapper, error) {
	if !isKnownType(t) {
		return nil, errors.Errorf(errors.CartridgeUnknown, int(t))
	}
	if !supportedTypes[t] {
		return nil, errors.Errorf(errors.CartridgeUnsupported, int(t))
	}

	switch t {
	case NORMAL:
		return newNormal(banks)
	case OCEAN, FUN_PLAY, SUPER_GAMES:
		return newOceanType(banks)
	case ZAXXON:
		return newZaxxonType(banks)
	case MAGIC_DESK:
		return newMagicDesk(banks)
	case SIMONS_BASIC:
		return newSimonsBasic(banks)
	case FINAL_III:
		return newFinalIII(banks)
	case EPYX_FASTLOAD:
		return newEpyxFastload(banks)
	case KCS_POWER:
		return newKCSPower(banks)
	case ACTION_REPLAY:
		return newActionReplay(banks)
	case ACTION_REPLAY3:
		return newActionReplay3(banks)
	case ATOMIC_POWER:
		return newAtomicPower(banks)
	case GAME_KILLER:
		return newGameKiller(banks)
	case REU:
		return newREU(banks)
	}

	// unreachable: every entry in supportedTypes is handled above
	return nil, errors.Errorf(errors.CartridgeUnsupported, int(t))
}
