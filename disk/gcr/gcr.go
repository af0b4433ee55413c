// Package gcr implements the 1541's 4-to-5 bit GCR encoding and the D64
// sector/header framing built on top of it.
package gcr

import "github.com/gopher64/gopher64/errors"

// encodeTable maps a 4-bit nibble to its 5-bit GCR code, the standard
// Commodore disk GCR alphabet (chosen so no code has more than two
// consecutive zero bits, a requirement of the drive's read-back PLL).
var encodeTable = [16]uint8{
	0x0a, 0x0b, 0x12, 0x13, 0x0e, 0x0f, 0x16, 0x17,
	0x09, 0x19, 0x1a, 0x1b, 0x0d, 0x1d, 0x1e, 0x15,
}

var decodeTable = func() map[uint8]uint8 {
	m := make(map[uint8]uint8, 16)
	for nibble, code := range encodeTable {
		m[code] = uint8(nibble)
	}
	return m
}()

// EncodeNibble returns the 5-bit GCR code for a 4-bit value (0-15).
func EncodeNibble(nibble uint8) uint8 {
	return encodeTable[nibble&0x0f]
}

// DecodeNibble reverses EncodeNibble; ok is false if code is not a valid
// GCR code (a desync or corrupted bitstream).
func DecodeNibble(code uint8) (uint8, bool) {
	v, ok := decodeTable[code&0x1f]
	return v, ok
}

// Encode4Bytes packs four source bytes (32 bits, eight nibbles) into five
// GCR bytes (40 bits), concatenating eight 5-bit codes MSB-first into a
// shift register and emitting 5 bytes.
func Encode4Bytes(src [4]byte) [5]byte {
	var reg uint64
	nibbles := [8]uint8{
		src[0] >> 4, src[0] & 0xf,
		src[1] >> 4, src[1] & 0xf,
		src[2] >> 4, src[2] & 0xf,
		src[3] >> 4, src[3] & 0xf,
	}
	for _, n := range nibbles {
		reg = reg<<5 | uint64(EncodeNibble(n))
	}
	var out [5]byte
	out[0] = byte(reg >> 32)
	out[1] = byte(reg >> 24)
	out[2] = byte(reg >> 16)
	out[3] = byte(reg >> 8)
	out[4] = byte(reg)
	return out
}

// Decode5Bytes reverses Encode4Bytes. An error is returned if any 5-bit
// group is not a valid GCR code (a desynced bitstream).
func Decode5Bytes(src [5]byte) ([4]byte, error) {
	reg := uint64(src[0])<<32 | uint64(src[1])<<24 | uint64(src[2])<<16 | uint64(src[3])<<8 | uint64(src[4])

	var nibbles [8]uint8
	for i := 7; i >= 0; i-- {
		code := uint8(reg & 0x1f)
		reg >>= 5
		n, ok := DecodeNibble(code)
		if !ok {
			return [4]byte{}, errors.Errorf(errors.DiskGCRDesyncedError, code)
		}
		nibbles[i] = n
	}

	var out [4]byte
	out[0] = nibbles[0]<<4 | nibbles[1]
	out[1] = nibbles[2]<<4 | nibbles[3]
	out[2] = nibbles[4]<<4 | nibbles[5]
	out[3] = nibbles[6]<<4 | nibbles[7]
	return out, nil
}

// EncodeBlock GCR-encodes an arbitrary-length buffer, 4 bytes at a time
// (padding the final partial group with zero bytes), returning 5 GCR bytes
// per group.
func EncodeBlock(data []byte) []byte {
	out := make([]byte, 0, (len(data)/4+1)*5)
	for i := 0; i < len(data); i += 4 {
		var group [4]byte
		copy(group[:], data[i:min(i+4, len(data))])
		enc := Encode4Bytes(group)
		out = append(out, enc[:]...)
	}
	return out
}

// DecodeBlock reverses EncodeBlock, expecting len(gcr) to be a multiple of
// 5; outLen trims the result to the caller's expected payload length.
func DecodeBlock(gcrData []byte, outLen int) ([]byte, error) {
	out := make([]byte, 0, outLen)
	for i := 0; i+5 <= len(gcrData); i += 5 {
		var group [5]byte
		copy(group[:], gcrData[i:i+5])
		dec, err := Decode5Bytes(group)
		if err != nil {
			return nil, err
		}
		out = append(out, dec[:]...)
	}
	if len(out) > outLen {
		out = out[:outLen]
	}
	return out, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Checksum is the XOR of every payload byte.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}

// SyncMarker is five consecutive 0xFF bytes (40 set bits), the GCR sync
// sequence every header and data block is preceded by.
var SyncMarker = [5]byte{0xff, 0xff, 0xff, 0xff, 0xff}

// Header holds the variable fields of a (pre-GCR) sector header block;
// EncodeHeader adds the fixed bytes and checksum.
type Header struct {
	Sector, Track byte
	IDLo, IDHi    byte
}

// EncodeHeader builds and GCR-encodes the 8-byte header payload
// {0x08, checksum, sector, track, id_lo, id_hi, 0x0F, 0x0F}.
func EncodeHeader(h Header) []byte {
	payload := []byte{h.Sector, h.Track, h.IDLo, h.IDHi}
	checksum := Checksum(payload)
	raw := []byte{0x08, checksum, h.Sector, h.Track, h.IDLo, h.IDHi, 0x0f, 0x0f}
	return EncodeBlock(raw)
}

// DecodeHeader reverses EncodeHeader, validating the block-type byte and
// checksum.
func DecodeHeader(gcrData []byte) (Header, error) {
	raw, err := DecodeBlock(gcrData, 8)
	if err != nil {
		return Header{}, err
	}
	if raw[0] != 0x08 {
		return Header{}, errors.Errorf(errors.DiskInvalidFormat, raw[0])
	}
	h := Header{Sector: raw[2], Track: raw[3], IDLo: raw[4], IDHi: raw[5]}
	if Checksum([]byte{h.Sector, h.Track, h.IDLo, h.IDHi}) != raw[1] {
		return Header{}, errors.Errorf(errors.DiskInvalidFormat, "header checksum")
	}
	return h, nil
}

// EncodeDataBlock builds and GCR-encodes the 260-byte data payload
// {0x07, 256 data bytes, checksum, 0x00, 0x00}; data must be exactly 256
// bytes.
func EncodeDataBlock(data []byte) []byte {
	raw := make([]byte, 0, 260)
	raw = append(raw, 0x07)
	raw = append(raw, data...)
	raw = append(raw, Checksum(data), 0x00, 0x00)
	return EncodeBlock(raw)
}

// DecodeDataBlock reverses EncodeDataBlock, validating the block-type byte
// and checksum, and returns the 256 data bytes.
func DecodeDataBlock(gcrData []byte) ([]byte, error) {
	raw, err := DecodeBlock(gcrData, 260)
	if err != nil {
		return nil, err
	}
	if raw[0] != 0x07 {
		return nil, errors.Errorf(errors.DiskInvalidFormat, raw[0])
	}
	data := raw[1:257]
	if Checksum(data) != raw[257] {
		return nil, errors.Errorf(errors.DiskInvalidFormat, "data block checksum")
	}
	return data, nil
}

// TailGapLength returns the inter-block gap length (in bytes of $55) that
// follows a sector's data block: 9 bytes for even sectors, or a
// zone-dependent length for odd sectors.
func TailGapLength(sector int, zone int) int {
	if sector%2 == 0 {
		return 9
	}
	switch zone {
	case 0:
		return 9
	case 1:
		return 19
	case 2:
		return 13
	default:
		return 10
	}
}
