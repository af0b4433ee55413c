// Package disk models the 1541's physical medium: 84 halftracks of
// GCR-encoded nibble data with a per-halftrack bit length.
package disk

// Halftracks is the number of halftrack positions the head can occupy;
// tracks 1-42 each have two halftrack positions.
const Halftracks = 84

// MaxTrackBytes is the largest nibble buffer a halftrack can hold (the
// longest zone-1 track at the slowest bit rate).
const MaxTrackBytes = 7928

// Track holds one halftrack's raw GCR nibble stream and its bit length
// (which need not be a whole number of bytes on real media, though this
// emulation core always rounds to the byte for simplicity of indexing).
type Track struct {
	Data   [MaxTrackBytes]byte
	Length int // in bits
	filled int // valid bytes currently written (<= len(Data))
}

// Disk is the full halftrack array plus write-protect state.
type Disk struct {
	Tracks        [Halftracks]Track
	WriteProtected bool
}

// HalftrackIndex converts a 1-based track number and half (0 or 1) into a
// 0-based halftrack index.
func HalftrackIndex(track int, half int) int {
	return (track-1)*2 + half
}

// TrackAt returns the halftrack at the given 0-based index, or nil if out
// of range.
func (d *Disk) TrackAt(halftrack int) *Track {
	if halftrack < 0 || halftrack >= Halftracks {
		return nil
	}
	return &d.Tracks[halftrack]
}

// ReadByte returns the byte at the given bit-rounded offset within the
// track, wrapping around (the head rotates continuously).
func (t *Track) ReadByte(offset int) byte {
	if t.filled == 0 {
		return 0
	}
	return t.Data[offset%t.filled]
}

// WriteByte writes a byte at offset, extending filled if offset is beyond
// the current write point (used while formatting a blank track).
func (t *Track) WriteByte(offset int, b byte) {
	t.Data[offset%len(t.Data)] = b
	if offset+1 > t.filled {
		t.filled = offset + 1
		t.Length = t.filled * 8
	}
}

// Filled reports how many bytes of the track buffer currently hold data.
func (t *Track) Filled() int { return t.filled }

// Zone returns the speed zone (0-3) for a given 1-based track number: zone
// boundaries are tracks 1-17, 18-24, 25-30, 31-42.
func Zone(track int) int {
	switch {
	case track <= 17:
		return 0
	case track <= 24:
		return 1
	case track <= 30:
		return 2
	default:
		return 3
	}
}

// bitCellDelay is the nominal number of drive-clock sub-units per bit cell
// for each speed zone, slower (larger) zones on the inner tracks.
var bitCellDelay = [4]int{4, 4, 5, 5}

// BitCellDelay returns the nominal per-bit delay (in drive-clock sub-units)
// for the given speed zone.
func BitCellDelay(zone int) int {
	return bitCellDelay[zone]
}
