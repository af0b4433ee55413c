package disk

import "github.com/gopher64/gopher64/errors"

// nibMagic is the 13-byte signature an MNIB raw head-capture image (the
// format nibtools/VirtualC64's n2g converter reads) starts with.
const nibMagic = "MNIB-1541-RAW"

// nibHeaderSize is the fixed header nibtools reads before any track data:
// the magic plus a presence/speed-zone byte pair for each of the 84
// halftrack positions, starting at offset 0x10.
const nibHeaderSize = 0x100

// nibRawTrackLength is the size of each per-track raw capture buffer in an
// MNIB image: more than one full rotation at any speed zone, so the
// rotational wraparound ExtractTrack looks for is always present.
const nibRawTrackLength = 0x2000

// blankTrackLength is the nominal GCR byte count nibtools falls back to,
// per speed zone, when a track is missing from the capture or no
// wraparound could be found in it.
var blankTrackLength = [4]int{6250, 6666, 7142, 7692}

// LoadNIB parses a raw MNIB head-capture image into a Disk, running
// ExtractTrack's cycle-discovery over each track's raw capture buffer in
// turn. Tracks the capture skipped (no halftrack data, or a short read) are
// filled with a blank, unformatted run of $55 bytes the way nibmain does
// for a missing track.
func LoadNIB(data []byte) (*Disk, error) {
	if len(data) < nibHeaderSize || string(data[:len(nibMagic)]) != nibMagic {
		return nil, errors.Errorf(errors.DiskInvalidFormat, "not an MNIB image")
	}

	d := &Disk{}
	offset := nibHeaderSize
	headerOffset := 0x10

	for track := 1; track <= 42; track++ {
		halftrack := HalftrackIndex(track, 0)
		zone := Zone(track)

		present := int(data[headerOffset]) >= track*2
		headerOffset += 2

		if !present || offset+nibRawTrackLength > len(data) {
			blankTrack(&d.Tracks[halftrack], zone)
			continue
		}

		raw := data[offset : offset+nibRawTrackLength]
		offset += nibRawTrackLength

		gcrTrack, err := ExtractTrack(raw)
		if err != nil || len(gcrTrack) == 0 {
			blankTrack(&d.Tracks[halftrack], zone)
			continue
		}
		if len(gcrTrack) > MaxTrackBytes {
			gcrTrack = gcrTrack[:MaxTrackBytes]
		}
		for i, b := range gcrTrack {
			d.Tracks[halftrack].WriteByte(i, b)
		}
	}

	return d, nil
}

// blankTrack fills t with an unsynced run of $55 filler bytes, nibtools'
// stand-in for a track it couldn't read or recover a cycle from.
func blankTrack(t *Track, zone int) {
	n := blankTrackLength[zone]
	if n > MaxTrackBytes {
		n = MaxTrackBytes
	}
	for i := 0; i < n; i++ {
		t.WriteByte(i, 0x55)
	}
}

// nibWraparoundThreshold is the offset (nibtools' hardcoded 0x1780) past
// which ExtractTrack starts looking for the raw capture's second rotation
// repeating the first; below it, a capture can't yet contain a full
// rotation at any supported speed zone.
const nibWraparoundThreshold = 0x1780

// nibRepeatWindow is the number of consecutive bytes that must match between
// two sync-block starts for ExtractTrack to treat them as the same point in
// consecutive rotations, matching extract_track's 7-byte comparison.
const nibRepeatWindow = 7

// findSync scans raw starting at pos for a sync sequence (one or more 0xFF
// bytes) and returns the index just past the run, or -1 if none is found
// before the end of the buffer.
func findSync(raw []byte, pos int) int {
	for pos < len(raw) && raw[pos] != 0xff {
		pos++
	}
	if pos >= len(raw) {
		return -1
	}
	for pos < len(raw) && raw[pos] == 0xff {
		pos++
	}
	if pos >= len(raw) {
		return -1
	}
	return pos
}

// isSectorZeroHeader reports whether the GCR-encoded header starting at pos
// matches nibtools' is_sector_zero pattern, identifying a sector 0 header
// (on any track) without decoding it.
func isSectorZeroHeader(raw []byte, pos int) bool {
	if pos+4 > len(raw) {
		return false
	}
	return raw[pos] == 0x52 && raw[pos+2]&0x0f == 0x05 && raw[pos+3]&0xfc == 0x28
}

func windowMatches(raw []byte, a, b, n int) bool {
	if a+n > len(raw) || b+n > len(raw) {
		return false
	}
	for i := 0; i < n; i++ {
		if raw[a+i] != raw[b+i] {
			return false
		}
	}
	return true
}

// ExtractTrack implements nibtools' extract_track: given a raw head capture
// spanning a bit more than one full disk rotation, it locates the
// rotational wraparound and returns exactly one rotation's worth of GCR
// bytes, ready to store as a Track.
//
// It walks sync-to-sync blocks, tracking the longest inter-sync gap and
// whether a sector-0 header starts one of them. Once a sync position has
// passed nibWraparoundThreshold, it looks for the raw buffer's start
// repeating (a matching nibRepeatWindow-byte run at consecutive sync
// boundaries) to find where the first rotation ends. The sector-0 gap is
// preferred as the copy start point when its length comes within 0x40 bytes
// of the longest gap found, since that header is a more reliable seam than
// an arbitrary long gap; otherwise the longest gap wins.
func ExtractTrack(raw []byte) ([]byte, error) {
	if len(raw) < nibWraparoundThreshold {
		return nil, errors.Errorf(errors.DiskInvalidFormat, "nib track capture too short")
	}

	lastSync := 0
	syncPos := findSync(raw, 0)
	maxGapPos, maxGapLen := 0, 0
	sectorZeroPos, sectorZeroLen := -1, 0
	cycleLen := 0

	for syncPos >= 0 {
		if isSectorZeroHeader(raw, syncPos) {
			sectorZeroPos = syncPos
			sectorZeroLen = syncPos - lastSync
		}

		if gapLen := syncPos - lastSync; gapLen > maxGapLen {
			maxGapLen = gapLen
			maxGapPos = syncPos
		}

		if syncPos < nibWraparoundThreshold {
			lastSync = syncPos
			syncPos = findSync(raw, syncPos)
			continue
		}

		start, repeat := 0, syncPos
		for repeat >= 0 {
			if !windowMatches(raw, start, repeat, nibRepeatWindow) {
				break
			}
			cycleLen = repeat

			nextStart := findSync(raw, start)
			nextRepeat := findSync(raw, repeat)
			if nextRepeat < 0 || nextRepeat+10 > len(raw) {
				break
			}
			start, repeat = nextStart, nextRepeat
		}

		lastSync = syncPos
		syncPos = findSync(raw, syncPos)
	}

	if cycleLen == 0 || cycleLen > len(raw) {
		return nil, errors.Errorf(errors.DiskInvalidFormat, "no rotation wraparound found in nib track")
	}

	startPos := maxGapPos
	if sectorZeroPos >= 0 && sectorZeroLen+0x40 >= maxGapLen {
		startPos = sectorZeroPos
	}
	for startPos > 0 && raw[startPos-1] == 0xff {
		startPos--
	}
	if startPos > cycleLen {
		startPos = 0
	}

	out := make([]byte, 0, cycleLen)
	out = append(out, raw[startPos:cycleLen]...)
	out = append(out, raw[:startPos]...)
	return out, nil
}
