// Package cbm decodes a CBM DOS D64 disk image: the BAM, directory, and
// file payloads, and the GCR-encoded physical track layout a drive actually
// reads. It is a payload decoder only, used when a disk image is attached to
// a drive; it has no notion of the emulated drive itself.
package cbm

import (
	"github.com/gopher64/gopher64/disk"
	"github.com/gopher64/gopher64/disk/gcr"
	"github.com/gopher64/gopher64/errors"
)

// BlockSize is the payload size of one CBM DOS sector.
const BlockSize = 256

// sectorsPerTrack mirrors disk.Zone's speed-zone boundaries with the sector
// counts each zone actually holds on a standard 1541-formatted disk.
var sectorsPerTrack = [4]int{21, 19, 18, 17}

// SectorsPerTrack returns how many sectors a 1-based track number holds.
func SectorsPerTrack(track int) int {
	return sectorsPerTrack[disk.Zone(track)]
}

// trackOffset returns the byte offset of a (1-based track, 0-based sector)
// within a linear D64 image.
func trackOffset(track, sector int) int {
	offset := 0
	for t := 1; t < track; t++ {
		offset += SectorsPerTrack(t) * BlockSize
	}
	return offset + sector*BlockSize
}

// Image is a decoded D64 byte image: the linear track/sector bytes plus the
// BAM fields read from track 18 sector 0.
type Image struct {
	data    []byte
	tracks  int
	DiskName string
	DiskID   string
	DOSType  string
}

// directoryTrack/Sector is where every CBM DOS disk's BAM and directory
// chain begins; fixed by the format, not configurable per-image.
const (
	directoryTrack  = 18
	bamSector       = 0
	directorySector = 1
)

// Load decodes a raw D64 image (35, 40 or 42 track; no error-info bytes
// appended) into an Image ready for directory listing and file extraction.
func Load(data []byte) (*Image, error) {
	tracks := 35
	total := trackOffset(36, 0) // end of a 35-track image
	switch {
	case len(data) >= trackOffset(43, 0):
		tracks = 42
	case len(data) >= trackOffset(41, 0):
		tracks = 40
	case len(data) >= total:
		tracks = 35
	default:
		return nil, errors.Errorf(errors.FilesystemWrongCapacity, len(data))
	}

	img := &Image{data: data, tracks: tracks}
	if err := img.readBAM(); err != nil {
		return nil, err
	}
	return img, nil
}

// sector returns the 256-byte payload at (track, sector), or an error if out
// of range for the image's geometry.
func (img *Image) sector(track, sector int) ([]byte, error) {
	if track < 1 || track > img.tracks || sector < 0 || sector >= SectorsPerTrack(track) {
		return nil, errors.Errorf(errors.DiskSectorNotFound, track, sector)
	}
	off := trackOffset(track, sector)
	if off+BlockSize > len(img.data) {
		return nil, errors.Errorf(errors.DiskSectorNotFound, track, sector)
	}
	return img.data[off : off+BlockSize], nil
}

// readBAM decodes the disk name, ID and DOS type from the BAM sector
// (track 18 sector 0): name at offset 0x90 (16 bytes), ID at 0xa2 (2 bytes)
// and DOS type at 0xa5 (2 bytes), all $A0-padded.
func (img *Image) readBAM() error {
	bam, err := img.sector(directoryTrack, bamSector)
	if err != nil {
		return err
	}
	img.DiskName = petsciiTrim(bam[0x90:0xa0])
	img.DiskID = petsciiTrim(bam[0xa2:0xa4])
	img.DOSType = petsciiTrim(bam[0xa5:0xa7])
	return nil
}

func petsciiTrim(b []byte) string {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c == 0xa0 {
			break
		}
		out = append(out, c)
	}
	return string(out)
}

// FileType identifies a directory entry's DOS file type (the low 3 bits of
// the type byte; bit 6 is the locked flag, bit 7 the closed/splat flag,
// surfaced separately on DirEntry).
type FileType int

const (
	DEL FileType = iota
	SEQ
	PRG
	USR
	REL
)

// DirEntry is one decoded directory slot.
type DirEntry struct {
	Name                string
	Type                FileType
	Locked, Closed      bool
	StartTrack, StartSector int
	Blocks              int
}

// Directory walks the directory sector chain starting at track 18 sector 1
// and decodes every non-empty (type byte != 0, track != 0) 32-byte entry.
func (img *Image) Directory() ([]DirEntry, error) {
	var entries []DirEntry

	track, sector := directoryTrack, directorySector
	seen := map[[2]int]bool{}
	for track != 0 {
		key := [2]int{track, sector}
		if seen[key] {
			return nil, errors.Errorf(errors.DiskInvalidFormat, "directory chain loop")
		}
		seen[key] = true

		blk, err := img.sector(track, sector)
		if err != nil {
			return nil, err
		}

		nextTrack, nextSector := int(blk[0]), int(blk[1])
		for slot := 0; slot < 8; slot++ {
			e := blk[slot*32 : slot*32+32]
			typeByte := e[2]
			startTrack := int(e[3])
			if typeByte&0x07 == 0 && startTrack == 0 {
				continue
			}
			entries = append(entries, DirEntry{
				Name:        petsciiTrim(e[5:21]),
				Type:        FileType(typeByte & 0x07),
				Locked:      typeByte&0x40 != 0,
				Closed:      typeByte&0x80 != 0,
				StartTrack:  startTrack,
				StartSector: int(e[4]),
				Blocks:      int(e[0x1e]) | int(e[0x1f])<<8,
			})
		}

		track, sector = nextTrack, nextSector
	}

	return entries, nil
}

// ReadFile follows a directory entry's sector chain and returns its decoded
// payload. Every sector but the last is full (254 data bytes plus a
// next-track/sector link); the last sector's link-sector byte gives the
// number of valid bytes in that final block (CBM DOS convention: the link
// track is 0 and the "sector" byte is the index of the last used byte, so
// the block holds that value minus one data bytes).
func (img *Image) ReadFile(e DirEntry) ([]byte, error) {
	var out []byte

	track, sector := e.StartTrack, e.StartSector
	seen := map[[2]int]bool{}
	for track != 0 {
		key := [2]int{track, sector}
		if seen[key] {
			return nil, errors.Errorf(errors.DiskInvalidFormat, "file chain loop")
		}
		seen[key] = true

		blk, err := img.sector(track, sector)
		if err != nil {
			return nil, err
		}

		nextTrack, nextSector := int(blk[0]), int(blk[1])
		if nextTrack == 0 {
			if nextSector >= 2 {
				out = append(out, blk[2:nextSector+1]...)
			}
			break
		}
		out = append(out, blk[2:]...)
		track, sector = nextTrack, nextSector
	}

	return out, nil
}

// ToDisk GCR-encodes the image's linear sector bytes onto a physical
// disk.Disk, one full track per logical track (no half-track detail, since
// a freshly-decoded image carries no copy-protection timing information).
// Each sector is written as a sync mark, GCR header, a gap, a sync mark,
// the GCR data block and the zone-dependent tail gap, in ascending sector
// order; real 1541-formatted disks interleave sectors for head-settling
// time, which this emulation's instruction-driven drive stepping has no
// need to reproduce for correct operation.
func (img *Image) ToDisk() (*disk.Disk, error) {
	idLo, idHi := byte(0xa0), byte(0xa0)
	if len(img.DiskID) > 0 {
		idLo = img.DiskID[0]
	}
	if len(img.DiskID) > 1 {
		idHi = img.DiskID[1]
	}

	d := &disk.Disk{}
	for track := 1; track <= img.tracks; track++ {
		zone := disk.Zone(track)
		t := d.TrackAt(disk.HalftrackIndex(track, 0))
		offset := 0
		for sector := 0; sector < SectorsPerTrack(track); sector++ {
			data, err := img.sector(track, sector)
			if err != nil {
				return nil, err
			}

			header := gcr.EncodeHeader(gcr.Header{
				Sector: byte(sector), Track: byte(track), IDLo: idLo, IDHi: idHi,
			})
			writeBlock(t, &offset, gcr.SyncMarker[:])
			writeBlock(t, &offset, header)
			writeGap(t, &offset, 9)

			var payload [256]byte
			copy(payload[:], data)
			block := gcr.EncodeDataBlock(payload[:])
			writeBlock(t, &offset, gcr.SyncMarker[:])
			writeBlock(t, &offset, block)
			writeGap(t, &offset, gcr.TailGapLength(sector, zone))
		}
	}

	return d, nil
}

func writeBlock(t *disk.Track, offset *int, b []byte) {
	for _, v := range b {
		t.WriteByte(*offset, v)
		*offset++
	}
}

func writeGap(t *disk.Track, offset *int, n int) {
	for i := 0; i < n; i++ {
		t.WriteByte(*offset, 0x55)
		*offset++
	}
}
