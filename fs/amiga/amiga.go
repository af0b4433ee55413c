// Package amiga is a minimal Amiga OFS/FFS payload decoder: enough to read
// a root block and its bitmap and enumerate the files linked from it. It
// exists only because spec.md's filesystem-decoder scope names it alongside
// the CBM decoder; full Amiga filesystem read/write (multi-block files,
// FFS data-block-only layout, writing) is out of scope for what this module
// consumes, so this is deliberately a stub rather than a complete decoder.
package amiga

import (
	"encoding/binary"

	"github.com/gopher64/gopher64/errors"
)

// BlockSize is the Amiga Disk Format's fixed block size.
const BlockSize = 512

// typeHeader/subtypeRoot are the block-type longwords a root block's first
// and last four bytes must hold.
const (
	typeHeader  = 2
	subtypeRoot = 1
)

// Image wraps a raw ADF byte image (880K, 1760 blocks of 512 bytes for a
// standard double-density floppy).
type Image struct {
	data   []byte
	blocks int
}

// Load wraps data for root-block/bitmap decoding. It does not validate a
// checksum beyond what RootBlock itself checks.
func Load(data []byte) (*Image, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, errors.Errorf(errors.FilesystemWrongBlockLen, len(data))
	}
	return &Image{data: data, blocks: len(data) / BlockSize}, nil
}

func (img *Image) block(n int) ([]byte, error) {
	if n < 0 || n >= img.blocks {
		return nil, errors.Errorf(errors.DiskSectorNotFound, n, 0)
	}
	return img.data[n*BlockSize : (n+1)*BlockSize], nil
}

func long(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off : off+4])
}

// RootBlock is the decoded root directory block: volume name, and the hash
// table of block pointers to the volume's top-level files and directories.
type RootBlock struct {
	Name      string
	HashTable []uint32
}

// rootBlockIndex is the root block's fixed position on a standard 880K ADF.
func (img *Image) rootBlockIndex() int { return img.blocks / 2 }

// RootBlock decodes the volume's root block, validating the block-primary-
// type/secondary-type longwords (offsets 0 and 508) the way every ADF tool
// does before trusting the rest of the block.
func (img *Image) RootBlock() (RootBlock, error) {
	b, err := img.block(img.rootBlockIndex())
	if err != nil {
		return RootBlock{}, err
	}
	if long(b, 0) != typeHeader || long(b, BlockSize-4) != subtypeRoot {
		return RootBlock{}, errors.Errorf(errors.DiskInvalidFormat, "not an OFS/FFS root block")
	}

	htSize := int(long(b, 12))
	hashTable := make([]uint32, 0, htSize)
	for i := 0; i < htSize; i++ {
		hashTable = append(hashTable, long(b, 24+i*4))
	}

	nameLen := int(b[BlockSize-80])
	name := string(b[BlockSize-79 : BlockSize-79+nameLen])

	return RootBlock{Name: name, HashTable: hashTable}, nil
}

// Bitmap decodes the root block's first bitmap block (offset 1 in the
// bitmap-pages list at BlockSize-200) into one bool per block, true meaning
// free — the minimum needed to report free space, not to allocate blocks.
func (img *Image) Bitmap() ([]bool, error) {
	root, err := img.block(img.rootBlockIndex())
	if err != nil {
		return nil, err
	}
	bitmapBlockPtr := long(root, BlockSize-200)
	bm, err := img.block(int(bitmapBlockPtr))
	if err != nil {
		return nil, err
	}

	free := make([]bool, 0, (BlockSize-4)*8)
	for i := 4; i < BlockSize; i += 4 {
		word := long(bm, i)
		for bit := 0; bit < 32; bit++ {
			free = append(free, word&(1<<uint(bit)) != 0)
		}
	}
	return free, nil
}

// FileEntry is one top-level directory/file header block reachable from the
// root block's hash table.
type FileEntry struct {
	Name string
	Size uint32
	IsDir bool
}

// Files enumerates the root directory's top-level entries by walking the
// root hash table and each bucket's hash-collision chain; it does not
// recurse into sub-directories.
func (img *Image) Files() ([]FileEntry, error) {
	root, err := img.RootBlock()
	if err != nil {
		return nil, err
	}

	var out []FileEntry
	for _, ptr := range root.HashTable {
		for ptr != 0 {
			b, err := img.block(int(ptr))
			if err != nil {
				return nil, err
			}

			secType := int32(long(b, BlockSize-4))
			nameLen := int(b[BlockSize-80])
			name := string(b[BlockSize-79 : BlockSize-79+nameLen])
			size := long(b, BlockSize-188)

			out = append(out, FileEntry{Name: name, Size: size, IsDir: secType < 0})

			ptr = long(b, BlockSize-16) // hash chain pointer
		}
	}
	return out, nil
}
