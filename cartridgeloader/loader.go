// Package cartridgeloader abstracts loading a file's raw bytes into memory,
// grounded on gopher2600's own cartridgeloader.Loader: a filename or an
// embedded byte slice goes in, an in-memory buffer and its SHA-1 hash come
// out.
// Unlike the teacher's Loader this package never streams (nothing in this
// domain's cartridge/disk images approaches the size where streaming from
// disk matters), so there is no ReadSeeker/Open/Close lifecycle to manage.
package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Loader holds a file's data plus the metadata callers use to decide what
// kind of image it is and whether it matches an expected hash.
type Loader struct {
	// Name is derived from the filename (without path or extension) unless
	// explicitly overridden by NewLoaderFromData.
	Name string

	// Filename is the path data was read from, or the caller-supplied name
	// for embedded data.
	Filename string

	// Data is the file's raw bytes.
	Data []byte

	// HashSHA1 is the hex SHA-1 of Data, computed by both constructors; it
	// is not checked against any expected value.
	HashSHA1 string
}

// NewLoaderFromFilename reads filename fully into memory.
func NewLoaderFromFilename(filename string) (Loader, error) {
	if strings.TrimSpace(filename) == "" {
		return Loader{}, fmt.Errorf("cartridgeloader: no filename")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return Loader{}, fmt.Errorf("cartridgeloader: %w", err)
	}

	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return Loader{
		Name:     name,
		Filename: filename,
		Data:     data,
		HashSHA1: fmt.Sprintf("%x", sha1.Sum(data)),
	}, nil
}

// NewLoaderFromData wraps an already-in-memory image, for embedded ROM
// images and for tests.
func NewLoaderFromData(name string, data []byte) Loader {
	return Loader{
		Name:     name,
		Filename: name,
		Data:     data,
		HashSHA1: fmt.Sprintf("%x", sha1.Sum(data)),
	}
}

// Extension returns the loaded file's extension, upper-cased and without
// the leading dot ("CRT", "D64", "G64", ...), the usual way this module
// picks a format when the caller hasn't said so explicitly.
func (ld Loader) Extension() string {
	return strings.ToUpper(strings.TrimPrefix(filepath.Ext(ld.Filename), "."))
}
