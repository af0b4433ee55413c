package errors

// Curated error messages raised by the core, grouped as described in
// SPEC_FULL.md's Error Handling Design section. Each is used with Errorf and
// zero or more Values.
const (
	// ROM / boot
	ROMMissing = "rom missing: %v"

	// Cartridge
	CartridgeUnknown     = "cartridge unknown: %v"
	CartridgeUnsupported = "cartridge unsupported: %v"
	CartridgeFileError   = "cartridge file error: %v"

	// Snapshot
	SnapshotIncompatible = "snapshot incompatible: %v"

	// Disk
	DiskSectorNotFound   = "disk: sector not found (track %v sector %v)"
	DiskInvalidFormat    = "disk: invalid format: %v"
	DiskWriteProtected   = "disk: write protected"
	DiskReadAfterEject   = "disk: read after eject"
	DiskGCRDesyncedError = "disk: gcr desync: %v"

	// Filesystem
	FilesystemWrongCapacity = "filesystem: wrong capacity: %v"
	FilesystemWrongBlockLen = "filesystem: wrong block length: %v"
	FilesystemOutOfSpace    = "filesystem: out of space"
	FilesystemFileNotFound  = "filesystem: file not found: %v"
	FilesystemFileExists    = "filesystem: file exists: %v"
	FilesystemWrongType     = "filesystem: wrong block type: %v"

	// CPU
	CPUJammed = "cpu: jammed at %v"

	// Configuration
	OptionInvalid = "option invalid: %v"

	// Memory
	UnpokeableAddress = "memory: address cannot be poked: %v"
	UnreadableAddress = "memory: address cannot be read: %v"
)
