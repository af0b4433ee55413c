// Package clocks defines the master-clock frequencies for the C64 and its
// video timing variants.
package clocks

// MasterHz is the master clock frequency, in Hz, of the CPU/CIA/VIC-II
// cycle domain for each supported region.
const (
	PAL       = 985248.0
	NTSC      = 1022727.0
	NTSCR56A  = 1022727.0
	DriveHz   = 1000000.0 // nominal; actual rate varies slightly by speed zone
)

// CyclesPerLine is the number of master cycles in one scanline, per VIC-II
// model.
const (
	CyclesPerLinePAL      = 63
	CyclesPerLineNTSC     = 65
	CyclesPerLineNTSCR56A = 64
)

// ScanlinesPerFrame is the number of scanlines in one frame, per region.
const (
	ScanlinesPerFramePAL  = 312
	ScanlinesPerFrameNTSC = 263
)
