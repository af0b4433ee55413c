// Package hardware is the base package for the C64 emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The C64 type is the root of the emulation and holds references to every
// sub-system: the CPU, both CIAs, the VIC-II, the SID bridge, the memory
// router, the cartridge port, the IEC bus and its two attached drives. From
// here the emulation is driven one 6510 instruction at a time via Step; the
// per-master-cycle work every other chip needs (VIC raster stepping, CIA
// timers, IEC line recomputation, the drives' own independently-clocked
// sub-machines) happens inside the CPU's cycle callback, the same pattern
// hardware/drive uses to step its own two VIAs and read/write head.
package hardware

