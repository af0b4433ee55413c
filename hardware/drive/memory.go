package drive

import "github.com/gopher64/gopher64/hardware/memory/cpubus"

// memory is the 1541's own address space, entirely separate from the C64's:
// 2K of RAM mirrored through $0000-$07FF, VIA1 at $1800-$180F (mirrored
// through $1BFF), VIA2 at $1C00-$1C0F (mirrored through $1FFF), and 16K of
// DOS ROM at $C000-$FFFF mirrored down from whatever image size was loaded.
type memory struct {
	ram  [0x800]byte
	rom  [0x4000]byte
	via1 *via
	via2 *via
}

func newMemory(via1, via2 *via) *memory {
	return &memory{via1: via1, via2: via2}
}

// LoadROM copies a DOS ROM image (1541 firmware) into the fixed ROM window,
// mirroring a shorter image to fill the full 16K the way real 1541 ROM
// sockets are wired.
func (m *memory) LoadROM(data []byte) {
	if len(data) == 0 {
		return
	}
	for i := range m.rom {
		m.rom[i] = data[i%len(data)]
	}
}

func (m *memory) Read(addr uint16) (uint8, error) {
	switch {
	case addr < 0x0800:
		return m.ram[addr&0x07ff], nil
	case addr >= 0x1800 && addr < 0x1c00:
		return m.via1.read(addr & 0x0f), nil
	case addr >= 0x1c00 && addr < 0x2000:
		return m.via2.read(addr & 0x0f), nil
	case addr >= 0xc000:
		return m.rom[addr&0x3fff], nil
	}
	return 0xff, nil
}

func (m *memory) Write(addr uint16, data uint8) error {
	switch {
	case addr < 0x0800:
		m.ram[addr&0x07ff] = data
	case addr >= 0x1800 && addr < 0x1c00:
		m.via1.write(addr&0x0f, data)
	case addr >= 0x1c00 && addr < 0x2000:
		m.via2.write(addr&0x0f, data)
	}
	return nil
}

func (m *memory) Peek(addr uint16) (uint8, error) { return m.Read(addr) }

var _ cpubus.Memory = (*memory)(nil)
