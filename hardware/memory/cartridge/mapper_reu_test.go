package cartridge

import "testing"

// reuWrite pokes one of the REU's eleven IO2 registers by absolute $DF00
// offset, mirroring how memmap.Router.Write masks the address before
// forwarding to the mapper.
func reuWrite(c CartMapper, offset uint16, data uint8) {
	_ = c.Write(WindowIO2, offset, data)
}

func TestREUStashCopiesRAMIntoExpansionMemory(t *testing.T) {
	c, err := newREU(nil)
	if err != nil {
		t.Fatalf("newREU: %v", err)
	}
	reu := c.(*reuType)

	ram := make([]byte, 0x10000)
	for i := 0; i < 256; i++ {
		ram[0xc000+i] = byte(i)
	}

	reuWrite(c, 0x02, 0x00) // C64 base lo = $C000
	reuWrite(c, 0x03, 0xc0)
	reuWrite(c, 0x04, 0x00) // REU base = $000000
	reuWrite(c, 0x05, 0x00)
	reuWrite(c, 0x06, 0x00)
	reuWrite(c, 0x07, 0x00) // length = $0100
	reuWrite(c, 0x08, 0x01)
	reuWrite(c, 0x09, 0xc0) // IMR: master enable + end-of-block mask
	reuWrite(c, 0x01, 0x80) // command: STASH, EXECUTE

	irq := false
	for i := 0; i < 256; i++ {
		irq = reu.Execute(ram)
	}

	for i := 0; i < 256; i++ {
		if reu.ram[i] != byte(i) {
			t.Fatalf("byte %d: expected REU RAM to hold the stashed value %d, got %d", i, i, reu.ram[i])
		}
	}

	status, err := c.Peek(WindowIO2, 0x00)
	if err != nil {
		t.Fatalf("Peek status: %v", err)
	}
	if status&0x40 == 0 {
		t.Fatalf("expected END OF BLOCK (bit 6) set once the transfer length is exhausted, got %08b", status)
	}
	if !irq {
		t.Fatalf("expected Execute to report the IRQ line held once IMR bits 6/7 are both set and the transfer completed")
	}
}

func TestREUStatusReadClearsLatchedBitsAndIRQ(t *testing.T) {
	c, err := newREU(nil)
	if err != nil {
		t.Fatalf("newREU: %v", err)
	}
	reu := c.(*reuType)

	ram := make([]byte, 0x10000)
	reuWrite(c, 0x07, 0x01) // length = 1
	reuWrite(c, 0x08, 0x00)
	reuWrite(c, 0x09, 0xc0)
	reuWrite(c, 0x01, 0x80)
	reu.Execute(ram)
	// a second Execute with length already 0 reports the same latched IRQ
	// level without doing further transfer work.
	reu.Execute(ram)

	val, err := c.Read(WindowIO2, 0x00)
	if err != nil {
		t.Fatalf("Read status: %v", err)
	}
	if val&0xe0 == 0 {
		t.Fatalf("expected the status read to return the latched bits before clearing them, got %08b", val)
	}

	if reu.status&0xe0 != 0 {
		t.Fatalf("expected reading the status register to clear its top 3 bits, got %08b", reu.status)
	}
}

func TestREUDoesNotMapROMWindows(t *testing.T) {
	c, err := newREU(nil)
	if err != nil {
		t.Fatalf("newREU: %v", err)
	}
	game, exrom := c.GameExrom()
	if !game || !exrom {
		t.Fatalf("expected /GAME and /EXROM to stay high, REU carries no ROM; got game=%v exrom=%v", game, exrom)
	}
	if _, err := c.Read(WindowROML, 0x0000); err == nil {
		t.Fatalf("expected a ROML read to be rejected, REU has no ROM window")
	}
}
