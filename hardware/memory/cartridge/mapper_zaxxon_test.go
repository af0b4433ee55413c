package cartridge

import "testing"

func TestZaxxonBankSelectedByROMLReadAddress(t *testing.T) {
	romL := make([]byte, 0x1000)
	romH0 := make([]byte, 0x2000)
	romH1 := make([]byte, 0x2000)
	romH0[0] = 0xaa
	romH1[0] = 0xbb

	c, err := newZaxxonType([][]byte{romL, romH0, romH1})
	if err != nil {
		t.Fatalf("newZaxxonType: %v", err)
	}

	if _, err := c.Read(WindowROML, 0x0000); err != nil {
		t.Fatalf("Read low ROML: %v", err)
	}
	got, err := c.Read(WindowROMH, 0x0000)
	if err != nil {
		t.Fatalf("Read ROMH: %v", err)
	}
	if got != 0xaa {
		t.Fatalf("expected bank 0 selected by a ROML read below $9000, got %#x", got)
	}

	if _, err := c.Read(WindowROML, 0x1000); err != nil {
		t.Fatalf("Read high ROML: %v", err)
	}
	got, err = c.Read(WindowROMH, 0x0000)
	if err != nil {
		t.Fatalf("Read ROMH: %v", err)
	}
	if got != 0xbb {
		t.Fatalf("expected bank 1 selected by a ROML read at/above $9000, got %#x", got)
	}
}

func TestZaxxonPeekDoesNotChangeBank(t *testing.T) {
	romL := make([]byte, 0x1000)
	romH0 := make([]byte, 0x2000)
	romH1 := make([]byte, 0x2000)
	romH1[0] = 0xbb

	c, err := newZaxxonType([][]byte{romL, romH0, romH1})
	if err != nil {
		t.Fatalf("newZaxxonType: %v", err)
	}

	// a debugger Peek at the high ROML address must not itself switch banks.
	if _, err := c.Peek(WindowROML, 0x1000); err != nil {
		t.Fatalf("Peek: %v", err)
	}
	got, err := c.Peek(WindowROMH, 0x0000)
	if err != nil {
		t.Fatalf("Peek ROMH: %v", err)
	}
	if got != 0x00 {
		t.Fatalf("expected Peek to leave bank 0 selected, got %#x", got)
	}
}

func TestZaxxonHasNoIO1Register(t *testing.T) {
	c, err := newZaxxonType([][]byte{make([]byte, 0x1000), make([]byte, 0x2000), make([]byte, 0x2000)})
	if err != nil {
		t.Fatalf("newZaxxonType: %v", err)
	}
	if err := c.Write(WindowIO1, 0x00, 0x01); err == nil {
		t.Fatalf("expected a write to IO1 to be rejected, Zaxxon has no control register")
	}
}
