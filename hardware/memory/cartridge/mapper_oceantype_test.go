package cartridge

import "testing"

func TestOceanTypeBankSwitchSelectsROMLPacket(t *testing.T) {
	banks := make([][]byte, 4)
	for i := range banks {
		banks[i] = make([]byte, 0x2000)
		banks[i][0] = byte(i)
	}
	c, err := newOceanType(banks)
	if err != nil {
		t.Fatalf("newOceanType: %v", err)
	}

	if err := c.Write(WindowIO1, 0x00, 0x00); err != nil {
		t.Fatalf("selecting bank 0: %v", err)
	}
	got, err := c.Read(WindowROML, 0x0000)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != 0x00 {
		t.Fatalf("expected bank 0's first byte 0x00, got %#x", got)
	}

	if err := c.Write(WindowIO1, 0x00, 0x03); err != nil {
		t.Fatalf("selecting bank 3: %v", err)
	}
	got, err = c.Read(WindowROML, 0x0000)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != 0x03 {
		t.Fatalf("expected bank 3's first byte 0x03 after the IO1 write, got %#x", got)
	}
}

func TestOceanTypeGameExromHeldLow(t *testing.T) {
	c, err := newOceanType([][]byte{make([]byte, 0x2000)})
	if err != nil {
		t.Fatalf("newOceanType: %v", err)
	}
	game, exrom := c.GameExrom()
	if game || exrom {
		t.Fatalf("expected both /GAME and /EXROM held low, got game=%v exrom=%v", game, exrom)
	}
}
