package gcr_test

import (
	"bytes"
	"testing"

	"github.com/gopher64/gopher64/disk/gcr"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := [4]byte{0x08, 0x42, 0x11, 0x03}
	enc := gcr.Encode4Bytes(src)
	dec, err := gcr.Decode5Bytes(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec != src {
		t.Fatalf("round trip mismatch: got %v want %v", dec, src)
	}
}

func TestDecodeDesyncedBitstreamErrors(t *testing.T) {
	var bad [5]byte // all-zero is not a sequence of valid 5-bit GCR codes
	if _, err := gcr.Decode5Bytes(bad); err == nil {
		t.Fatalf("expected error decoding an all-zero (desynced) group")
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := gcr.Header{Sector: 5, Track: 18, IDLo: 0x41, IDHi: 0x30}
	enc := gcr.EncodeHeader(h)

	dec, err := gcr.DecodeHeader(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec != h {
		t.Fatalf("header round trip mismatch: got %+v want %+v", dec, h)
	}
}

func TestDataBlockRoundTrip(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	enc := gcr.EncodeDataBlock(data)

	dec, err := gcr.DecodeDataBlock(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(dec, data) {
		t.Fatalf("data block round trip mismatch")
	}
}

func TestTailGapLengthByZone(t *testing.T) {
	if got := gcr.TailGapLength(4, 0); got != 9 {
		t.Fatalf("even sector should always be 9, got %d", got)
	}
	cases := []struct {
		zone int
		want int
	}{{0, 9}, {1, 19}, {2, 13}, {3, 10}}
	for _, c := range cases {
		if got := gcr.TailGapLength(5, c.zone); got != c.want {
			t.Fatalf("zone %d: got %d want %d", c.zone, got, c.want)
		}
	}
}
