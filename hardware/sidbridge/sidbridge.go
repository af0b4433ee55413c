// Package sidbridge routes register reads/writes to up to four SID chip
// instances and buffers their output into a ring buffer for the audio host
// to drain. The DSP itself is out of scope; SID is treated as a black-box
// register file here, the actual synthesis living behind the Chip
// interface as a pluggable library.
package sidbridge

import "sync"

// Chip is the register-level contract a concrete SID implementation (a
// pluggable third-party DSP core) must satisfy; this package never
// synthesises audio itself.
type Chip interface {
	Write(register uint8, value uint8)
	Read(register uint8) uint8
	// Sample advances the chip's internal oscillators by one cycle and
	// returns the instantaneous output sample.
	Sample() int16
}

// Bridge owns up to four SID instances, mapped into the $D400-$D7FF I/O
// window in 0x20-byte strides (the stereo/quad SID convention), and a
// fixed-capacity ring buffer feeding the audio host. The buffer does no
// sample-rate correction: its fill level is not fed back into the rate.
type Bridge struct {
	chips [4]Chip
	ring  *RingBuffer

	// potX/potY supply the POTX/POTY ($D419/$D41A) analog pin readings;
	// these registers come from whatever paddle or proportional mouse is
	// plugged into the control port CIA1 currently has selected, not from
	// the SID chip itself, so Bridge answers them directly rather than
	// forwarding to Chip.
	potX, potY func() uint8
}

// NewBridge constructs a Bridge with the primary chip always present at
// slot 0; additional slots are populated via AttachChip for multi-SID
// configurations.
func NewBridge(primary Chip) *Bridge {
	b := &Bridge{ring: NewRingBuffer(1 << 15)}
	b.chips[0] = primary
	return b
}

// AttachChip installs an additional SID instance at slot n (1-3).
func (b *Bridge) AttachChip(n int, chip Chip) {
	if n < 1 || n > 3 {
		return
	}
	b.chips[n] = chip
}

// chipFor resolves which SID instance owns a $D400-range address, honouring
// the stereo-SID convention of one extra chip per $20-byte stride beyond
// the first, when slot 1 is populated. With slot 1 empty every address goes
// to slot 0, and an address whose stride slot is empty also falls back to
// slot 0.
func (b *Bridge) chipFor(addr uint16) (Chip, uint8) {
	offset := addr & 0x1f
	slot := 0
	if addr >= 0xd420 && b.chips[1] != nil {
		slot = int((addr - 0xd400) / 0x20)
		if slot > 3 {
			slot = 3
		}
	}
	if b.chips[slot] == nil {
		return b.chips[0], uint8(offset)
	}
	return b.chips[slot], uint8(offset)
}

func (b *Bridge) Write(addr uint16, data uint8) {
	chip, reg := b.chipFor(addr)
	if chip != nil {
		chip.Write(reg, data)
	}
}

func (b *Bridge) Read(addr uint16) uint8 {
	_, reg := b.chipFor(addr)
	switch reg {
	case 0x19:
		if b.potX != nil {
			return b.potX()
		}
		return 0xff
	case 0x1a:
		if b.potY != nil {
			return b.potY()
		}
		return 0xff
	}
	chip, _ := b.chipFor(addr)
	if chip == nil {
		return 0
	}
	return chip.Read(reg)
}

// AttachPotSource wires the functions consulted for POTX/POTY reads
// (typically controller.Port.PotX/PotY for whichever port has a 1351
// proportional mouse selected).
func (b *Bridge) AttachPotSource(potX, potY func() uint8) {
	b.potX = potX
	b.potY = potY
}

// Tick advances every populated chip by one master cycle and mixes their
// samples into the ring buffer. The caller decides the cadence (typically
// once per master cycle, with downsampling performed by the ring buffer's
// consumer).
func (b *Bridge) Tick() {
	var mix int32
	n := 0
	for _, c := range b.chips {
		if c == nil {
			continue
		}
		mix += int32(c.Sample())
		n++
	}
	if n == 0 {
		return
	}
	b.ring.Push(int16(mix / int32(n)))
}

// Drain copies as many buffered samples as fit into out, returning the
// count copied.
func (b *Bridge) Drain(out []int16) int {
	return b.ring.Pop(out)
}

// RingBuffer is a fixed-capacity single-producer/single-consumer sample
// queue: the producer is the emulation's own step loop and the consumer is
// the audio host goroutine, so a mutex-guarded slice is sufficient without
// pulling in a dependency for a problem this small (see DESIGN.md).
type RingBuffer struct {
	mu   sync.Mutex
	buf  []int16
	head int
	tail int
	size int
}

func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{buf: make([]int16, capacity)}
}

// Push appends one sample, overwriting the oldest sample (the head) if the
// buffer is full.
func (r *RingBuffer) Push(sample int16) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.tail] = sample
	r.tail = (r.tail + 1) % len(r.buf)
	if r.size == len(r.buf) {
		r.head = (r.head + 1) % len(r.buf)
	} else {
		r.size++
	}
}

func (r *RingBuffer) Pop(out []int16) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for n < len(out) && r.size > 0 {
		out[n] = r.buf[r.head]
		r.head = (r.head + 1) % len(r.buf)
		r.size--
		n++
	}
	return n
}

// Len reports the number of buffered, undrained samples.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}
