// Package iec implements the serial IEC bus: three
// open-collector lines wired-AND across the C64's CIA2 and up to two
// drives, recomputed whenever any peer's latch changes.
package iec

// Notifier is told when the bus transitions from busy to idle after the
// 32-cycle idle timeout, and when a line state change requires waking a
// peer or delivering an ATN edge.
type Notifier interface {
	BusIdle()
	WakeDrive(unit int)
	ATNEdge(unit int, asserted bool)
}

// Peer is one side's latch bits, true meaning the peer is driving the line
// low (asserted) the way a 6526/6522 output latch bit of 0 pulls an
// open-collector line low; the bus-level convention below inverts these
// into the asserted-low wire values.
type Peer struct {
	Atn  bool
	Clk  bool
	Data bool

	Connected bool
	On        bool
}

// Bus is the shared three-wire state.
type Bus struct {
	CIA          Peer
	Drive8       Peer
	Drive9       Peer

	Atn, Clk, Data bool

	idleCounter int
	busy        bool

	notifier Notifier
}

func NewBus(notifier Notifier) *Bus {
	return &Bus{notifier: notifier, Atn: true, Clk: true, Data: true}
}

// Recompute applies the wired-AND formula and notifies peers of line
// changes. Call after any peer's latch bits change.
func (b *Bus) Recompute() {
	prevAtn, prevClk, prevData := b.Atn, b.Clk, b.Data

	b.Atn = !b.CIA.Atn
	b.Clk = !(b.CIA.Clk && b.Drive8.Clk && b.Drive9.Clk)
	b.Data = !(b.CIA.Data && b.Drive8.Data && b.Drive9.Data)

	if b.Drive8.Connected && b.Drive8.On {
		b.Data = b.Data && (b.Atn != b.Drive8.Atn)
	}
	if b.Drive9.Connected && b.Drive9.On {
		b.Data = b.Data && (b.Atn != b.Drive9.Atn)
	}

	changed := prevAtn != b.Atn || prevClk != b.Clk || prevData != b.Data
	if changed {
		b.idleCounter = 0
		b.busy = true
		if b.notifier != nil {
			if b.Drive8.Connected {
				b.notifier.WakeDrive(8)
			}
			if b.Drive9.Connected {
				b.notifier.WakeDrive(9)
			}
			if prevAtn != b.Atn {
				if b.Drive8.Connected {
					b.notifier.ATNEdge(8, b.Atn)
				}
				if b.Drive9.Connected {
					b.notifier.ATNEdge(9, b.Atn)
				}
			}
		}
	}
}

// Tick increments the idle counter by one master cycle; after 32 idle
// cycles the bus-busy flag drops and the notifier is told.
func (b *Bus) Tick() {
	if !b.busy {
		return
	}
	b.idleCounter++
	if b.idleCounter >= 32 {
		b.busy = false
		if b.notifier != nil {
			b.notifier.BusIdle()
		}
	}
}

// Busy reports whether the bus has seen a line change within the last 32
// master cycles.
func (b *Bus) Busy() bool { return b.busy }
