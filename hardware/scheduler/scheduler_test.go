package scheduler_test

import (
	"testing"

	"github.com/gopher64/gopher64/hardware/scheduler"
)

func TestTimeDelayedCurrentIsImmediate(t *testing.T) {
	clock := &scheduler.Clock{}
	td := scheduler.NewTimeDelayed[uint8](clock, 2)

	td.Write(0x42)
	if got := td.Current(); got != 0x42 {
		t.Fatalf("expected immediate write to be current, got %#x", got)
	}
}

func TestTimeDelayedWriteWithDelay(t *testing.T) {
	clock := &scheduler.Clock{}
	td := scheduler.NewTimeDelayed[uint8](clock, 2)

	td.Reset(0x00)
	td.WriteWithDelay(0xff, 2)

	if got := td.Current(); got != 0x00 {
		t.Fatalf("expected old value still current immediately after delayed write, got %#x", got)
	}

	clock.Tick()
	clock.Tick()

	if got := td.Current(); got != 0xff {
		t.Fatalf("expected delayed value current after 2 cycles, got %#x", got)
	}
}

func TestClockTick(t *testing.T) {
	clock := &scheduler.Clock{}
	for i := 0; i < 10; i++ {
		clock.Tick()
	}
	if clock.Cycles() != 10 {
		t.Fatalf("expected 10 cycles, got %d", clock.Cycles())
	}
}
