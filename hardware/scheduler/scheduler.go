// Package scheduler implements the master clock and TimeDelayed, a
// delayed-value pipeline for "a write in cycle N takes effect in a later
// cycle" register timing. The chips in this module do not use TimeDelayed;
// their register writes take effect at once.
package scheduler

// Clock is the single monotonically increasing master cycle counter shared
// by every component reachable from the C64 root.
type Clock struct {
	cycles int64
}

// Cycles returns the current master cycle count.
func (c *Clock) Cycles() int64 { return c.cycles }

// MasterCycles implements random.Clock.
func (c *Clock) MasterCycles() int64 { return c.cycles }

// Tick advances the clock by one master cycle.
func (c *Clock) Tick() { c.cycles++ }

// Reset zeroes the clock, used on power-on/reset.
func (c *Clock) Reset() { c.cycles = 0 }

// TimeDelayed models a value whose writes can be scheduled up to `delay`
// cycles ahead, implemented as a slice of delay+1 slots that is shifted
// down (with copy) as the clock advances. Directly grounded on VirtualC64's
// TimeDelayed<T> template (original_source/C64/TimeDelayed.h): pipeline[0]
// is the oldest (current) value, pipeline[delay] is the value that will
// become current `delay` cycles from now.
type TimeDelayed[T any] struct {
	clock    *Clock
	pipeline []T
	timeStamp int64
	delay    int
}

// NewTimeDelayed returns a TimeDelayed with capacity for `delay+1` pending
// values, all initialised to the zero value of T.
func NewTimeDelayed[T any](clock *Clock, delay int) *TimeDelayed[T] {
	return &TimeDelayed[T]{
		clock:    clock,
		pipeline: make([]T, delay+1),
		delay:    delay,
	}
}

// Reset immediately sets every slot in the pipeline to value, with no delay.
func (td *TimeDelayed[T]) Reset(value T) {
	for i := range td.pipeline {
		td.pipeline[i] = value
	}
	td.timeStamp = td.clock.Cycles()
}

// Clear resets every slot to the zero value of T.
func (td *TimeDelayed[T]) Clear() {
	var zero T
	td.Reset(zero)
}

// Write makes value current immediately (it is stored in slot 0).
func (td *TimeDelayed[T]) Write(value T) {
	td.WriteWithDelay(value, 0)
}

// WriteWithDelay schedules value to become current waitCycles cycles from
// now, shifting the pipeline to catch up to the present first.
func (td *TimeDelayed[T]) WriteWithDelay(value T, waitCycles int) {
	td.shiftTo(td.clock.Cycles())
	td.pipeline[waitCycles] = value
}

// shiftTo advances timeStamp to now, sliding the pipeline down by the
// elapsed number of cycles (clamped to the pipeline's depth) and refilling
// the vacated slots with the most recently current value.
func (td *TimeDelayed[T]) shiftTo(now int64) {
	elapsed := now - td.timeStamp
	if elapsed <= 0 {
		return
	}
	n := len(td.pipeline)
	if int(elapsed) >= n {
		last := td.pipeline[n-1]
		for i := range td.pipeline {
			td.pipeline[i] = last
		}
	} else {
		copy(td.pipeline, td.pipeline[elapsed:])
		last := td.pipeline[n-1-int(elapsed)]
		for i := n - int(elapsed); i < n; i++ {
			td.pipeline[i] = last
		}
	}
	td.timeStamp = now
}

// Current returns the value that is in effect right now.
func (td *TimeDelayed[T]) Current() T {
	td.shiftTo(td.clock.Cycles())
	return td.pipeline[0]
}

// Delayed returns the value scheduled to be current `delay` cycles after
// the pipeline's last update (its timeStamp), or Current once that cycle
// has passed. The pipeline keeps no past values, so this never returns a
// value from before the current one.
func (td *TimeDelayed[T]) Delayed() T {
	offset := td.timeStamp - td.clock.Cycles() + int64(td.delay)
	if offset <= 0 {
		return td.Current()
	}
	td.shiftTo(td.clock.Cycles())
	if int(offset) >= len(td.pipeline) {
		offset = int64(len(td.pipeline) - 1)
	}
	return td.pipeline[offset]
}

// ReadWithDelay returns the value as it will be `delay` cycles from now.
func (td *TimeDelayed[T]) ReadWithDelay(delay int) T {
	td.shiftTo(td.clock.Cycles())
	if delay >= len(td.pipeline) {
		delay = len(td.pipeline) - 1
	}
	return td.pipeline[delay]
}
