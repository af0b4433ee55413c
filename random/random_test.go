package random_test

import (
	"testing"

	"github.com/gopher64/gopher64/random"
	"github.com/gopher64/gopher64/test"
)

type clock struct{}

func (clock) MasterCycles() int64 { return 1234 }

func TestRandomRewindableIsSeedStable(t *testing.T) {
	a := random.NewRandom(clock{})
	b := random.NewRandom(clock{})
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Rewindable(i), b.Rewindable(i))
	}
}

func TestRandomZeroSeedIsDeterministic(t *testing.T) {
	r := random.NewRandom(nil)
	r.ZeroSeed = true
	test.Equate(t, r.NoRewind(100), 0)
	test.Equate(t, r.Rewindable(5), 0)
}
