// Package environment provides the shared context object referenced by
// every component in the hardware tree. The C64 root and every component
// reach their siblings through this shared context rather than holding
// direct pointers to one another, which avoids an irreducible cycle of Go
// struct fields.
package environment

import (
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/random"
)

// Label distinguishes independent emulation instances (e.g. a background
// thumbnailer running alongside the primary machine) sharing a process.
type Label string

// MainEmulation is the label used for the primary, user-facing emulation.
const MainEmulation = Label("main")

// VideoPort is the minimum surface the VIC-II needs from whatever owns the
// pixel buffer it renders into; the real buffer and its presentation are an
// external collaborator.
type VideoPort interface {
	// GetTexture returns the most recently completed frame buffer, or a
	// blank/noise buffer if the machine is powered off.
	GetTexture() []byte
}

// Environment is shared by every component reachable from the C64 root.
type Environment struct {
	Label Label

	Video VideoPort

	Prefs  *preferences.Preferences
	Random *random.Random
}

// NewEnvironment is the preferred method of initialisation for Environment.
// video and prefs may be nil; a nil prefs gets a fresh default set.
func NewEnvironment(label Label, video VideoPort, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
		Video: video,
	}

	env.Random = random.NewRandom(nil)

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}
	env.Prefs = prefs

	return env, nil
}

// Normalise puts the environment into a known, deterministic state. Useful
// for regression tests where the initial state must be identical run to run.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Prefs.SetDefaults()
}

// IsEmulation reports whether this environment matches the given label.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging reports whether this environment is permitted to create new
// log entries; secondary emulation instances (rewind shadow copies, for
// example) should not pollute the shared logger ring buffer.
func (env *Environment) AllowLogging() bool {
	return env.IsEmulation(MainEmulation)
}
