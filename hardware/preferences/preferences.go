// Package preferences defines the configurable options consulted by the
// hardware tree during Reset() and cartridge/drive attachment: region
// selection, RAM initialisation pattern, drive count, autofire parameters,
// undocumented-opcode support and VIC-II glue logic. Values are loaded from and saved to a TOML file using
// github.com/BurntSushi/toml rather than a hand-rolled "key :: value" format.
package preferences

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gopher64/gopher64/errors"
)

// Value wraps a single preference so that components needing a snapshot of
// "whatever the setting currently is" can do so via Get() without caring
// about the concrete type (e.g. cpu.Reset() reading RandomState to decide
// whether power-on registers are randomised or zeroed).
type Value struct {
	v interface{}
}

// Get returns the current value.
func (p *Value) Get() interface{} {
	return p.v
}

// Set assigns a new value.
func (p *Value) Set(v interface{}) {
	p.v = v
}

// Region selects the video/clock timing standard.
type Region string

const (
	PAL         Region = "PAL"
	NTSC        Region = "NTSC"
	NTSC_R56A   Region = "NTSC_R56A" // 6567R56A: preserves the documented off-by-one on line 0
	DrivePeriod        = "1MHz"
)

// Preferences collects every option consulted by Reset() and attach-time
// logic. Fields are plain typed values rather than Value wrappers wherever
// nothing in the hardware tree needs the untyped Get() escape hatch; Value is
// reserved for the one call site, CPU register randomisation.
type Preferences struct {
	Region Region `toml:"region"`

	// RandomState selects whether CPU/RAM power-on content is randomised
	// (true) or always zeroed (false, used by regression tests).
	RandomState Value `toml:"-"`

	// RAMInitPattern chooses the byte pattern used to fill RAM that isn't
	// being randomised: a repeating 0x00/0xFF pattern is closest to real C64
	// power-on behaviour on most boards.
	RAMInitPattern [2]byte `toml:"ram_init_pattern"`

	// DriveCount is the number of 1541 drives attached at boot (0, 1 or 2;
	// allows drive 8 and drive 9).
	DriveCount int `toml:"drive_count"`

	// AutofireFrequency is in Hz; zero disables autofire.
	AutofireFrequency float64 `toml:"autofire_frequency"`

	// AutofireBullets is the bullet count; -1 means infinite.
	AutofireBullets int `toml:"autofire_bullets"`

	// UndocumentedOpcodes enables the 6510's undefined opcodes.
	UndocumentedOpcodes bool `toml:"undocumented_opcodes"`

	// GlueLogic selects between the discrete and ASIC VIC-II timing variants.
	GlueLogic string `toml:"glue_logic"`
}

// NewPreferences is the preferred method of initialisation for Preferences.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()
	return p, nil
}

// SetDefaults resets every field to its power-on default.
func (p *Preferences) SetDefaults() {
	p.Region = PAL
	p.RandomState.Set(true)
	p.RAMInitPattern = [2]byte{0x00, 0xff}
	p.DriveCount = 1
	p.AutofireFrequency = 0
	p.AutofireBullets = -1
	p.UndocumentedOpcodes = true
	p.GlueLogic = "ASIC"
}

// Load replaces the current values with those found in the TOML file at
// path. A missing file is not an error; defaults are kept in that case.
func (p *Preferences) Load(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(path, p); err != nil {
		return errors.Errorf(errors.OptionInvalid, err)
	}
	return nil
}

// Save writes the current values to path as TOML.
func (p *Preferences) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(p)
}

// Validate checks that every field holds an in-range value, returning
// errors.OptionInvalid for the first violation found.
func (p *Preferences) Validate() error {
	switch p.Region {
	case PAL, NTSC, NTSC_R56A:
	default:
		return errors.Errorf(errors.OptionInvalid, p.Region)
	}
	if p.DriveCount < 0 || p.DriveCount > 2 {
		return errors.Errorf(errors.OptionInvalid, p.DriveCount)
	}
	if p.AutofireFrequency < 0 {
		return errors.Errorf(errors.OptionInvalid, p.AutofireFrequency)
	}
	return nil
}
