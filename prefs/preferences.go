// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import "fmt"

// Preferences aggregates every configurable value of one machine instance.
// The VIC/CIA chip revisions and the random-RAM-at-reset behaviour are all
// config, not compile-time constants, so that host software (and regression
// tests) can pin them down.
type Preferences struct {
	disk *Disk

	// RandomState selects whether the CPU's registers power on with
	// indeterminate values (true, matching real hardware) or with fixed
	// values (false, for reproducible regression tests). RAM is not
	// affected.
	RandomState Bool

	// Region selects PAL/NTSC/PAL-N/drive timings (hardware/clocks).
	Region String

	// VICRevision and CIARevision name the VIC-II and CIA chip revisions.
	// They are stored and saved, but no VIC-II or CIA behaviour reads them.
	VICRevision String
	CIARevision String
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. filename may be empty, in which case the preferences are
// not bound to a Disk and Load/Save are no-ops.
func NewPreferences(filename string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	if filename == "" {
		return p, nil
	}

	dsk, err := NewDisk(filename)
	if err != nil {
		return nil, fmt.Errorf(Prefs, err)
	}
	p.disk = dsk

	for key, v := range map[string]Preference{
		"random.state": &p.RandomState,
		"region":       &p.Region,
		"vic.revision": &p.VICRevision,
		"cia.revision": &p.CIARevision,
	} {
		if err := dsk.Add(key, v); err != nil {
			return nil, fmt.Errorf(Prefs, err)
		}
	}

	return p, nil
}

// SetDefaults resets every value to the machine's power-on default.
func (p *Preferences) SetDefaults() {
	p.RandomState.Set(true)
	p.Region.Set("PAL")
	p.VICRevision.Set("6569R3")
	p.CIARevision.Set("MOS6526")
}

// Load reads preference values from disk, if this instance is disk-backed.
func (p *Preferences) Load() error {
	if p.disk == nil {
		return nil
	}
	return p.disk.Load()
}

// Save writes preference values to disk, if this instance is disk-backed.
func (p *Preferences) Save() error {
	if p.disk == nil {
		return nil
	}
	return p.disk.Save()
}
