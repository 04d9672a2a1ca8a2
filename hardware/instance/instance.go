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

// Package instance defines those parts of the emulation that might change
// from instance to instance of the machine type, but is not actually the
// machine itself.
//
// Particularly useful when running more than one instance of the emulation
// in parallel (eg. a host and a rewind-search worker comparing snapshots).
package instance

import (
	"github.com/jetsetilly/gopher64/prefs"
	"github.com/jetsetilly/gopher64/random"
)

// Instance defines those parts of the emulation that might change between
// different instantiations of the machine, but is not the machine itself.
type Instance struct {
	Prefs  *prefs.Preferences
	Random *random.Random
}

// NewInstance is the preferred method of initialisation for the Instance
// type. prefsFilename may be empty, in which case preferences are not
// disk-backed (see prefs.NewPreferences).
func NewInstance(source random.Source, prefsFilename string) (*Instance, error) {
	ins := &Instance{
		Random: random.NewRandom(source),
	}

	var err error
	ins.Prefs, err = prefs.NewPreferences(prefsFilename)
	if err != nil {
		return nil, err
	}

	return ins, nil
}

// Normalise puts the instance into a known, deterministic default state.
// Used by regression tests and by the rewind system's re-run-to-verify step,
// both of which require the same starting conditions on every run.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
	ins.Prefs.SetDefaults()
}
