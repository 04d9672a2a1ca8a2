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

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/gopher64/errors"
)

// error formats used by this package, taken from the module's message table
const (
	Prefs         = errors.Prefs
	PrefsNoFile   = errors.PrefsNoFile
	PrefsNotValid = errors.PrefsNotValid
)

// WarningBoilerPlate is written as the first line of every prefs file.
const WarningBoilerPlate = "; this file is written by gopher64 - edits may be overwritten"

const separator = " :: "

// Disk binds named Preference values to a key=value file. Several Disk
// instances may point at the same file; Save() merges its own registered
// keys into whatever is already on disk rather than clobbering keys it
// doesn't know about.
type Disk struct {
	filename string
	keys     []string
	entries  map[string]Preference
}

// NewDisk is the preferred method of initialisation for the Disk type. It
// does not touch the filesystem; call Load() to populate it from an
// existing file.
func NewDisk(filename string) (*Disk, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf(Prefs, "empty filename")
	}
	return &Disk{
		filename: filename,
		entries:  make(map[string]Preference),
	}, nil
}

// Add registers a preference under key. It is an error to register the same
// key twice.
func (d *Disk) Add(key string, v Preference) error {
	if _, ok := d.entries[key]; ok {
		return fmt.Errorf(Prefs, fmt.Sprintf("duplicate key %q", key))
	}
	d.entries[key] = v
	d.keys = append(d.keys, key)
	return nil
}

func (d *Disk) readRaw() (map[string]string, error) {
	raw := make(map[string]string)

	f, err := os.Open(d.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return raw, nil
		}
		return nil, fmt.Errorf(PrefsNoFile, d.filename)
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := s.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ";") {
			continue
		}
		parts := strings.SplitN(line, separator, 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf(PrefsNotValid, d.filename)
		}
		raw[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf(Prefs, err)
	}

	return raw, nil
}

// Save writes every key known to this Disk, merged with whatever other keys
// are already present in the file, sorted alphabetically.
func (d *Disk) Save() error {
	raw, err := d.readRaw()
	if err != nil {
		return err
	}

	for key, v := range d.entries {
		raw[key] = v.String()
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(d.filename)
	if err != nil {
		return fmt.Errorf(Prefs, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s\n", WarningBoilerPlate); err != nil {
		return fmt.Errorf(Prefs, err)
	}
	for _, k := range keys {
		if _, err := fmt.Fprintf(f, "%s%s%s\n", k, separator, raw[k]); err != nil {
			return fmt.Errorf(Prefs, err)
		}
	}

	return nil
}

// Load reads the file and applies every value it finds to the matching
// registered Preference. Keys present in the file but not registered with
// this Disk are ignored (they will still round-trip through Save).
func (d *Disk) Load() error {
	raw, err := d.readRaw()
	if err != nil {
		return err
	}

	for _, key := range d.keys {
		s, ok := raw[key]
		if !ok {
			continue
		}
		if err := d.entries[key].Set(s); err != nil {
			return fmt.Errorf(Prefs, err)
		}
	}

	return nil
}
