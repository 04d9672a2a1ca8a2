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

// Package prefs implements typed, persistent configuration values. A Disk
// binds named Preference values to a key=value file on disk; invalid values
// are surfaced as plain Go errors from Set(), at the point the invalid value
// was supplied, never later.
package prefs

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the type preferences are set from and rendered to. It is
// deliberately untyped (an alias for interface{}) because the concrete type
// varies: bool/string for direct API use, string when loaded from disk.
type Value interface{}

// Preference is implemented by every typed preference value (Bool, Int,
// Float, String, Generic) and is what a Disk actually stores.
type Preference interface {
	Set(Value) error
	String() string
}

// Bool is a persistent boolean preference. An unrecognised string value is
// treated as false rather than a configuration error, matching the
// tolerant parsing used elsewhere in this package for malformed dotfiles.
type Bool struct {
	value bool
}

func (v *Bool) Set(s Value) error {
	switch t := s.(type) {
	case bool:
		v.value = t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes":
			v.value = true
		default:
			v.value = false
		}
	default:
		return fmt.Errorf("prefs: cannot set bool preference with %T", s)
	}
	return nil
}

func (v *Bool) Value() bool { return v.value }

func (v *Bool) String() string {
	if v.value {
		return "true"
	}
	return "false"
}

// Int is a persistent integer preference.
type Int struct {
	value int
}

func (v *Int) Set(s Value) error {
	switch t := s.(type) {
	case int:
		v.value = t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
		v.value = n
	default:
		return fmt.Errorf("prefs: cannot set int preference with %T", s)
	}
	return nil
}

func (v *Int) Value() int { return v.value }

func (v *Int) String() string { return strconv.Itoa(v.value) }

// Float is a persistent floating point preference.
type Float struct {
	value float64
}

func (v *Float) Set(s Value) error {
	switch t := s.(type) {
	case float64:
		v.value = t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
		v.value = f
	default:
		return fmt.Errorf("prefs: cannot set float preference with %T", s)
	}
	return nil
}

func (v *Float) Value() float64 { return v.value }

func (v *Float) String() string { return strconv.FormatFloat(v.value, 'g', -1, 64) }

// String is a persistent string preference, optionally bounded to a maximum
// length.
type String struct {
	value  string
	maxLen int
}

func (v *String) Set(s Value) error {
	str, ok := s.(string)
	if !ok {
		return fmt.Errorf("prefs: cannot set string preference with %T", s)
	}
	v.value = str
	v.crop()
	return nil
}

// SetMaxLen bounds the string to n bytes. A value of zero removes the bound
// but does not restore a string that has already been cropped.
func (v *String) SetMaxLen(n int) {
	v.maxLen = n
	v.crop()
}

func (v *String) crop() {
	if v.maxLen > 0 && len(v.value) > v.maxLen {
		v.value = v.value[:v.maxLen]
	}
}

func (v *String) Value() string { return v.value }

func (v *String) String() string { return v.value }

// Generic adapts an arbitrary setter/getter pair to the Preference
// interface. Useful for preferences backed by fields that live elsewhere
// (eg. a width/height pair), rather than a dedicated struct field.
type Generic struct {
	setter func(Value) error
	getter func() Value
}

// NewGeneric is the preferred method of initialisation for the Generic type.
func NewGeneric(setter func(Value) error, getter func() Value) *Generic {
	return &Generic{setter: setter, getter: getter}
}

func (g *Generic) Set(v Value) error { return g.setter(v) }

func (g *Generic) String() string { return fmt.Sprintf("%v", g.getter()) }
