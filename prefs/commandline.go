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
	"sort"
	"strings"
)

// a commandLineGroup is one "-prefs" command line argument, parsed into its
// constituent key/value pairs. Entries that don't parse as "key::value" are
// silently dropped; the rest survive.
type commandLineGroup struct {
	values map[string]string
}

func newCommandLineGroup(s string) commandLineGroup {
	g := commandLineGroup{values: make(map[string]string)}

	for _, p := range strings.Split(s, ";") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kv := strings.SplitN(p, "::", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.TrimSpace(kv[0])
		if k == "" {
			continue
		}
		g.values[k] = strings.TrimSpace(kv[1])
	}

	return g
}

func (g commandLineGroup) String() string {
	keys := make([]string, 0, len(g.values))
	for k := range g.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"::"+g.values[k])
	}
	return strings.Join(parts, "; ")
}

// commandLineStack allows nested invocations (eg. a script that itself
// launches the emulator with -prefs) to each see only their own group of
// command-line preference overrides.
var commandLineStack []commandLineGroup

// PushCommandLineStack parses a "-prefs" style argument of the form
// "key::value; key2::value2" and pushes it onto the stack.
func PushCommandLineStack(s string) {
	commandLineStack = append(commandLineStack, newCommandLineGroup(s))
}

// PopCommandLineStack removes and renders the most recently pushed group.
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}
	g := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]
	return g.String()
}

// GetCommandLinePref looks up key in the group currently on top of the
// stack, without popping it.
func GetCommandLinePref(key string) (bool, string) {
	if len(commandLineStack) == 0 {
		return false, ""
	}
	v, ok := commandLineStack[len(commandLineStack)-1].values[key]
	return ok, v
}
