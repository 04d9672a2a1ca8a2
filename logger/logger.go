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

// Package logger implements a small ring-buffer logger used to report
// runtime anomalies (CPU jams, disk write to a non-existent track, etc) that
// are recoverable and so don't interrupt the emulation. errors.Errorf is for
// conditions the caller must handle; logger.Log is for diagnostics the
// caller may ignore.
package logger

import (
	"fmt"
	"io"
	"sync"
)

// Permission allows a caller to decide, at the point of logging, whether an
// entry should be recorded at all. This is used by subsystems that want to
// throttle noisy diagnostics (eg. an unmapped disk-track access repeated
// every cycle).
type Permission interface {
	AllowLogging() bool
}

type allowPermission struct{}

func (allowPermission) AllowLogging() bool { return true }

// Allow is the permission value used when there is no reason to suppress a
// log entry.
var Allow = allowPermission{}

type entry struct {
	tag    string
	detail string
}

func (e entry) String() string {
	return fmt.Sprintf("%s: %s", e.tag, e.detail)
}

// Logger is a bounded ring buffer of log entries.
type Logger struct {
	mu      sync.Mutex
	entries []entry
	max     int
}

// NewLogger is the preferred method of initialisation for the Logger type.
// The buffer never holds more than max entries; the oldest entry is dropped
// once the buffer is full.
func NewLogger(max int) *Logger {
	return &Logger{max: max}
}

// Clear empties the log.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

func detailString(detail interface{}) string {
	switch d := detail.(type) {
	case error:
		return d.Error()
	case fmt.Stringer:
		return d.String()
	default:
		return fmt.Sprintf("%v", d)
	}
}

// Log records detail under tag, subject to perm allowing it.
func (l *Logger) Log(perm Permission, tag string, detail interface{}) {
	if perm != nil && !perm.AllowLogging() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry{tag: tag, detail: detailString(detail)})
	if l.max > 0 && len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// Logf is a convenience wrapper around Log that formats detail with
// fmt.Sprintf before recording it.
func (l *Logger) Logf(perm Permission, tag string, format string, args ...interface{}) {
	l.Log(perm, tag, fmt.Sprintf(format, args...))
}

// Write the entire log to w, one entry per line.
func (l *Logger) Write(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		fmt.Fprintf(w, "%s\n", e)
	}
}

// Tail writes the most recent n entries to w, one entry per line. A request
// for more entries than exist, or for zero entries, is handled gracefully.
func (l *Logger) Tail(w io.Writer, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 {
		return
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	for _, e := range l.entries[len(l.entries)-n:] {
		fmt.Fprintf(w, "%s\n", e)
	}
}

// central is the default, package-level logger used by every subsystem that
// doesn't hold its own Logger instance.
var central = NewLogger(1000)

// Log records detail against the central logger.
func Log(tag string, detail interface{}) {
	central.Log(Allow, tag, detail)
}

// Logf records a formatted detail against the central logger.
func Logf(tag string, format string, args ...interface{}) {
	central.Logf(Allow, tag, format, args...)
}

// Write the central logger's entries to w.
func Write(w io.Writer) {
	central.Write(w)
}

// Tail writes the central logger's most recent n entries to w.
func Tail(w io.Writer, n int) {
	central.Tail(w, n)
}

// Clear empties the central logger.
func Clear() {
	central.Clear()
}
