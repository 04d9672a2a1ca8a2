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

// Package cartridgeloader abstracts all the ways removable media gets into
// the emulation: disk images (D64, G64), tape images (TAP), and loose
// programs (PRG, P00, T64 archives). It only ever reads bytes and decides
// what they are; turning those bytes into something hardware/disk or the
// CPU can act on is this package's job, actually running them is not.
package cartridgeloader

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/gopher64/errors"
	"github.com/jetsetilly/gopher64/logger"
)

// Loader reads a file (or an in-memory image) once, fully, and remembers
// enough about it - its name, its detected Format, a content hash for
// identification - that the rest of the emulator never has to touch the
// filesystem again for this piece of media.
type Loader struct {
	Filename string
	Format   Format
	HashSHA1 string

	data *bytes.Buffer
	raw  []byte
}

// NewLoaderFromFilename opens filename, sniffs its Format from extension
// and, where the format allows it, a magic header, and reads it fully into
// memory. Disk and tape images are small enough (at most a few hundred K)
// that streaming was never worth the complexity the 2600-era loader this
// is adapted from needed for multi-megabyte movie captures.
func NewLoaderFromFilename(filename string) (Loader, error) {
	if strings.TrimSpace(filename) == "" {
		return Loader{}, errors.Errorf("cartridgeloader: no filename")
	}

	f, err := os.Open(filename)
	if err != nil {
		return Loader{}, errors.Errorf("cartridgeloader: %v", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return Loader{}, errors.Errorf("cartridgeloader: %v", err)
	}

	return newLoader(filename, raw)
}

// NewLoaderFromData wraps an in-memory image (eg. one obtained with
// go:embed) as a Loader, as though it had been read from name.
func NewLoaderFromData(name string, raw []byte) (Loader, error) {
	if len(raw) == 0 {
		return Loader{}, errors.Errorf("cartridgeloader: embedded data for %s is empty", name)
	}
	return newLoader(name, raw)
}

func newLoader(name string, raw []byte) (Loader, error) {
	format := sniff(name, raw)
	if format == FormatUnknown {
		logger.Log("cartridgeloader", fmt.Sprintf("could not identify format of %s, treating as raw PRG", name))
		format = FormatPRG
	}

	ld := Loader{
		Filename: name,
		Format:   format,
		HashSHA1: fmt.Sprintf("%x", sha1.Sum(raw)),
		data:     bytes.NewBuffer(raw),
		raw:      raw,
	}

	logger.Log("cartridgeloader", fmt.Sprintf("loaded %s as %s (%d bytes)", filepath.Base(name), format, len(raw)))

	return ld, nil
}

// Bytes returns the entire loaded image. Format-specific loaders
// (DiskImage, Program, TapeImage) should be preferred; this is for the
// cases - snapshots, CRT cartridges - where the whole file is consumed as
// one opaque unit.
func (ld Loader) Bytes() []byte {
	return ld.raw
}

// Read implements io.Reader over the loaded image.
func (ld Loader) Read(p []byte) (int, error) {
	return ld.data.Read(p)
}

var _ io.Reader = Loader{}
