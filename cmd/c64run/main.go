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

// Command c64run is a headless front end: it boots a machine from ROM
// images, optionally attaches a cartridge and up to two VC1541 drives,
// and plays audio live or to a wav file while the terminal itself (put
// into cbreak mode by rawterm.go) supplies keyboard input.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli"

	"github.com/jetsetilly/gopher64/audio"
	"github.com/jetsetilly/gopher64/cartridgeloader"
	"github.com/jetsetilly/gopher64/emulation"
	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/machine"
	"github.com/jetsetilly/gopher64/hardware/memory"
	"github.com/jetsetilly/gopher64/hardware/memory/cartridge"
	"github.com/jetsetilly/gopher64/logger"
)

func main() {
	app := cli.NewApp()
	app.Name = "c64run"
	app.Usage = "c64run [options]"
	app.Description = "a headless Commodore 64 emulator"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "basic", Usage: "path to the BASIC ROM image", Value: "basic.rom"},
		cli.StringFlag{Name: "kernal", Usage: "path to the KERNAL ROM image", Value: "kernal.rom"},
		cli.StringFlag{Name: "char", Usage: "path to the character ROM image", Value: "char.rom"},
		cli.StringFlag{Name: "region", Usage: "PAL, NTSC, PALN or Drean", Value: "PAL"},
		cli.StringFlag{Name: "cart", Usage: "path to a CRT cartridge image to attach"},
		cli.StringFlag{Name: "drive8", Usage: "path to a VC1541 ROM image to attach as device 8"},
		cli.StringFlag{Name: "drive9", Usage: "path to a VC1541 ROM image to attach as device 9"},
		cli.StringFlag{Name: "disk8", Usage: "path to a D64/G64 image to mount in drive 8's slot"},
		cli.StringFlag{Name: "disk9", Usage: "path to a D64/G64 image to mount in drive 9's slot"},
		cli.BoolFlag{Name: "audio", Usage: "play audio through the host's speaker"},
		cli.StringFlag{Name: "wav", Usage: "record audio to the given wav file"},
		cli.StringFlag{Name: "prefs", Usage: "preferences file (empty disables disk-backed preferences)"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "c64run:", err)
		os.Exit(1)
	}
}

func loadROM(path string, dest []byte) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("c64run: reading %s: %w", path, err)
	}
	if len(data) != len(dest) {
		return fmt.Errorf("c64run: %s is %d bytes, expected %d", path, len(data), len(dest))
	}
	copy(dest, data)
	return nil
}

func parseRegion(s string) (clocks.Region, error) {
	switch s {
	case "PAL":
		return clocks.PAL, nil
	case "NTSC":
		return clocks.NTSC, nil
	case "PALN":
		return clocks.PALN, nil
	case "Drean":
		return clocks.Drean, nil
	}
	return clocks.PAL, fmt.Errorf("c64run: unrecognised region %q", s)
}

func run(c *cli.Context) error {
	region, err := parseRegion(c.String("region"))
	if err != nil {
		return err
	}

	var roms memory.ROMs
	if err := loadROM(c.String("basic"), roms.Basic[:]); err != nil {
		return err
	}
	if err := loadROM(c.String("kernal"), roms.Kernal[:]); err != nil {
		return err
	}
	if err := loadROM(c.String("char"), roms.Char[:]); err != nil {
		return err
	}

	if c.String("drive9") != "" && c.String("drive8") == "" {
		return fmt.Errorf("c64run: -drive9 given without -drive8 (device 8 must be attached first)")
	}
	var driveROMs [][0x4000]byte
	for _, flag := range []string{"drive8", "drive9"} {
		path := c.String(flag)
		if path == "" {
			break
		}
		var rom [0x4000]byte
		if err := loadROM(path, rom[:]); err != nil {
			return err
		}
		driveROMs = append(driveROMs, rom)
	}

	m := machine.NewMachine(region, roms, driveROMs...)

	if cartPath := c.String("cart"); cartPath != "" {
		ld, err := cartridgeloader.NewLoaderFromFilename(cartPath)
		if err != nil {
			return err
		}
		cart, err := cartridge.NewFromCRT(ld.Bytes())
		if err != nil {
			return fmt.Errorf("c64run: loading cartridge: %w", err)
		}
		m.AttachCartridge(cart)
	}

	for i, flag := range []string{"disk8", "disk9"} {
		path := c.String(flag)
		if path == "" {
			continue
		}
		if m.Drives[i] == nil {
			return fmt.Errorf("c64run: %s given but no drive ROM attached for device %d", flag, 8+i)
		}
		ld, err := cartridgeloader.NewLoaderFromFilename(path)
		if err != nil {
			return err
		}
		dsk, err := ld.DiskImage()
		if err != nil {
			return fmt.Errorf("c64run: mounting %s: %w", path, err)
		}
		m.Drives[i].Disk = dsk
	}

	var sinks []audio.Sink
	if c.Bool("audio") {
		live, err := audio.NewLiveSink()
		if err != nil {
			return fmt.Errorf("c64run: opening audio device: %w", err)
		}
		sinks = append(sinks, live)
	}
	if wavPath := c.String("wav"); wavPath != "" {
		dump, err := audio.NewWavDumpSink(wavPath)
		if err != nil {
			return err
		}
		sinks = append(sinks, dump)
	}

	engine := audio.NewEngine()
	scheduler := emulation.NewScheduler(m, region, engine, sinks...)
	defer scheduler.Close()

	rt, err := newRawTerm()
	if err != nil {
		logger.Log("c64run", fmt.Sprintf("raw terminal mode unavailable, keyboard input disabled: %v", err))
	} else {
		defer rt.restore()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	quit := make(chan struct{})
	if rt != nil {
		go func() {
			readKeys(m.Keyboard, &m.Restore, quit)
			cancel()
		}()
	}
	defer close(quit)

	fmt.Fprintf(os.Stderr, "c64run: running (%v, ctrl-c to quit)\n", region)
	return scheduler.Run(ctx, nil)
}
