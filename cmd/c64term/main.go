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

// Command c64term renders the VIC-II's output inside a terminal, using
// half-block characters (each character cell carries two vertically
// stacked pixels, one in the foreground colour and one in the
// background) to get roughly square pixels out of a grid of character
// cells - the same trick a Game Boy's 160x144 screen needs to look right
// in a terminal, applied here to the C64's 320x200.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"github.com/jetsetilly/gopher64/audio"
	"github.com/jetsetilly/gopher64/emulation"
	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/machine"
	"github.com/jetsetilly/gopher64/hardware/memory"
	"github.com/jetsetilly/gopher64/hardware/vic"
)

func main() {
	app := cli.NewApp()
	app.Name = "c64term"
	app.Usage = "c64term [options]"
	app.Description = "a terminal preview of a Commodore 64's screen"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "basic", Usage: "path to the BASIC ROM image", Value: "basic.rom"},
		cli.StringFlag{Name: "kernal", Usage: "path to the KERNAL ROM image", Value: "kernal.rom"},
		cli.StringFlag{Name: "char", Usage: "path to the character ROM image", Value: "char.rom"},
		cli.StringFlag{Name: "region", Usage: "PAL, NTSC, PALN or Drean", Value: "PAL"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "c64term:", err)
		os.Exit(1)
	}
}

func loadROM(path string, dest []byte) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("c64term: reading %s: %w", path, err)
	}
	if len(data) != len(dest) {
		return fmt.Errorf("c64term: %s is %d bytes, expected %d", path, len(data), len(dest))
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
	return clocks.PAL, fmt.Errorf("c64term: unrecognised region %q", s)
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

	m := machine.NewMachine(region, roms)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("c64term: initialising terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("c64term: initialising terminal: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	engine := audio.NewEngine()
	scheduler := emulation.NewScheduler(m, region, engine)
	defer scheduler.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan tcell.Event, 16)
	go screen.ChannelEvents(events, ctx.Done())

	go func() {
		for ev := range events {
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					cancel()
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	go func() {
		err := scheduler.Run(ctx, func() {
			renderScreen(m, screen)
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "c64term:", err)
		}
		cancel()
	}()

	<-ctx.Done()
	return nil
}

// renderScreen downsamples the VIC-II's 320x200 framebuffer to fit the
// terminal's current character grid, using the upper-half-block glyph
// with distinct foreground and background colours to pack two source
// rows into one character cell.
func renderScreen(m *machine.Machine, screen tcell.Screen) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}

	// leave the bottom row for a status line
	rows--
	if rows <= 0 {
		return
	}

	xStep := float64(vic.FrameWidth) / float64(cols)
	yStep := float64(vic.FrameHeight) / float64(rows*2)

	for cy := 0; cy < rows; cy++ {
		topRow := int(float64(cy*2) * yStep)
		botRow := int(float64(cy*2+1) * yStep)
		if botRow >= vic.FrameHeight {
			botRow = vic.FrameHeight - 1
		}
		for cx := 0; cx < cols; cx++ {
			col := int(float64(cx) * xStep)
			if col >= vic.FrameWidth {
				col = vic.FrameWidth - 1
			}
			top := m.VIC.Frame[topRow][col] & 0x0f
			bot := m.VIC.Frame[botRow][col] & 0x0f
			style := tcell.StyleDefault.
				Foreground(rgbColor(top)).
				Background(rgbColor(bot))
			screen.SetContent(cx, cy, '▀', nil, style)
		}
	}

	status := fmt.Sprintf(" raster %3d  frame buffer %dx%d ", m.VIC.Raster(), vic.FrameWidth, vic.FrameHeight)
	for i, ch := range status {
		if i >= cols {
			break
		}
		screen.SetContent(i, rows, ch, nil, tcell.StyleDefault)
	}

	screen.Show()
}

func rgbColor(index byte) tcell.Color {
	rgb := palette[index]
	return tcell.NewRGBColor(int32(rgb[0]), int32(rgb[1]), int32(rgb[2]))
}
