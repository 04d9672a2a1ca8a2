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

// Command c64view is a minimal reference video and audio front end: an
// SDL2 window showing the VIC-II's output at its native 320x200
// resolution, scaled up, with SDL2 itself supplying both the keyboard
// events and the audio queue. It is not a debugger - for that, a real
// Commodore 64 front end would reach for a framework far bigger than
// this package wants to be.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gopher64/audio"
	"github.com/jetsetilly/gopher64/cartridgeloader"
	"github.com/jetsetilly/gopher64/emulation"
	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/machine"
	"github.com/jetsetilly/gopher64/hardware/memory"
	"github.com/jetsetilly/gopher64/hardware/memory/cartridge"
	"github.com/jetsetilly/gopher64/hardware/vic"
)

const pixelScale = 2

func main() {
	app := cli.NewApp()
	app.Name = "c64view"
	app.Usage = "c64view [options]"
	app.Description = "a windowed Commodore 64 emulator front end"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "basic", Usage: "path to the BASIC ROM image", Value: "basic.rom"},
		cli.StringFlag{Name: "kernal", Usage: "path to the KERNAL ROM image", Value: "kernal.rom"},
		cli.StringFlag{Name: "char", Usage: "path to the character ROM image", Value: "char.rom"},
		cli.StringFlag{Name: "region", Usage: "PAL, NTSC, PALN or Drean", Value: "PAL"},
		cli.StringFlag{Name: "cart", Usage: "path to a CRT cartridge image to attach"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "c64view:", err)
		os.Exit(1)
	}
}

func loadROM(path string, dest []byte) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("c64view: reading %s: %w", path, err)
	}
	if len(data) != len(dest) {
		return fmt.Errorf("c64view: %s is %d bytes, expected %d", path, len(data), len(dest))
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
	return clocks.PAL, fmt.Errorf("c64view: unrecognised region %q", s)
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

	if cartPath := c.String("cart"); cartPath != "" {
		ld, err := cartridgeloader.NewLoaderFromFilename(cartPath)
		if err != nil {
			return err
		}
		cart, err := cartridge.NewFromCRT(ld.Bytes())
		if err != nil {
			return fmt.Errorf("c64view: loading cartridge: %w", err)
		}
		m.AttachCartridge(cart)
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("c64view: initialising SDL2: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(
		"c64view",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		vic.FrameWidth*pixelScale, vic.FrameHeight*pixelScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return fmt.Errorf("c64view: creating window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("c64view: creating renderer: %w", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		vic.FrameWidth, vic.FrameHeight,
	)
	if err != nil {
		return fmt.Errorf("c64view: creating texture: %w", err)
	}
	defer texture.Destroy()

	audioSink, err := newSDLAudioSink()
	if err != nil {
		return err
	}

	engine := audio.NewEngine()
	scheduler := emulation.NewScheduler(m, region, engine, audioSink)
	defer scheduler.Close()

	pixels := make([]byte, vic.FrameWidth*vic.FrameHeight*4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		err := scheduler.Run(ctx, func() {
			renderFrame(m, texture, renderer, pixels)
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "c64view:", err)
		}
		cancel()
	}()

	pumpEvents(ctx, cancel, m)
	return nil
}

// renderFrame copies the VIC-II's indexed framebuffer into the SDL
// texture and presents it. Called from the scheduler's own frame
// goroutine, which is fine since SDL2's renderer calls here are the only
// ones this program makes off the main thread - sdl.Main isn't used
// because this is a headless-capable package, not a GUI app bundle.
func renderFrame(m *machine.Machine, texture *sdl.Texture, renderer *sdl.Renderer, pixels []byte) {
	for y := 0; y < vic.FrameHeight; y++ {
		for x := 0; x < vic.FrameWidth; x++ {
			idx := m.VIC.Frame[y][x] & 0x0f
			rgb := palette[idx]
			o := (y*vic.FrameWidth + x) * 4
			pixels[o+0] = 0xff
			pixels[o+1] = rgb[2]
			pixels[o+2] = rgb[1]
			pixels[o+3] = rgb[0]
		}
	}
	texture.Update(nil, pixels, vic.FrameWidth*4)
	renderer.Clear()
	renderer.Copy(texture, nil, nil)
	renderer.Present()
}

func pumpEvents(ctx context.Context, cancel func(), m *machine.Machine) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		for event := sdl.WaitEventTimeout(50); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				cancel()
				return
			case *sdl.KeyboardEvent:
				pos, ok := sdlToMatrix[e.Keysym.Sym]
				if !ok {
					continue
				}
				if e.Type == sdl.KEYDOWN {
					m.Keyboard.Down(pos.row, pos.col)
				} else if e.Type == sdl.KEYUP {
					m.Keyboard.Up(pos.row, pos.col)
				}
			}
		}
	}
}
