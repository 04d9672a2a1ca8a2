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

package main

import "github.com/veandco/go-sdl2/sdl"

// matrixPos names a row/column in the keyboard matrix's 8x8 grid.
type matrixPos struct {
	row, col int
}

const (
	rowShift = 1
	colShift = 7
)

// sdlToMatrix maps SDL2 keycodes (which equal the printable character's
// ASCII value for letters and digits) onto the matrix position a real C64
// keyboard asserts for the same key. Unlike cmd/c64run's terminal input,
// SDL delivers real press/release events, so held keys are tracked rather
// than tapped.
var sdlToMatrix = map[sdl.Keycode]matrixPos{
	sdl.K_1: {7, 0}, sdl.K_2: {7, 3}, sdl.K_3: {1, 0}, sdl.K_4: {1, 3},
	sdl.K_5: {2, 0}, sdl.K_6: {2, 3}, sdl.K_7: {3, 0}, sdl.K_8: {3, 3},
	sdl.K_9: {4, 0}, sdl.K_0: {4, 3},

	sdl.K_a: {1, 2}, sdl.K_b: {3, 4}, sdl.K_c: {2, 4}, sdl.K_d: {2, 2},
	sdl.K_e: {1, 6}, sdl.K_f: {2, 5}, sdl.K_g: {3, 2}, sdl.K_h: {3, 5},
	sdl.K_i: {4, 1}, sdl.K_j: {4, 2}, sdl.K_k: {4, 5}, sdl.K_l: {5, 2},
	sdl.K_m: {4, 4}, sdl.K_n: {4, 7}, sdl.K_o: {4, 6}, sdl.K_p: {5, 1},
	sdl.K_q: {7, 6}, sdl.K_r: {2, 1}, sdl.K_s: {1, 5}, sdl.K_t: {2, 6},
	sdl.K_u: {3, 6}, sdl.K_v: {3, 7}, sdl.K_w: {1, 1}, sdl.K_x: {2, 7},
	sdl.K_y: {3, 1}, sdl.K_z: {1, 7},

	sdl.K_SPACE:     {7, 4},
	sdl.K_RETURN:    {0, 1},
	sdl.K_BACKSPACE: {0, 0},
	sdl.K_LSHIFT:    {rowShift, colShift},
	sdl.K_RSHIFT:    {6, 4},
	sdl.K_LCTRL:     {7, 2},
	sdl.K_F1:        {0, 4},
	sdl.K_F3:        {0, 5},
	sdl.K_F5:        {0, 6},
	sdl.K_F7:        {0, 3},
	sdl.K_ESCAPE:    {7, 7}, // RUN/STOP
	sdl.K_MINUS:     {5, 3},
	sdl.K_EQUALS:    {5, 0},
	sdl.K_PERIOD:    {5, 4},
	sdl.K_COMMA:     {5, 7},
	sdl.K_SLASH:     {6, 7},
	sdl.K_SEMICOLON: {6, 2},
}
