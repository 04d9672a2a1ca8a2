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

// Command diskbrowse is an interactive directory listing for a D64 disk
// image, for inspecting what's on a disk without booting it - the
// equivalent of typing LOAD"$",8 and LIST, without needing a running
// machine at all.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jetsetilly/gopher64/cartridgeloader"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type model struct {
	diskName string
	diskID   string
	entries  []entry
	cursor   int
	err      error
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("diskbrowse: %v\n", m.err)
	}

	s := titleStyle.Render(fmt.Sprintf("0 \"%s\" %s", m.diskName, m.diskID)) + "\n\n"

	for i, e := range m.entries {
		line := fmt.Sprintf("%-4d \"%-16s\" %s", e.Blocks, e.Name, e.Type)
		if e.Locked {
			line += "<"
		}
		if !e.Closed {
			line = "*" + line
		} else {
			line = " " + line
		}

		switch {
		case i == m.cursor:
			s += selectedStyle.Render(line) + "\n"
		case e.Locked:
			s += lockedStyle.Render(line) + "\n"
		default:
			s += line + "\n"
		}
	}

	s += "\n" + dimStyle.Render(fmt.Sprintf("%d files    (q to quit)", len(m.entries)))

	return s
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: diskbrowse <d64 file>")
		os.Exit(1)
	}

	ld, err := cartridgeloader.NewLoaderFromFilename(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "diskbrowse:", err)
		os.Exit(1)
	}
	if ld.Format != cartridgeloader.FormatD64 {
		fmt.Fprintf(os.Stderr, "diskbrowse: %s is a %s image, only D64 directory listings are supported\n", os.Args[1], ld.Format)
		os.Exit(1)
	}

	raw := ld.Bytes()
	vol, err := readBAM(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "diskbrowse:", err)
		os.Exit(1)
	}
	entries, err := readDirectory(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "diskbrowse:", err)
		os.Exit(1)
	}

	m := model{diskName: vol.Name, diskID: vol.ID, entries: entries}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "diskbrowse:", err)
		os.Exit(1)
	}
}
