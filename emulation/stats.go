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

package emulation

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// StatsDashboard serves a live, browser-viewable dashboard of the Go
// runtime's own vitals (goroutine count, heap size, GC pauses) on the
// given address. It says nothing about emulated-machine state - it
// exists purely so a long Run session (the host goroutine plus one per
// attached drive, see Scheduler.Run) can be watched for goroutine leaks
// or GC pressure while it runs.
type StatsDashboard struct {
	mgr *statsview.Viewer
}

// NewStatsDashboard constructs a dashboard bound to addr (e.g.
// "localhost:18066") but does not start serving until Start is called.
func NewStatsDashboard(addr string) *StatsDashboard {
	mgr := statsview.New(viewer.WithAddr(addr))
	return &StatsDashboard{mgr: mgr}
}

// Start runs the dashboard's HTTP server in the background. It returns
// immediately; the server stops when the process exits, as statsview
// does not expose a graceful shutdown hook.
func (d *StatsDashboard) Start() {
	go d.mgr.Start()
}
