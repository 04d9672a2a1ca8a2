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

package execution

import "github.com/jetsetilly/gopher64/hardware/cpu/instructions"

// Result records the state of a single instruction's execution on the CPU,
// built up one cycle at a time as ExecuteInstruction runs.
//
// Final indicates whether the last cycle of the instruction has been
// executed; a Result with Final false is still in progress and several
// fields are not yet meaningful. Defn is nil until the opcode byte itself
// has been read.
type Result struct {
	Defn *instructions.Definition

	// number of bytes read during decode so far. equal to Defn.Bytes once
	// decode is complete
	ByteCount int

	// the address the instruction started at
	Address uint16

	// the operand, where the instruction has one. for a branch this is the
	// raw relative offset, not the resolved target address
	InstructionData uint16

	// actual cycles taken. usually equal to Defn.Cycles but branches and
	// page-crossing addressing modes can add one or two more
	Cycles int

	PageFault bool

	CPUBug Bug

	// set if a memory access during the instruction returned an error
	Error string

	// valid only when Defn.IsBranch() is true
	BranchSuccess bool

	Final bool
}

// Reset clears the result so it can be reused for the next instruction.
func (r *Result) Reset() {
	r.Defn = nil
	r.ByteCount = 0
	r.Address = 0
	r.InstructionData = 0
	r.Cycles = 0
	r.PageFault = false
	r.CPUBug = NoBug
	r.Error = ""
	r.BranchSuccess = false
	r.Final = false
}
