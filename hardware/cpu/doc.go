// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package cpu emulates the 6510 microprocessor at the heart of the C64. The
// 6510 is a 6502 core with an additional 6-bit I/O port built into the chip
// at addresses $0000/$0001 (the data-direction register and the port data
// itself), used to drive the PLA bank-switching lines and the datassette
// motor/sense/data lines. Like all 8-bit processors of the era, it executes
// instructions according to the single byte value read from an address
// pointed to by the program counter. This single byte is the opcode and is
// looked up in the instruction table. The instruction definition for that
// opcode is then used to move execution of the program forward.
//
// NewCPU takes the environment and an implementation of cpubus.Memory. The Memory interface defines the memory operations required by
// the CPU. See the cpubus package for details.
//
// The bread-and-butter of the CPU type is the ExecuteInstruction() function.
// Its sole argument is a callback function to be called at every cycle
// boundary of the instruction.
//
// Let's assume mem is an implementation of cpubus.Memory loaded with 6510
// instructions.
//
//	mc := cpu.NewCPU(env, mem)
//
//	numCycles := 0
//	numInstructions := 0
//
//	for {
//		mc.ExecuteInstruction(func() error {
//			numCycles++
//			return nil
//		})
//		numInstructions++
//	}
//
// The above program does nothing interesting except to show how
// ExecuteInstruction() can be used to pump information to a callback
// function. The C64 emulation uses this to step the VIC-II, the two CIAs,
// the IEC bus and the drives once for every CPU cycle, since all of those
// share the CPU's own clock (unlike the VCS's TIA, which runs at three
// times the 6507's rate).
//
// The CPU type contains some public fields that are worthy of mention. The
// LastResult field can be probed for information about the last instruction
// executed, or about the current instruction being executed if accessed from
// ExecuteInstruction()'s callback function. See the execution package for
// more information. Very useful for debuggers.
//
// The NoFlowControl flag prevents the CPU from honouring "flow control"
// functions (ie. JMP, BNE, BEQ, etc.). See instructions package for
// classifications.
package cpu
