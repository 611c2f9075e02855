// Package emu provides functional LC-3 emulation.
package emu

import (
	"fmt"

	"lc3vm/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true if the instruction was a HALT trap, or if the
	// machine had already stopped before this step (nothing executed).
	Halted bool

	// Err is set if decoding or executing the instruction failed. A
	// non-nil Err is always fatal: the driver stops.
	Err error
}

// Machine holds LC-3 architectural state and executes one instruction at
// a time. It owns the register file, the address space, and the
// execution units that implement each instruction family.
type Machine struct {
	regFile *RegFile
	memory  *Memory
	decoder *insts.Decoder

	alu    *ALU
	branch *BranchUnit
	lsu    *LoadStoreUnit
	trap   *TrapHandler

	running          bool
	instructionCount uint64
}

// MachineOption is a functional option for configuring a Machine.
type MachineOption func(*Machine)

// WithConsole wires the console used by GETC/OUT/PUTS/IN/PUTSP.
func WithConsole(console Console) MachineOption {
	return func(m *Machine) {
		m.trap = NewTrapHandler(m.regFile, m.memory, console)
	}
}

// NewMachine creates a Machine in its start-of-day state: registers
// zeroed, PC at 0x3000, flag ZRO, memory zero-initialized, running true.
func NewMachine(opts ...MachineOption) *Machine {
	regFile := NewRegFile()
	memory := NewMemory()

	m := &Machine{
		regFile: regFile,
		memory:  memory,
		decoder: insts.NewDecoder(),
		alu:     NewALU(regFile),
		branch:  NewBranchUnit(regFile),
		lsu:     NewLoadStoreUnit(regFile, memory),
		running: true,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.trap == nil {
		m.trap = NewTrapHandler(regFile, memory, discardConsole{})
	}

	return m
}

// RegFile returns the machine's register file.
func (m *Machine) RegFile() *RegFile {
	return m.regFile
}

// Memory returns the machine's address space.
func (m *Machine) Memory() *Memory {
	return m.memory
}

// Running reports whether HALT has been executed yet.
func (m *Machine) Running() bool {
	return m.running
}

// InstructionCount returns the number of instructions executed so far.
func (m *Machine) InstructionCount() uint64 {
	return m.instructionCount
}

// LoadImage overlays an object image onto memory. PC is left at its
// start-of-day value (0x3000) regardless of the image's origin, per the
// ISA's canonical entry point.
func (m *Machine) LoadImage(words []uint16) error {
	return m.memory.LoadImage(words)
}

// Step fetches, decodes, and executes one instruction.
func (m *Machine) Step() StepResult {
	if !m.running {
		return StepResult{Halted: true}
	}

	word := m.memory.Read(m.regFile.PC)
	m.regFile.PC++

	inst, err := m.decoder.Decode(word)
	if err != nil {
		m.running = false
		return StepResult{Err: fmt.Errorf("decode at pc=%#04x: %w", m.regFile.PC-1, err)}
	}

	result := m.execute(inst)
	m.instructionCount++
	if result.Halted {
		m.running = false
	}
	if result.Err != nil {
		m.running = false
	}
	return result
}

// Run executes instructions until HALT or a fatal error.
func (m *Machine) Run() error {
	for m.running {
		result := m.Step()
		if result.Err != nil {
			return result.Err
		}
	}
	return nil
}

// execute dispatches a decoded instruction to the appropriate execution
// unit. PC has already been incremented by Step, so PC-relative offsets
// are added to the post-increment PC as the ISA requires.
func (m *Machine) execute(inst insts.Instruction) StepResult {
	switch inst.Op {
	case insts.OpBR:
		m.branch.BR(inst.N, inst.Z, inst.P, inst.Off9)
	case insts.OpADDReg:
		m.alu.AddReg(inst.DR, inst.SR1, inst.SR2)
	case insts.OpADDImm:
		m.alu.AddImm(inst.DR, inst.SR1, inst.Imm5)
	case insts.OpANDReg:
		m.alu.AndReg(inst.DR, inst.SR1, inst.SR2)
	case insts.OpANDImm:
		m.alu.AndImm(inst.DR, inst.SR1, inst.Imm5)
	case insts.OpNOT:
		m.alu.Not(inst.DR, inst.SR)
	case insts.OpLD:
		m.lsu.LD(inst.DR, m.regFile.PC+inst.Off9)
	case insts.OpLDI:
		m.lsu.LDI(inst.DR, m.regFile.PC+inst.Off9)
	case insts.OpLDR:
		m.lsu.LDR(inst.DR, m.regFile.ReadReg(inst.BaseR)+inst.Off6)
	case insts.OpST:
		m.lsu.ST(inst.SR, m.regFile.PC+inst.Off9)
	case insts.OpSTI:
		m.lsu.STI(inst.SR, m.regFile.PC+inst.Off9)
	case insts.OpSTR:
		m.lsu.STR(inst.SR, m.regFile.ReadReg(inst.BaseR)+inst.Off6)
	case insts.OpLEA:
		m.lsu.LEA(inst.DR, m.regFile.PC+inst.Off9)
	case insts.OpJMP, insts.OpRET:
		m.branch.JMP(inst.BaseR)
	case insts.OpJSR:
		m.branch.JSR(inst.Off11)
	case insts.OpJSRR:
		m.branch.JSRR(inst.BaseR)
	case insts.OpRTI, insts.OpRES:
		// No-op: interrupts and reserved opcodes are out of scope.
	case insts.OpTRAP:
		return m.executeTrap(inst.Vector)
	default:
		return StepResult{Err: fmt.Errorf("emu: unhandled instruction %v", inst.Op)}
	}
	return StepResult{}
}

// executeTrap saves the return address in R7 before dispatching, exactly
// as the real TRAP instruction does, then hands off to the trap handler.
func (m *Machine) executeTrap(vector insts.TrapVector) StepResult {
	m.regFile.R[7] = m.regFile.PC
	result := m.trap.Handle(vector)
	return StepResult{Halted: result.Halted, Err: result.Err}
}

// discardConsole is the zero-value Console used when a Machine is built
// without WithConsole. ReadByte and WriteByte always fail and Flush is a
// no-op, so OUT/PUTS/PUTSP (and IN's prompt) return an ErrIO error, while
// GETC sees the failed read as host EOF and sets R0 to 0.
type discardConsole struct{}

func (discardConsole) ReadByte() (byte, error) {
	return 0, fmt.Errorf("emu: no console configured")
}

func (discardConsole) WriteByte(byte) error {
	return fmt.Errorf("emu: no console configured")
}

func (discardConsole) Flush() error {
	return nil
}
