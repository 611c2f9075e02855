// Package emu provides functional LC-3 emulation.
package emu

import (
	"errors"
	"fmt"

	"lc3vm/insts"
)

// ErrIO wraps any host I/O failure encountered while dispatching a TRAP
// that writes to the console (OUT, PUTS, PUTSP, or the prompt/echo
// halves of IN). GETC and IN's read half treat such a failure as host
// EOF instead — see their doc comments.
var ErrIO = errors.New("emu: trap I/O failed")

// Console is the host collaborator a TrapHandler needs: a blocking
// single-byte read from the keyboard, and a buffered byte write with an
// explicit flush. Everything about terminal mode and actual stdin/stdout
// plumbing lives outside this package, behind this interface.
type Console interface {
	ReadByte() (byte, error)
	WriteByte(b byte) error
	Flush() error
}

// TrapResult represents the result of dispatching one TRAP instruction.
type TrapResult struct {
	// Halted is true if the trap was HALT, which clears the running flag.
	Halted bool

	// Err is set if the trap's host I/O failed.
	Err error
}

// TrapHandler dispatches the six LC-3 service-call vectors.
type TrapHandler struct {
	regFile *RegFile
	memory  *Memory
	console Console
}

// NewTrapHandler creates a trap handler wired to the given register
// file, memory, and console.
func NewTrapHandler(regFile *RegFile, memory *Memory, console Console) *TrapHandler {
	return &TrapHandler{regFile: regFile, memory: memory, console: console}
}

// Handle dispatches by vector. R7 is expected to already hold the saved
// return PC; Handle only implements the six named service routines.
func (h *TrapHandler) Handle(vector insts.TrapVector) TrapResult {
	switch vector {
	case insts.TrapGETC:
		return h.getc()
	case insts.TrapOUT:
		return h.out()
	case insts.TrapPUTS:
		return h.puts()
	case insts.TrapIN:
		return h.in()
	case insts.TrapPUTSP:
		return h.putsp()
	case insts.TrapHALT:
		return TrapResult{Halted: true}
	default:
		return TrapResult{Err: fmt.Errorf("emu: unhandled trap vector %#02x", vector)}
	}
}

// getc reads one byte from the console and zero-extends it into R0. A
// read failure (host EOF) is not fatal: R0 is set to 0 and execution
// continues, since the LC-3 ISA gives GETC no way to signal end-of-input
// to the running program.
func (h *TrapHandler) getc() TrapResult {
	b, err := h.console.ReadByte()
	if err != nil {
		h.regFile.WriteReg(0, 0)
		return TrapResult{}
	}
	h.regFile.WriteReg(0, uint16(b))
	return TrapResult{}
}

// out writes the low byte of R0 to the console and flushes.
func (h *TrapHandler) out() TrapResult {
	if err := h.console.WriteByte(byte(h.regFile.ReadReg(0))); err != nil {
		return TrapResult{Err: fmt.Errorf("emu: OUT: %w: %w", ErrIO, err)}
	}
	if err := h.console.Flush(); err != nil {
		return TrapResult{Err: fmt.Errorf("emu: OUT: %w: %w", ErrIO, err)}
	}
	return TrapResult{}
}

// in prompts, reads one byte, echoes it, and stores it zero-extended in
// R0. As with GETC, a read failure (host EOF) sets R0 to 0 and continues
// rather than aborting the program; a failure writing the prompt or echo
// itself is a genuine host I/O error and stays fatal.
func (h *TrapHandler) in() TrapResult {
	for _, c := range "Enter a character: " {
		if err := h.console.WriteByte(byte(c)); err != nil {
			return TrapResult{Err: fmt.Errorf("emu: IN: %w: %w", ErrIO, err)}
		}
	}
	if err := h.console.Flush(); err != nil {
		return TrapResult{Err: fmt.Errorf("emu: IN: %w: %w", ErrIO, err)}
	}
	b, err := h.console.ReadByte()
	if err != nil {
		h.regFile.WriteReg(0, 0)
		return TrapResult{}
	}
	if err := h.console.WriteByte(b); err != nil {
		return TrapResult{Err: fmt.Errorf("emu: IN: %w: %w", ErrIO, err)}
	}
	if err := h.console.Flush(); err != nil {
		return TrapResult{Err: fmt.Errorf("emu: IN: %w: %w", ErrIO, err)}
	}
	h.regFile.WriteReg(0, uint16(b))
	return TrapResult{}
}

// puts emits the low 8 bits of each word starting at R0, stopping at the
// first zero word.
func (h *TrapHandler) puts() TrapResult {
	addr := h.regFile.ReadReg(0)
	for {
		word := h.memory.Read(addr)
		if word == 0 {
			break
		}
		if err := h.console.WriteByte(byte(word)); err != nil {
			return TrapResult{Err: fmt.Errorf("emu: PUTS: %w: %w", ErrIO, err)}
		}
		addr++
	}
	if err := h.console.Flush(); err != nil {
		return TrapResult{Err: fmt.Errorf("emu: PUTS: %w: %w", ErrIO, err)}
	}
	return TrapResult{}
}

// putsp emits two packed bytes per word (low byte first, then high byte)
// starting at R0, stopping at the first zero byte encountered in either
// position of a word.
func (h *TrapHandler) putsp() TrapResult {
	addr := h.regFile.ReadReg(0)
	for {
		word := h.memory.Read(addr)
		lo := byte(word)
		hi := byte(word >> 8)
		if lo == 0 {
			break
		}
		if err := h.console.WriteByte(lo); err != nil {
			return TrapResult{Err: fmt.Errorf("emu: PUTSP: %w: %w", ErrIO, err)}
		}
		if hi == 0 {
			break
		}
		if err := h.console.WriteByte(hi); err != nil {
			return TrapResult{Err: fmt.Errorf("emu: PUTSP: %w: %w", ErrIO, err)}
		}
		addr++
	}
	if err := h.console.Flush(); err != nil {
		return TrapResult{Err: fmt.Errorf("emu: PUTSP: %w: %w", ErrIO, err)}
	}
	return TrapResult{}
}
