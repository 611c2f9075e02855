// Package emu provides functional LC-3 emulation.
package emu

// Flag represents the 3-bit condition code. Exactly one of NEG, ZRO, POS
// holds after any instruction that writes a general register.
type Flag uint8

// Condition flag encodings. Only equality comparisons matter; the values
// themselves carry no further meaning.
const (
	FlagPOS Flag = 0
	FlagZRO Flag = 2
	FlagNEG Flag = 4
)

// RegCount is the number of general-purpose registers, R0-R7.
const RegCount = 8

// RegFile represents the LC-3 register file: eight general registers, a
// program counter, and the condition flag.
type RegFile struct {
	// R holds the general-purpose registers R0-R7.
	R [RegCount]uint16

	// PC is the program counter.
	PC uint16

	// Cond is the condition flag, updated by every WriteReg. Writes that
	// go straight to R (LEA, and the R7 link of JSR/JSRR/TRAP) leave it
	// unchanged.
	Cond Flag
}

// NewRegFile returns a register file in its start-of-day state: all
// registers zero, PC at the canonical user origin, flag ZRO.
func NewRegFile() *RegFile {
	return &RegFile{
		PC:   0x3000,
		Cond: FlagZRO,
	}
}

// ReadReg reads general register n (0-7).
func (r *RegFile) ReadReg(n uint8) uint16 {
	return r.R[n&0x7]
}

// WriteReg writes value to general register n (0-7) and updates the
// condition flag from the sign of the new value.
func (r *RegFile) WriteReg(n uint8, value uint16) {
	r.R[n&0x7] = value
	r.setFlag(value)
}

// setFlag derives the condition flag from a register's new value: zero
// maps to ZRO, bit 15 set maps to NEG, anything else maps to POS.
func (r *RegFile) setFlag(value uint16) {
	switch {
	case value == 0:
		r.Cond = FlagZRO
	case value&0x8000 != 0:
		r.Cond = FlagNEG
	default:
		r.Cond = FlagPOS
	}
}
