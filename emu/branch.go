// Package emu provides functional LC-3 emulation.
package emu

// BranchUnit implements the LC-3 control-flow instructions: BR, JMP/RET,
// and JSR/JSRR. None of these write a general register except JSR/JSRR's
// implicit link into R7, which (per the ISA) does not update the
// condition flag — so BranchUnit writes R7 directly rather than through
// RegFile.WriteReg.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// BR branches to PC+off9 if any of the requested flag gates (n, z, p)
// matches the current condition flag. PC is already the post-increment
// fetch address by the time this is called.
func (b *BranchUnit) BR(n, z, p bool, off9 uint16) {
	taken := (n && b.regFile.Cond == FlagNEG) ||
		(z && b.regFile.Cond == FlagZRO) ||
		(p && b.regFile.Cond == FlagPOS)
	if taken {
		b.regFile.PC += off9
	}
}

// JMP sets PC to the value in BaseR. RET is the baser==7 alias, handled
// identically at the instruction-dispatch level.
func (b *BranchUnit) JMP(baseR uint8) {
	b.regFile.PC = b.regFile.ReadReg(baseR)
}

// JSR saves the return address in R7 and branches to PC+off11.
func (b *BranchUnit) JSR(off11 uint16) {
	b.regFile.R[7] = b.regFile.PC
	b.regFile.PC += off11
}

// JSRR saves the return address in R7 and branches to the address in BaseR.
// The base register is read before R7 is overwritten, so JSRR R7 behaves
// consistently (branches to the old R7, which then holds the return PC).
func (b *BranchUnit) JSRR(baseR uint8) {
	target := b.regFile.ReadReg(baseR)
	b.regFile.R[7] = b.regFile.PC
	b.regFile.PC = target
}
