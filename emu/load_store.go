// Package emu provides functional LC-3 emulation.
package emu

// LoadStoreUnit implements the LC-3 load, store, and LEA instructions.
// PC-relative and base-relative addresses are computed by the caller
// (Machine) from already-sign-extended decoder fields and passed in
// as a resolved address.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// LD performs DR = M[addr].
func (lsu *LoadStoreUnit) LD(dr uint8, addr uint16) {
	lsu.regFile.WriteReg(dr, lsu.memory.Read(addr))
}

// LDI performs DR = M[M[addr]].
func (lsu *LoadStoreUnit) LDI(dr uint8, addr uint16) {
	indirect := lsu.memory.Read(addr)
	lsu.regFile.WriteReg(dr, lsu.memory.Read(indirect))
}

// LDR performs DR = M[BaseR + off6], with addr already resolved.
func (lsu *LoadStoreUnit) LDR(dr uint8, addr uint16) {
	lsu.regFile.WriteReg(dr, lsu.memory.Read(addr))
}

// ST performs M[addr] = SR. Stores never touch the condition flag.
func (lsu *LoadStoreUnit) ST(sr uint8, addr uint16) {
	lsu.memory.Write(addr, lsu.regFile.ReadReg(sr))
}

// STI performs M[M[addr]] = SR.
func (lsu *LoadStoreUnit) STI(sr uint8, addr uint16) {
	indirect := lsu.memory.Read(addr)
	lsu.memory.Write(indirect, lsu.regFile.ReadReg(sr))
}

// STR performs M[BaseR + off6] = SR, with addr already resolved.
func (lsu *LoadStoreUnit) STR(sr uint8, addr uint16) {
	lsu.memory.Write(addr, lsu.regFile.ReadReg(sr))
}

// LEA performs DR = addr (PC+off9, already resolved). Per the LC-3 2019
// revision, LEA does not update the condition flag, so this writes the
// register directly rather than through RegFile.WriteReg.
func (lsu *LoadStoreUnit) LEA(dr uint8, addr uint16) {
	lsu.regFile.R[dr&0x7] = addr
}
