// Package insts provides LC-3 instruction definitions and decoding.
//
// This package implements decoding of 16-bit LC-3 machine words into
// structured instruction representations. It supports the full LC-3
// opcode table:
//   - Data movement: LD, LDI, LDR, ST, STI, STR, LEA
//   - Arithmetic/logic: ADD, AND (register and immediate forms), NOT
//   - Control flow: BR, JMP, RET, JSR, JSRR
//   - Service calls: TRAP (GETC, OUT, PUTS, IN, PUTSP, HALT)
//   - Reserved/no-op: RTI, RES
//
// Usage:
//
//	dec := insts.NewDecoder()
//	inst, err := dec.Decode(0x1061) // ADD R0, R1, #1
//	fmt.Printf("Op: %v, DR: %d, SR1: %d, Imm: %d\n", inst.Op, inst.DR, inst.SR1, inst.Imm5)
package insts
