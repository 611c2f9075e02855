package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lc3vm/emu"
)

var _ = Describe("Machine", func() {
	var machine *emu.Machine

	BeforeEach(func() {
		machine = emu.NewMachine()
	})

	Describe("NewMachine", func() {
		It("should start at the canonical origin, running, with flag ZRO", func() {
			Expect(machine.RegFile().PC).To(Equal(uint16(0x3000)))
			Expect(machine.Running()).To(BeTrue())
			Expect(machine.RegFile().Cond).To(Equal(emu.FlagZRO))
			Expect(machine.InstructionCount()).To(Equal(uint64(0)))
		})
	})

	Describe("Step (S4: BR taken on Z)", func() {
		It("should skip the next instruction when the branch is taken", func() {
			// 0x3000: AND R0,R0,#0   -> R0=0, flag ZRO
			// 0x3001: BRz #1         -> taken, skips 0x3002
			// 0x3002: ADD R0,R0,#15  -> skipped
			// 0x3003: TRAP HALT
			err := machine.LoadImage([]uint16{
				0x3000,
				0x5020,
				0x0401,
				0x102F,
				0xF025,
			})
			Expect(err).NotTo(HaveOccurred())

			r1 := machine.Step()
			Expect(r1.Err).NotTo(HaveOccurred())
			Expect(machine.RegFile().PC).To(Equal(uint16(0x3001)))

			r2 := machine.Step()
			Expect(r2.Err).NotTo(HaveOccurred())
			Expect(machine.RegFile().PC).To(Equal(uint16(0x3003)))

			r3 := machine.Step()
			Expect(r3.Err).NotTo(HaveOccurred())
			Expect(r3.Halted).To(BeTrue())
			Expect(machine.RegFile().R[0]).To(Equal(uint16(0)))
			Expect(machine.Running()).To(BeFalse())
		})
	})

	Describe("Step with an invalid trap vector", func() {
		It("should return a fatal error and stop running", func() {
			err := machine.LoadImage([]uint16{0x3000, 0xF0FF})
			Expect(err).NotTo(HaveOccurred())

			result := machine.Step()

			Expect(result.Err).To(HaveOccurred())
			Expect(machine.Running()).To(BeFalse())
		})
	})

	Describe("LoadImage", func() {
		It("should be idempotent across repeated loads of the same image", func() {
			image := []uint16{0x3000, 0x5020, 0xF025}

			Expect(machine.LoadImage(image)).To(Succeed())
			Expect(machine.LoadImage(image)).To(Succeed())

			Expect(machine.Memory().Read(0x3000)).To(Equal(uint16(0x5020)))
		})
	})

	Describe("Run with a console (S6: PUTS through the full fetch-decode-execute loop)", func() {
		It("should print the string and halt", func() {
			console := &fakeConsole{}
			machine = emu.NewMachine(emu.WithConsole(console))

			// 0x3000: LEA R0,#2   -> R0 = 0x3003 (string start)
			// 0x3001: TRAP PUTS
			// 0x3002: TRAP HALT
			// 0x3003: 'H'
			// 0x3004: 'i'
			// 0x3005: 0
			err := machine.LoadImage([]uint16{
				0x3000,
				0xE002,
				0xF022,
				0xF025,
				uint16('H'),
				uint16('i'),
				0x0000,
			})
			Expect(err).NotTo(HaveOccurred())

			err = machine.Run()

			Expect(err).NotTo(HaveOccurred())
			Expect(machine.Running()).To(BeFalse())
			Expect(console.out.String()).To(Equal("Hi"))
		})
	})

	Describe("InstructionCount", func() {
		It("should count every executed instruction including the halting TRAP", func() {
			err := machine.LoadImage([]uint16{0x3000, 0x5020, 0xF025})
			Expect(err).NotTo(HaveOccurred())

			Expect(machine.Run()).To(Succeed())

			Expect(machine.InstructionCount()).To(Equal(uint64(2)))
		})
	})
})
