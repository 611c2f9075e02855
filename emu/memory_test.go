package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lc3vm/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory()
	})

	Describe("Read / Write", func() {
		It("should read back what was written", func() {
			memory.Write(0x3000, 0xBEEF)

			Expect(memory.Read(0x3000)).To(Equal(uint16(0xBEEF)))
		})

		It("should read zero for an untouched address", func() {
			Expect(memory.Read(0x1234)).To(Equal(uint16(0)))
		})
	})

	Describe("LoadImage", func() {
		It("should overlay words starting at the origin (load idempotence)", func() {
			err := memory.LoadImage([]uint16{0x3000, 0x1111, 0x2222, 0x3333})

			Expect(err).NotTo(HaveOccurred())
			Expect(memory.Read(0x3000)).To(Equal(uint16(0x1111)))
			Expect(memory.Read(0x3001)).To(Equal(uint16(0x2222)))
			Expect(memory.Read(0x3002)).To(Equal(uint16(0x3333)))
		})

		It("should reject an empty image", func() {
			err := memory.LoadImage(nil)

			Expect(err).To(MatchError(emu.ErrEmptyImage))
		})

		It("should reject an image that overflows the address space", func() {
			err := memory.LoadImage([]uint16{0xFFFF, 1, 2, 3})

			Expect(err).To(MatchError(emu.ErrImageOverflow))
		})
	})

	Describe("KBSR polling", func() {
		It("should invoke the registered device before returning the value", func() {
			polled := false
			memory.SetDevice(emu.MRKBSR, func(m *emu.Memory) {
				polled = true
				m.Write(emu.MRKBSR, 0x8000)
			})

			value := memory.Read(emu.MRKBSR)

			Expect(polled).To(BeTrue())
			Expect(value).To(Equal(uint16(0x8000)))
		})

		It("should not invoke any device for an unmapped address", func() {
			polled := false
			memory.SetDevice(emu.MRKBSR, func(m *emu.Memory) { polled = true })

			memory.Read(0x3000)

			Expect(polled).To(BeFalse())
		})
	})
})
