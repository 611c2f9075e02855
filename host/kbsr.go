package host

import "lc3vm/emu"

// kbsrReady is the bit the LC-3 ISA sets in KBSR (bit 15) when a
// keystroke is waiting in KBDR.
const kbsrReady = 0x8000

// KBSRDevice returns an emu.Device that polls the console for a pending
// keystroke without blocking: if one is available it latches it into
// KBDR and sets the ready bit in KBSR, otherwise it clears the ready bit.
// Register this against emu.MRKBSR so the Memory.Read path polls it on
// every KBSR access, matching how a real memory-mapped device behaves.
func KBSRDevice(console *Console) emu.Device {
	return func(m *emu.Memory) {
		if b, ok := console.TryReadByte(); ok {
			m.Write(emu.MRKBDR, uint16(b))
			m.Write(emu.MRKBSR, kbsrReady)
			return
		}
		m.Write(emu.MRKBSR, 0)
	}
}
