// Package emu provides functional LC-3 emulation.
package emu

import "errors"

// Memory-mapped device addresses.
const (
	MRKBSR uint16 = 0xFE00 // keyboard status register
	MRKBDR uint16 = 0xFE02 // keyboard data register
)

// ErrEmptyImage is returned by LoadImage when given an empty word sequence.
var ErrEmptyImage = errors.New("emu: empty image")

// ErrImageOverflow is returned by LoadImage when the payload (the words
// after the origin) would extend past address 0xFFFF.
var ErrImageOverflow = errors.New("emu: image overflows address space")

// Device polls a memory-mapped address for its current value. It is
// invoked by Memory.Read just before returning the address's stored word,
// and may itself call Memory.Write to update that word (and any paired
// register) first.
type Device func(m *Memory)

// Memory is the flat 65536-word LC-3 address space. Reads of most
// addresses are pure; reads of a few memory-mapped addresses poll an
// injected Device first, keeping the executor oblivious to device
// semantics (spec design note: one device table entry per mapped
// address, rather than special-casing KBSR inside the executor).
type Memory struct {
	cells   [65536]uint16
	devices map[uint16]Device
}

// NewMemory returns a zero-initialized address space with no devices
// registered; use SetDevice to wire a poller to KBSR.
func NewMemory() *Memory {
	return &Memory{
		devices: make(map[uint16]Device),
	}
}

// SetDevice registers (or replaces) the poller invoked when addr is read.
func (m *Memory) SetDevice(addr uint16, dev Device) {
	m.devices[addr] = dev
}

// Read returns the word at addr. If addr has a registered Device, the
// device is polled first so the returned word reflects the latest host
// state (this is the only side-effecting read in the address space).
func (m *Memory) Read(addr uint16) uint16 {
	if dev, ok := m.devices[addr]; ok {
		dev(m)
	}
	return m.cells[addr]
}

// Write stores value at addr. Always succeeds; writing to a device
// address has no device semantics of its own.
func (m *Memory) Write(addr uint16, value uint16) {
	m.cells[addr] = value
}

// LoadImage overlays an object image onto memory. The first word is the
// origin (load address); the remaining words are written sequentially
// starting at origin.
func (m *Memory) LoadImage(words []uint16) error {
	if len(words) == 0 {
		return ErrEmptyImage
	}
	origin := words[0]
	payload := words[1:]
	if int(origin)+len(payload) > 65536 {
		return ErrImageOverflow
	}
	for i, w := range payload {
		m.cells[int(origin)+i] = w
	}
	return nil
}
