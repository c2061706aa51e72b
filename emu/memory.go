package emu

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/mem/mem"
)

// MemSize is the size of the simulated memory in bytes.
const MemSize = 65536

// ErrOutOfBounds reports a memory access outside the simulated memory.
var ErrOutOfBounds = errors.New("memory access out of bounds")

// Memory is the byte-addressable simulated memory. Multi-byte accesses are
// little-endian and carry no alignment requirement. Every access is bounds
// checked before any byte moves, so a failed access leaves memory unchanged.
type Memory struct {
	storage *mem.Storage
}

// NewMemory creates a zeroed memory of MemSize bytes.
func NewMemory() *Memory {
	return &Memory{
		storage: mem.NewStorage(MemSize),
	}
}

// Size returns the memory size in bytes.
func (m *Memory) Size() uint32 {
	return MemSize
}

// check validates a width-byte access at addr. The uint64 arithmetic keeps
// addresses near 2^32 from wrapping instead of failing.
func (m *Memory) check(addr, width uint32) error {
	if uint64(addr)+uint64(width) > MemSize {
		return fmt.Errorf("%w: %d-byte access at 0x%X", ErrOutOfBounds, width, addr)
	}
	return nil
}

// Read8 reads a byte.
func (m *Memory) Read8(addr uint32) (uint8, error) {
	if err := m.check(addr, 1); err != nil {
		return 0, err
	}
	data, err := m.storage.Read(uint64(addr), 1)
	if err != nil {
		return 0, fmt.Errorf("read at 0x%X: %w", addr, err)
	}
	return data[0], nil
}

// Read16 reads a little-endian 16-bit value.
func (m *Memory) Read16(addr uint32) (uint16, error) {
	if err := m.check(addr, 2); err != nil {
		return 0, err
	}
	data, err := m.storage.Read(uint64(addr), 2)
	if err != nil {
		return 0, fmt.Errorf("read at 0x%X: %w", addr, err)
	}
	return binary.LittleEndian.Uint16(data), nil
}

// Read32 reads a little-endian 32-bit value.
func (m *Memory) Read32(addr uint32) (uint32, error) {
	if err := m.check(addr, 4); err != nil {
		return 0, err
	}
	data, err := m.storage.Read(uint64(addr), 4)
	if err != nil {
		return 0, fmt.Errorf("read at 0x%X: %w", addr, err)
	}
	return binary.LittleEndian.Uint32(data), nil
}

// Write8 writes a byte.
func (m *Memory) Write8(addr uint32, value uint8) error {
	if err := m.check(addr, 1); err != nil {
		return err
	}
	if err := m.storage.Write(uint64(addr), []byte{value}); err != nil {
		return fmt.Errorf("write at 0x%X: %w", addr, err)
	}
	return nil
}

// Write16 writes a little-endian 16-bit value.
func (m *Memory) Write16(addr uint32, value uint16) error {
	if err := m.check(addr, 2); err != nil {
		return err
	}
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, value)
	if err := m.storage.Write(uint64(addr), data); err != nil {
		return fmt.Errorf("write at 0x%X: %w", addr, err)
	}
	return nil
}

// Write32 writes a little-endian 32-bit value.
func (m *Memory) Write32(addr uint32, value uint32) error {
	if err := m.check(addr, 4); err != nil {
		return err
	}
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, value)
	if err := m.storage.Write(uint64(addr), data); err != nil {
		return fmt.Errorf("write at 0x%X: %w", addr, err)
	}
	return nil
}

// LoadProgram copies a program image into memory starting at base. Bytes
// that would land beyond the end of memory are silently truncated.
func (m *Memory) LoadProgram(base uint32, program []byte) {
	if uint64(base) >= MemSize {
		return
	}
	if uint64(base)+uint64(len(program)) > MemSize {
		program = program[:MemSize-base]
	}
	if len(program) == 0 {
		return
	}
	_ = m.storage.Write(uint64(base), program)
}

// Dump returns a copy of n bytes of memory starting at addr, for display.
func (m *Memory) Dump(addr, n uint32) ([]byte, error) {
	if err := m.check(addr, n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	data, err := m.storage.Read(uint64(addr), uint64(n))
	if err != nil {
		return nil, fmt.Errorf("read at 0x%X: %w", addr, err)
	}
	return data, nil
}
