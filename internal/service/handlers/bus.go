package handlers

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

var ErrOutOfRange = errors.New("address out of range")

// Bus is the register and memory window of a debug target.
type Bus interface {
	ReadReg(addr uint32) (uint32, error)
	WriteReg(addr, val uint32) error
	ReadMem(addr uint32, length int) ([]byte, error)
	WriteMem(addr uint32, data []byte) error
	// MemSize is the size of the memory window in bytes.
	MemSize() int
}

// MemoryBus simulates a target with sparse registers and a flat memory.
type MemoryBus struct {
	mu   sync.Mutex
	regs map[uint32]uint32
	mem  []byte
}

func NewMemoryBus(memSize int) *MemoryBus {
	return &MemoryBus{
		regs: make(map[uint32]uint32),
		mem:  make([]byte, memSize),
	}
}

func (b *MemoryBus) ReadReg(addr uint32) (uint32, error) {
	if addr%4 != 0 {
		return 0, fmt.Errorf("unaligned register address %08X", addr)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regs[addr], nil
}

func (b *MemoryBus) WriteReg(addr, val uint32) error {
	if addr%4 != 0 {
		return fmt.Errorf("unaligned register address %08X", addr)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regs[addr] = val
	return nil
}

func (b *MemoryBus) ReadMem(addr uint32, length int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if length < 0 || uint64(addr)+uint64(length) > uint64(len(b.mem)) {
		return nil, fmt.Errorf("%w: %08X+%d", ErrOutOfRange, addr, length)
	}
	out := make([]byte, length)
	copy(out, b.mem[addr:])
	return out, nil
}

func (b *MemoryBus) WriteMem(addr uint32, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if uint64(addr)+uint64(len(data)) > uint64(len(b.mem)) {
		return fmt.Errorf("%w: %08X+%d", ErrOutOfRange, addr, len(data))
	}
	copy(b.mem[addr:], data)
	return nil
}

func (b *MemoryBus) MemSize() int {
	return len(b.mem)
}

// readWordFile reads the first little-endian 32-bit word of a binary file.
func readWordFile(path string) (uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var buf [4]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}
