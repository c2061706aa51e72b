// Package loader reads raw RV32 memory images.
package loader

import (
	"fmt"
	"os"
)

// DefaultBase is the address images load at unless directed elsewhere.
const DefaultBase uint32 = 0x1000

// Program represents a memory image ready for loading into the emulator's
// memory.
type Program struct {
	// Base is the address the image should be copied to. It doubles as
	// the entry point: execution starts at the first word of the image.
	Base uint32

	// Data contains the raw image bytes, little-endian instruction words
	// first, followed by any data the program wants mapped after them.
	Data []byte
}

// Load reads a raw memory image from path. The file contents are taken
// as-is; no container format is parsed.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty image: %s", path)
	}

	return &Program{
		Base: DefaultBase,
		Data: data,
	}, nil
}
