// Package loader builds program images for the cpu from hex listings,
// raw binaries and Starlark scripts.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nevisdale/m6502/internal/cpu"
)

// Segment is a run of bytes placed at Addr.
type Segment struct {
	Addr uint16
	Data []uint8
}

// Image is a program and its data, ready to be copied into memory
// after the cpu has been reset to Vector.
type Image struct {
	Vector   uint16
	Segments []Segment
}

// Apply writes every segment to mem in order. Later segments win.
func (img *Image) Apply(mem cpu.ReadWriter) {
	for _, seg := range img.Segments {
		for i, b := range seg.Data {
			mem.Write8(uint16(int(seg.Addr)+i), b)
		}
	}
}

// Size is the total number of bytes over all segments.
func (img *Image) Size() int {
	n := 0
	for _, seg := range img.Segments {
		n += len(seg.Data)
	}
	return n
}

// ParseError points at the line of a source file that could not be parsed.
type ParseError struct {
	Name string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Name, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Open reads a program image from path.
// .hex and .asm files are hex listings, .star files are scripts,
// anything else is loaded as a raw binary.
// origin is where listings and binaries are placed, it is also their vector.
func Open(path string, origin uint16) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".asm":
		return ParseHex(file, path, origin)
	case ".star":
		src, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("couldn't read the script: %w", err)
		}
		return RunScript(path, src, origin)
	}
	return ReadBinary(file, origin)
}
