package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrEmptyImage = errors.New("image is empty")

// ParseHex reads a listing with one hex byte per line, placed from origin.
// Bytes may be written as "A9", "0xA9" or "$A9". Blank lines and text
// after ';' or '#' are ignored.
func ParseHex(r io.Reader, name string, origin uint16) (*Image, error) {
	var data []uint8

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexAny(line, ";#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		line = strings.TrimPrefix(line, "$")
		line = strings.TrimPrefix(strings.TrimPrefix(line, "0x"), "0X")
		v, err := strconv.ParseUint(line, 16, 8)
		if err != nil {
			return nil, &ParseError{Name: name, Line: lineNo, Err: fmt.Errorf("invalid hex byte %q", line)}
		}
		data = append(data, uint8(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("couldn't read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyImage)
	}

	return &Image{
		Vector:   origin,
		Segments: []Segment{{Addr: origin, Data: data}},
	}, nil
}

// ReadBinary loads raw bytes placed from origin.
func ReadBinary(r io.Reader, origin uint16) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, 0x10000+1))
	if err != nil {
		return nil, fmt.Errorf("couldn't read the binary: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > 0x10000 {
		return nil, fmt.Errorf("binary is larger than the address space")
	}

	return &Image{
		Vector:   origin,
		Segments: []Segment{{Addr: origin, Data: data}},
	}, nil
}
