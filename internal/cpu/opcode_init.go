package cpu

import (
	"bytes"
	"cmp"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

//go:embed opcode_matrix.csv
var opcodeMatrixFileData []byte

type instruction struct {
	name   string
	op     operation
	mode   addrMode
	cycles uint8
}

// opcode -> instruction mapping, built once and never written again
var instrs = mustParseOpcodeMatrix(opcodeMatrixFileData)

func mustParseOpcodeMatrix(data []byte) *[0x100]instruction {
	table, err := parseOpcodeMatrix(data)
	if err != nil {
		panic(fmt.Sprintf("cpu: bad opcode matrix: %s", err))
	}
	return table
}

func parseOpcodeMatrix(data []byte) (*[0x100]instruction, error) {
	r := csv.NewReader(bytes.NewReader(data))
	_, _ = r.Read() // skip header

	r.ReuseRecord = true

	var table [0x100]instruction
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("couldn't read data from csv: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		if len(record) != 4 {
			return nil, fmt.Errorf("invalid format for the record: %s: must be 4 parts", strings.Join(record, string(r.Comma)))
		}

		opcodeByte, err := strconv.ParseUint(record[0], 0, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid format for opcode byte: %w", err)
		}
		if table[opcodeByte].op != 0 {
			return nil, fmt.Errorf("opcode %02X is defined twice", opcodeByte)
		}

		op, err := operationFromMnemonic(record[1])
		if err != nil {
			return nil, fmt.Errorf("invalid format for mnemonic: %w", err)
		}

		mode, err := addrModeFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("invalid format for address mode: %w", err)
		}

		cycles, err := strconv.ParseUint(record[3], 0, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid format for opcode cycles: %w", err)
		}

		table[opcodeByte] = instruction{
			name:   record[1],
			op:     op,
			mode:   mode,
			cycles: uint8(cycles),
		}
	}

	return &table, nil
}

// Instruction describes one entry of the opcode table.
type Instruction struct {
	Opcode   uint8
	Mnemonic string
	Mode     string
	Cycles   int // without a page crossing
}

// Lookup returns the table entry for opcode.
func Lookup(opcode uint8) (Instruction, bool) {
	in := instrs[opcode]
	if in.op == 0 {
		return Instruction{}, false
	}
	return Instruction{
		Opcode:   opcode,
		Mnemonic: in.name,
		Mode:     string(in.mode),
		Cycles:   int(in.cycles),
	}, true
}

// Opcode returns the opcode byte for a mnemonic and addressing mode,
// for example Opcode("LDA", "ABSX").
func Opcode(mnemonic, mode string) (uint8, bool) {
	for i := range instrs {
		in := instrs[i]
		if in.op != 0 && in.name == mnemonic && string(in.mode) == mode {
			return uint8(i), true
		}
	}
	return 0, false
}

// Instructions lists the opcode table sorted by mnemonic, then opcode.
func Instructions() []Instruction {
	var list []Instruction
	for i := range instrs {
		if in, ok := Lookup(uint8(i)); ok {
			list = append(list, in)
		}
	}
	slices.SortFunc(list, func(a, b Instruction) int {
		return cmp.Or(
			strings.Compare(a.Mnemonic, b.Mnemonic),
			cmp.Compare(a.Opcode, b.Opcode),
		)
	})
	return list
}

func opcodeIsSupported(opcode uint8) bool {
	return instrs[opcode].op != 0
}
