package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOpcode is matched by every *UnknownOpcodeError.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrHalted is returned when running a CPU that has not been reset
	// since it halted.
	ErrHalted = errors.New("cpu is halted")

	// ErrNotReset is returned when running a CPU that was never reset.
	ErrNotReset = errors.New("cpu has not been reset")
)

// UnknownOpcodeError stops a run when the fetched byte has no entry
// in the opcode table.
type UnknownOpcodeError struct {
	Opcode uint8
	PC     uint16 // address of the opcode
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode $%02X at $%04X", e.Opcode, e.PC)
}

func (e *UnknownOpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}
