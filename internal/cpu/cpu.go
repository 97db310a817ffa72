package cpu

import (
	"io"
	"log"
	"os"
)

const resetSP = uint8(0xff)

type State uint8

const (
	StateOff State = iota // not reset since NewCPU
	StateFetching
	StateExecuting
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateOff:
		return "OFF"
	case StateFetching:
		return "FETCHING"
	case StateExecuting:
		return "EXECUTING"
	case StateHalted:
		return "HALTED"
	}
	return "???"
}

// Registers is a snapshot of the register file.
type Registers struct {
	PC uint16
	SP uint8
	A  uint8
	X  uint8
	Y  uint8
	P  Flags
}

type CPU struct {
	a           uint8  // accumulator
	x           uint8  // index register X
	y           uint8  // index register Y
	sp          uint8  // stack pointer
	pc          uint16 // program counter
	p           Flags  // processor status
	bus         Bus    // memory the cpu runs against
	cycles      int    // cycles left in the current run, may go negative
	spent       int    // cycles charged in the current run
	totalCycles uint64 // cycles charged since the last reset
	state       State
	logger      *log.Logger
}

// NewCPU returns a cpu attached to bus. It stays in StateOff and refuses
// to run until Reset is called.
func NewCPU(bus Bus) *CPU {
	return &CPU{
		bus:    bus,
		state:  StateOff,
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// SetLogger replaces the logger used to report halts. Nil mutes it.
func (c *CPU) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	c.logger = l
}

// Reset puts the cpu and its memory into the known initial state:
// pc at vector, SP=$FF, A=X=Y=0, every flag clear, memory zeroed.
func (c *CPU) Reset(vector uint16) {
	c.pc = vector
	c.sp = resetSP
	c.p = 0
	c.a = 0
	c.x = 0
	c.y = 0
	c.bus.Initialise()
	c.cycles = 0
	c.spent = 0
	c.totalCycles = 0
	c.state = StateFetching
}

func (c *CPU) Registers() Registers {
	return Registers{PC: c.pc, SP: c.sp, A: c.a, X: c.x, Y: c.y, P: c.p}
}

func (c *CPU) State() State {
	return c.state
}

func (c *CPU) TotalCycles() uint64 {
	return c.totalCycles
}

// Execute runs instructions while the cycle budget is positive and
// returns the number of cycles spent. An instruction that has started
// always completes, so the result may exceed budget.
//
// An opcode missing from the table halts the cpu and returns an
// *UnknownOpcodeError with the cycles spent so far.
func (c *CPU) Execute(budget int) (int, error) {
	if err := c.runnable(); err != nil {
		return 0, err
	}

	c.cycles = budget
	c.spent = 0
	for c.cycles > 0 {
		if err := c.step(); err != nil {
			return c.spent, err
		}
	}
	return c.spent, nil
}

// Step executes exactly one instruction regardless of any budget
// and returns its cost.
func (c *CPU) Step() (int, error) {
	if err := c.runnable(); err != nil {
		return 0, err
	}

	c.cycles = 0
	c.spent = 0
	err := c.step()
	return c.spent, err
}

func (c *CPU) runnable() error {
	switch c.state {
	case StateOff:
		return ErrNotReset
	case StateHalted:
		return ErrHalted
	}
	return nil
}

func (c *CPU) step() error {
	c.state = StateFetching
	pc := c.pc
	opcode := c.fetch8()
	instr := instrs[opcode]
	if instr.op == 0 {
		c.hlt()
		c.logger.Printf("unsupported opcode %02X. PC: %04X. halting...\n", opcode, pc)
		return &UnknownOpcodeError{Opcode: opcode, PC: pc}
	}

	c.state = StateExecuting
	fam, src, dst := instr.op.decode()
	switch fam {
	case familyLoad:
		c.load(dst, c.resolve(instr.mode))
	case familyStore:
		c.store(src, c.resolve(instr.mode))
	case familyTransfer:
		c.transfer(src, dst)
	}
	c.state = StateFetching
	return nil
}

// hlt stops the current run no matter how much budget is left.
func (c *CPU) hlt() {
	c.state = StateHalted
	c.cycles = 0
}

func (c *CPU) charge(n int) {
	c.cycles -= n
	c.spent += n
	c.totalCycles += uint64(n)
}

// tick spends one internal cycle with no memory access.
func (c *CPU) tick() {
	c.charge(1)
}

func (c *CPU) read8(addr uint16) uint8 {
	c.charge(1)
	return c.bus.Read8(addr)
}

func (c *CPU) write8(addr uint16, data uint8) {
	c.charge(1)
	c.bus.Write8(addr, data)
}

// fetch8 reads the byte at pc and advances pc, wrapping at $FFFF.
func (c *CPU) fetch8() uint8 {
	data := c.read8(c.pc)
	c.pc++
	return data
}

// fetch16 reads a little-endian word at pc.
func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return lo | hi<<8
}

func (c *CPU) setZeroAndNegative(value uint8) {
	c.p.Set(FlagZ, value == 0)
	c.p.Set(FlagN, value&0x80 > 0)
}
