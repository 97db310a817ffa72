package cpu

import "fmt"

type operation uint8

const (
	opLDA operation = iota + 1 // Load Accumulator
	opLDX                      // Load X Register
	opLDY                      // Load Y Register
	opSTA                      // Store Accumulator
	opSTX                      // Store X Register
	opSTY                      // Store Y Register
	opTAX                      // Transfer Accumulator to X
	opTAY                      // Transfer Accumulator to Y
	opTXA                      // Transfer X to Accumulator
	opTYA                      // Transfer Y to Accumulator
)

var mnemonics = map[string]operation{
	"LDA": opLDA,
	"LDX": opLDX,
	"LDY": opLDY,
	"STA": opSTA,
	"STX": opSTX,
	"STY": opSTY,
	"TAX": opTAX,
	"TAY": opTAY,
	"TXA": opTXA,
	"TYA": opTYA,
}

func operationFromMnemonic(s string) (operation, error) {
	op, ok := mnemonics[s]
	if !ok {
		return 0, fmt.Errorf("unknown mnemonic %q", s)
	}
	return op, nil
}

type family uint8

const (
	familyLoad family = iota + 1
	familyStore
	familyTransfer
)

type register uint8

const (
	regA register = iota
	regX
	regY
)

// decode splits an operation into its family and the registers it touches.
// src is unused for loads, dst is unused for stores.
func (op operation) decode() (f family, src, dst register) {
	switch op {
	case opLDA:
		return familyLoad, 0, regA
	case opLDX:
		return familyLoad, 0, regX
	case opLDY:
		return familyLoad, 0, regY
	case opSTA:
		return familyStore, regA, 0
	case opSTX:
		return familyStore, regX, 0
	case opSTY:
		return familyStore, regY, 0
	case opTAX:
		return familyTransfer, regA, regX
	case opTAY:
		return familyTransfer, regA, regY
	case opTXA:
		return familyTransfer, regX, regA
	case opTYA:
		return familyTransfer, regY, regA
	}
	return 0, 0, 0
}

func (c *CPU) reg(r register) *uint8 {
	switch r {
	case regX:
		return &c.x
	case regY:
		return &c.y
	}
	return &c.a
}

// load reads the operand into dst and updates Z and N.
func (c *CPU) load(dst register, op operand) {
	v := op.value
	if !op.imm {
		v = c.read8(op.addr)
	}
	r := c.reg(dst)
	*r = v
	c.setZeroAndNegative(*r)
}

// store writes src to the operand address. Flags are not touched.
func (c *CPU) store(src register, op operand) {
	c.write8(op.addr, *c.reg(src))
}

// transfer copies src to dst in one internal cycle and updates Z and N.
func (c *CPU) transfer(src, dst register) {
	c.tick()
	r := c.reg(dst)
	*r = *c.reg(src)
	c.setZeroAndNegative(*r)
}
