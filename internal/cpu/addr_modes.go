package cpu

import "fmt"

type addrMode string

const (
	// Immediate: IMM
	//
	// The operand is the byte that follows the opcode.
	// For example, LDA #$10 loads the accumulator (A) with $10.
	//
	// Format: #$nn. Costs one operand fetch.
	addrModeIMM addrMode = "IMM"

	// Zero Page: ZP
	//
	// The operand byte is an address within the first 256 bytes of memory.
	// For example, LDA $20 loads the accumulator (A) from $0020.
	//
	// Format: $nn. Costs one operand fetch.
	addrModeZP addrMode = "ZP"

	// Zero Page Indexed with X: ZPX
	//
	// The operand byte plus X, truncated to 8 bits, so $FF,X with X=1 is $0000.
	// For example, LDA $20,X loads the accumulator (A) from $0020 + X.
	//
	// Format: $nn,X. Costs one operand fetch and one cycle for the addition.
	addrModeZPX addrMode = "ZPX"

	// Zero Page Indexed with Y: ZPY
	//
	// Same as ZPX, indexed by Y. Used by LDX and STX.
	//
	// Format: $nn,Y. Costs one operand fetch and one cycle for the addition.
	addrModeZPY addrMode = "ZPY"

	// Absolute: ABS
	//
	// Two operand bytes, little-endian, form a full 16-bit address.
	// For example, LDA $1234 loads the accumulator (A) from $1234.
	//
	// Format: $nnnn. Costs two operand fetches.
	addrModeABS addrMode = "ABS"

	// Absolute Indexed with X: ABSX
	//
	// Full 16-bit address plus X, wrapping at $FFFF.
	// One extra cycle is spent when the addition changes the page (high byte).
	//
	// Format: $nnnn,X. Costs two operand fetches, +1 on a page cross.
	addrModeABSX addrMode = "ABSX"

	// Absolute Indexed with Y: ABSY
	//
	// Same as ABSX, indexed by Y.
	//
	// Format: $nnnn,Y. Costs two operand fetches, +1 on a page cross.
	addrModeABSY addrMode = "ABSY"

	// Indexed Indirect (X): INDX
	//
	// The operand byte plus X, truncated to 8 bits, points to a two byte
	// pointer in the zero page. The pointer is the effective address.
	// For example, LDA ($20,X) loads A from the address stored at $20 + X.
	//
	// Format: ($nn,X). Costs one operand fetch, one cycle for the addition
	// and two pointer reads.
	addrModeINDX addrMode = "INDX"

	// Indirect Indexed (Y): INDY
	//
	// Resolved exactly like INDX but keyed by Y: the zero page pointer is
	// taken from $nn + Y and Y is not added after the dereference.
	//
	// Format: ($nn),Y. Same cost as INDX.
	addrModeINDY addrMode = "INDY"

	// Implied: IMP
	//
	// No operand. Used by the register transfers.
	addrModeIMP addrMode = "IMP"
)

func addrModeFromString(s string) (addrMode, error) {
	switch s {
	case string(addrModeIMM):
		return addrModeIMM, nil
	case string(addrModeZP):
		return addrModeZP, nil
	case string(addrModeZPX):
		return addrModeZPX, nil
	case string(addrModeZPY):
		return addrModeZPY, nil
	case string(addrModeABS):
		return addrModeABS, nil
	case string(addrModeABSX):
		return addrModeABSX, nil
	case string(addrModeABSY):
		return addrModeABSY, nil
	case string(addrModeINDX):
		return addrModeINDX, nil
	case string(addrModeINDY):
		return addrModeINDY, nil
	case string(addrModeIMP):
		return addrModeIMP, nil
	}
	return addrMode("UNKNOWN"), fmt.Errorf("address mode couldn't be parsed from %s", s)
}

// operandSize returns the number of bytes that follow the opcode.
func (mode addrMode) operandSize() int {
	switch mode {
	case addrModeIMM, addrModeZP, addrModeZPX, addrModeZPY, addrModeINDX, addrModeINDY:
		return 1
	case addrModeABS, addrModeABSX, addrModeABSY:
		return 2
	}
	return 0
}

type operand struct {
	addr        uint16
	value       uint8 // valid for IMM only
	imm         bool
	pageCrossed bool
}

func isDiffPage(a, b uint16) bool {
	return (a^b)>>8 != 0
}

// resolve consumes the operand bytes of the current instruction and
// returns the effective address, or the literal value for IMM.
// The read or write of the effective address is left to the operation.
func (c *CPU) resolve(mode addrMode) operand {
	switch mode {
	case addrModeIMM:
		return operand{value: c.fetch8(), imm: true}

	case addrModeZP:
		return operand{addr: uint16(c.fetch8())}

	case addrModeZPX:
		zp := c.fetch8()
		c.tick()
		return operand{addr: uint16(zpAdd(zp, c.x))}

	case addrModeZPY:
		zp := c.fetch8()
		c.tick()
		return operand{addr: uint16(zpAdd(zp, c.y))}

	case addrModeABS:
		return operand{addr: c.fetch16()}

	case addrModeABSX:
		return c.indexed(c.fetch16(), c.x)

	case addrModeABSY:
		return c.indexed(c.fetch16(), c.y)

	case addrModeINDX:
		zp := c.fetch8()
		c.tick()
		return operand{addr: c.readPointer(zpAdd(zp, c.x))}

	case addrModeINDY:
		zp := c.fetch8()
		c.tick()
		return operand{addr: c.readPointer(zpAdd(zp, c.y))}
	}

	return operand{}
}

// zpAdd adds an index to a zero page address, staying within page zero.
func zpAdd(zp, index uint8) uint8 {
	return uint8((uint16(zp) + uint16(index)) & 0x00ff)
}

func (c *CPU) indexed(base uint16, index uint8) operand {
	addr := uint16((uint32(base) + uint32(index)) & 0xffff)
	op := operand{addr: addr, pageCrossed: isDiffPage(base, addr)}
	if op.pageCrossed {
		c.tick()
	}
	return op
}

// readPointer reads a little-endian pointer from the zero page.
// The high byte of a pointer at $FF is taken from $00.
func (c *CPU) readPointer(zp uint8) uint16 {
	lo := uint16(c.read8(uint16(zp)))
	hi := uint16(c.read8(uint16(zpAdd(zp, 1))))
	return lo | hi<<8
}
