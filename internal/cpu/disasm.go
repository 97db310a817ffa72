package cpu

import "fmt"

// DisassembleOne decodes the instruction at pc without touching any cpu
// state and returns its text and length in bytes.
// Bytes that are not in the opcode table decode as "???" with length 1.
func DisassembleOne(mem ReadWriter, pc uint16) (string, int) {
	opcode := mem.Read8(pc)
	instr := instrs[opcode]
	if instr.op == 0 {
		return fmt.Sprintf("$%04X: ???", pc), 1
	}

	lo := mem.Read8(pc + 1)
	word := uint16(lo) | uint16(mem.Read8(pc+2))<<8

	var text string
	switch instr.mode {
	case addrModeIMM:
		text = fmt.Sprintf("$%04X: %s #$%02X {%s}", pc, instr.name, lo, instr.mode)
	case addrModeZP:
		text = fmt.Sprintf("$%04X: %s $%02X {%s}", pc, instr.name, lo, instr.mode)
	case addrModeZPX:
		text = fmt.Sprintf("$%04X: %s $%02X,X {%s}", pc, instr.name, lo, instr.mode)
	case addrModeZPY:
		text = fmt.Sprintf("$%04X: %s $%02X,Y {%s}", pc, instr.name, lo, instr.mode)
	case addrModeABS:
		text = fmt.Sprintf("$%04X: %s $%04X {%s}", pc, instr.name, word, instr.mode)
	case addrModeABSX:
		text = fmt.Sprintf("$%04X: %s $%04X,X {%s}", pc, instr.name, word, instr.mode)
	case addrModeABSY:
		text = fmt.Sprintf("$%04X: %s $%04X,Y {%s}", pc, instr.name, word, instr.mode)
	case addrModeINDX:
		text = fmt.Sprintf("$%04X: %s ($%02X,X) {%s}", pc, instr.name, lo, instr.mode)
	case addrModeINDY:
		text = fmt.Sprintf("$%04X: %s ($%02X),Y {%s}", pc, instr.name, lo, instr.mode)
	default:
		text = fmt.Sprintf("$%04X: %s {%s}", pc, instr.name, instr.mode)
	}
	return text, 1 + instr.mode.operandSize()
}

// Disassemble returns a map of addresses and their corresponding
// instructions from `from` to `to` inclusive.
func Disassemble(mem ReadWriter, from, to uint16) map[uint16]string {
	disasm := make(map[uint16]string)

	addr := uint32(from)
	for addr <= uint32(to) {
		text, n := DisassembleOne(mem, uint16(addr))
		disasm[uint16(addr)] = text
		addr += uint32(n)
	}

	return disasm
}
