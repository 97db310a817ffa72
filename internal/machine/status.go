package machine

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/nevisdale/m6502/internal/cpu"
)

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// FormatStatus renders the register file as a block of text.
// With color set, the set flags are highlighted.
func FormatStatus(regs cpu.Registers, color bool) string {
	var sb strings.Builder
	sb.WriteString("--------------------------------------\n")
	fmt.Fprintf(&sb, "A: 0x%02x  X: 0x%02x  Y: 0x%02x\n", regs.A, regs.X, regs.Y)
	fmt.Fprintf(&sb, "PC: 0x%04x  SP: 0x%02x\n", regs.PC, regs.SP)
	fmt.Fprintf(&sb, "PS: 0x%02x  %s\n", regs.P.Byte(), formatFlags(regs.P, color))
	sb.WriteString("======================================\n")
	return sb.String()
}

func formatFlags(p cpu.Flags, color bool) string {
	s := p.String()
	if !color {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if r == '.' {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString(ansiBold)
		sb.WriteRune(r)
		sb.WriteString(ansiReset)
	}
	return sb.String()
}
