package cpu

import "strings"

type Flag uint8

const (
	FlagC = Flag(1 << iota) // Carry
	FlagZ                   // Zero
	FlagI                   // Interrupt Disable
	FlagD                   // Decimal Mode
	FlagB                   // Break Command
	FlagU                   // Unused
	FlagV                   // Overflow
	FlagN                   // Negative
)

// Flags is the processor status register.
// It can be used as a packed byte (Byte, SetByte)
// or bit by bit (Get, Set).
type Flags uint8

func (f Flags) Byte() uint8 {
	return uint8(f)
}

func (f *Flags) SetByte(b uint8) {
	*f = Flags(b)
}

func (f Flags) Get(flag Flag) bool {
	return uint8(f)&uint8(flag) > 0
}

func (f *Flags) Set(flag Flag, v bool) {
	if v {
		*f |= Flags(flag)
		return
	}
	*f &^= Flags(flag)
}

// String renders the flags from bit 7 to bit 0 as NVUBDIZC,
// with a dot in place of every clear bit.
func (f Flags) String() string {
	const names = "NVUBDIZC"
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		if f.Get(Flag(1 << (7 - i))) {
			sb.WriteByte(names[i])
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
