package machine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nevisdale/m6502/internal/cpu"
	"github.com/nevisdale/m6502/internal/loader"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	m := New()
	m.SetLogger(nil)
	return m
}

func sampleImage() *loader.Image {
	return &loader.Image{
		Vector: 0xe000,
		Segments: []loader.Segment{
			{Addr: 0x74a7, Data: []uint8{0x49}},
			{Addr: 0xe000, Data: []uint8{
				0xa2, 0x36, // LDX #$36
				0xbd, 0x71, 0x74, // LDA $7471,X
				0x02,
			}},
		},
	}
}

func Test_Machine_Run(t *testing.T) {
	m := newTestMachine(t)
	m.Load(sampleImage())

	res, err := m.Run(6)

	require.NoError(t, err)
	assert.Equal(t, 6, res.Cycles)
	assert.False(t, res.Halted)
	assert.Equal(t, uint8(0x36), res.Registers.X)
	assert.Equal(t, uint8(0x49), res.Registers.A)
	assert.Equal(t, uint16(0xe005), res.Registers.PC)

	res, err = m.Run(10)

	assert.ErrorIs(t, err, cpu.ErrUnknownOpcode)
	assert.True(t, res.Halted)
	assert.Equal(t, 1, res.Cycles)
}

func Test_Machine_ResetWipesProgram(t *testing.T) {
	m := newTestMachine(t)
	m.Load(sampleImage())

	m.Reset(0xe000)
	assert.Equal(t, uint8(0), m.Peek(0xe000))

	m.Reload()
	assert.Equal(t, uint8(0xa2), m.Peek(0xe000))
	assert.Equal(t, uint16(0xe000), m.DebugInfo().PC)
}

func Test_Machine_Tic(t *testing.T) {
	t.Run("step once then stay paused", func(t *testing.T) {
		m := newTestMachine(t)
		m.Load(sampleImage())

		m.OneStepAndStop()
		m.Tic()
		m.Tic()

		info := m.DebugInfo()
		assert.True(t, info.Paused)
		assert.Equal(t, uint16(0xe002), info.PC)
		assert.Equal(t, uint64(2), info.TotalCycles)
	})

	t.Run("running tic pauses on halt", func(t *testing.T) {
		m := newTestMachine(t)
		m.Load(sampleImage())
		m.SetCyclesPerTic(100)

		m.Tic()

		info := m.DebugInfo()
		assert.True(t, info.Paused)
		assert.Equal(t, cpu.StateHalted, info.State)
		assert.ErrorIs(t, info.Err, cpu.ErrUnknownOpcode)
		assert.Equal(t, uint64(7), info.TotalCycles)
	})

	t.Run("toggle pause", func(t *testing.T) {
		m := newTestMachine(t)
		m.Load(sampleImage())

		m.TogglePause()
		m.Tic()
		assert.Equal(t, uint64(0), m.DebugInfo().TotalCycles)

		m.TogglePause()
		assert.False(t, m.Paused())
	})
}

func Test_Machine_Disassemble(t *testing.T) {
	m := newTestMachine(t)
	m.Load(sampleImage())

	disasm := m.Disassemble(0xe000, 0xe005)

	assert.Equal(t, "$E000: LDX #$36 {IMM}", disasm[0xe000])
	assert.Equal(t, "$E002: LDA $7471,X {ABSX}", disasm[0xe002])
	assert.Equal(t, "$E005: ???", disasm[0xe005])
}

func Test_Machine_DisassembleAround(t *testing.T) {
	m := newTestMachine(t)
	m.Load(sampleImage())

	lines, cur := m.DisassembleAround(0xe002, 1, 1)

	require.Equal(t, 1, cur)
	assert.Equal(t, []string{
		"$E000: LDX #$36 {IMM}",
		"$E002: LDA $7471,X {ABSX}",
		"$E005: ???",
	}, lines)

	t.Run("follows memory writes", func(t *testing.T) {
		m.Poke(0xe002, 0x9d) // STA $7471,X

		lines, cur := m.DisassembleAround(0xe002, 1, 0)

		require.Equal(t, 1, cur)
		assert.Equal(t, "$E002: STA $7471,X {ABSX}", lines[cur])
	})

	t.Run("clamps at the bottom of memory", func(t *testing.T) {
		lines, cur := m.DisassembleAround(0x0000, 3, 0)

		assert.Equal(t, 0, cur)
		assert.Len(t, lines, 1)
	})
}

func Test_FormatStatus(t *testing.T) {
	regs := cpu.Registers{PC: 0xe005, SP: 0xff, A: 0x49, X: 0x36, P: cpu.Flags(cpu.FlagN)}

	plain := FormatStatus(regs, false)
	assert.Contains(t, plain, "A: 0x49  X: 0x36  Y: 0x00\n")
	assert.Contains(t, plain, "PC: 0xe005  SP: 0xff\n")
	assert.Contains(t, plain, "PS: 0x80  N.......\n")
	assert.NotContains(t, plain, "\x1b[")

	colored := FormatStatus(regs, true)
	assert.True(t, strings.Contains(colored, ansiBold+"N"+ansiReset))
}
