package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Resolve(t *testing.T) {
	type testArgs struct {
		mode          addrMode
		operandBytes  []uint8
		x, y          uint8
		setup         func(mem *Memory)
		expected      operand
		expectedCost  int
		expectedPCInc uint16
	}

	testDo := func(t *testing.T, in testArgs) {
		c, mem := newTestCPU(t, 0x0300)
		mem.Load(0x0300, in.operandBytes)
		if in.setup != nil {
			in.setup(mem)
		}
		c.x, c.y = in.x, in.y

		op := c.resolve(in.mode)

		assert.Equal(t, in.expected, op, "operand")
		assert.Equal(t, in.expectedCost, c.spent, "cycles")
		assert.Equal(t, 0x0300+in.expectedPCInc, c.pc, "PC")
	}

	t.Run("IMM", func(t *testing.T) {
		testDo(t, testArgs{
			mode:          addrModeIMM,
			operandBytes:  []uint8{0x42},
			expected:      operand{value: 0x42, imm: true},
			expectedCost:  1,
			expectedPCInc: 1,
		})
	})

	t.Run("ZP", func(t *testing.T) {
		testDo(t, testArgs{
			mode:          addrModeZP,
			operandBytes:  []uint8{0x80},
			expected:      operand{addr: 0x0080},
			expectedCost:  1,
			expectedPCInc: 1,
		})
	})

	t.Run("ZPX", func(t *testing.T) {
		testDo(t, testArgs{
			mode:          addrModeZPX,
			operandBytes:  []uint8{0x10},
			x:             0x05,
			expected:      operand{addr: 0x0015},
			expectedCost:  2,
			expectedPCInc: 1,
		})
	})

	t.Run("ZPX wraps to $0000", func(t *testing.T) {
		testDo(t, testArgs{
			mode:          addrModeZPX,
			operandBytes:  []uint8{0xff},
			x:             0x01,
			expected:      operand{addr: 0x0000},
			expectedCost:  2,
			expectedPCInc: 1,
		})
	})

	t.Run("ZPY wraps within page zero", func(t *testing.T) {
		testDo(t, testArgs{
			mode:          addrModeZPY,
			operandBytes:  []uint8{0xf0},
			y:             0x20,
			expected:      operand{addr: 0x0010},
			expectedCost:  2,
			expectedPCInc: 1,
		})
	})

	t.Run("ABS little-endian", func(t *testing.T) {
		testDo(t, testArgs{
			mode:          addrModeABS,
			operandBytes:  []uint8{0x71, 0x74},
			expected:      operand{addr: 0x7471},
			expectedCost:  2,
			expectedPCInc: 2,
		})
	})

	t.Run("ABSX same page", func(t *testing.T) {
		testDo(t, testArgs{
			mode:          addrModeABSX,
			operandBytes:  []uint8{0x71, 0x74},
			x:             0x36,
			expected:      operand{addr: 0x74a7},
			expectedCost:  2,
			expectedPCInc: 2,
		})
	})

	t.Run("ABSX page crossed", func(t *testing.T) {
		testDo(t, testArgs{
			mode:          addrModeABSX,
			operandBytes:  []uint8{0xff, 0x70},
			x:             0x02,
			expected:      operand{addr: 0x7101, pageCrossed: true},
			expectedCost:  3,
			expectedPCInc: 2,
		})
	})

	t.Run("ABSY wraps at $FFFF", func(t *testing.T) {
		testDo(t, testArgs{
			mode:          addrModeABSY,
			operandBytes:  []uint8{0xff, 0xff},
			y:             0x01,
			expected:      operand{addr: 0x0000, pageCrossed: true},
			expectedCost:  3,
			expectedPCInc: 2,
		})
	})

	t.Run("INDX", func(t *testing.T) {
		testDo(t, testArgs{
			mode:         addrModeINDX,
			operandBytes: []uint8{0x20},
			x:            0x04,
			setup: func(mem *Memory) {
				mem.Load(0x0024, []uint8{0x74, 0x20})
			},
			expected:      operand{addr: 0x2074},
			expectedCost:  4,
			expectedPCInc: 1,
		})
	})

	t.Run("INDX pointer wraps in zero page", func(t *testing.T) {
		testDo(t, testArgs{
			mode:         addrModeINDX,
			operandBytes: []uint8{0xfe},
			x:            0x01,
			setup: func(mem *Memory) {
				mem.Write8(0x00ff, 0x34)
				mem.Write8(0x0000, 0x12)
				mem.Write8(0x0100, 0x99)
			},
			expected:      operand{addr: 0x1234},
			expectedCost:  4,
			expectedPCInc: 1,
		})
	})

	t.Run("INDY is keyed like INDX", func(t *testing.T) {
		testDo(t, testArgs{
			mode:         addrModeINDY,
			operandBytes: []uint8{0x20},
			x:            0x10,
			y:            0x04,
			setup: func(mem *Memory) {
				mem.Load(0x0020, []uint8{0x00, 0x50})
				mem.Load(0x0024, []uint8{0x28, 0x40})
			},
			expected:      operand{addr: 0x4028},
			expectedCost:  4,
			expectedPCInc: 1,
		})
	})
}

func Test_PageCrossingCycles(t *testing.T) {
	type testArgs struct {
		program  []uint8
		x, y     uint8
		data     uint16
		expected int
	}

	testDo := func(t *testing.T, in testArgs) {
		c, mem := newTestCPU(t, 0x0200)
		mem.Load(0x0200, in.program)
		mem.Write8(in.data, 0x5a)
		c.x, c.y = in.x, in.y

		spent, err := c.Execute(1)

		require.NoError(t, err)
		assert.Equal(t, in.expected, spent, "cycles")
		assert.Equal(t, uint8(0x5a), c.a, "A register")
	}

	t.Run("LDA ABSX no crossing", func(t *testing.T) {
		testDo(t, testArgs{program: []uint8{0xbd, 0x71, 0x74}, x: 0x36, data: 0x74a7, expected: 4})
	})
	t.Run("LDA ABSX crossing", func(t *testing.T) {
		testDo(t, testArgs{program: []uint8{0xbd, 0xff, 0x70}, x: 0x02, data: 0x7101, expected: 5})
	})
	t.Run("LDA ABSY crossing", func(t *testing.T) {
		testDo(t, testArgs{program: []uint8{0xb9, 0x80, 0x12}, y: 0x80, data: 0x1300, expected: 5})
	})
	t.Run("LDA ABSY last byte of page", func(t *testing.T) {
		testDo(t, testArgs{program: []uint8{0xb9, 0x00, 0x12}, y: 0xff, data: 0x12ff, expected: 4})
	})
}

func Test_ZeroPageIndexNeverChargesPageCross(t *testing.T) {
	c, mem := newTestCPU(t, 0x0200)
	mem.Load(0x0200, []uint8{0xb5, 0xff}) // LDA $FF,X
	mem.Write8(0x0000, 0x01)
	mem.Write8(0x0100, 0x02)
	c.x = 0x01

	spent, err := c.Execute(1)

	require.NoError(t, err)
	assert.Equal(t, 4, spent)
	assert.Equal(t, uint8(0x01), c.a)
}

func Test_AddrModeFromString(t *testing.T) {
	mode, err := addrModeFromString("ABSX")
	require.NoError(t, err)
	assert.Equal(t, addrModeABSX, mode)

	_, err = addrModeFromString("REL")
	assert.Error(t, err)
}
