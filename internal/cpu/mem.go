package cpu

// MemSize is the size of the flat address space in bytes.
const MemSize = 0x10000

type ReadWriter interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, data uint8)
}

// Bus is the memory the CPU runs against. Reset zeroes it through Initialise.
type Bus interface {
	ReadWriter
	Initialise()
}

// Memory is 64 KB of RAM with no unmapped regions.
// Every uint16 is a valid index, so reads and writes never fail.
type Memory struct {
	data [MemSize]uint8
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read8(addr uint16) uint8 {
	return m.data[addr]
}

func (m *Memory) Write8(addr uint16, data uint8) {
	m.data[addr] = data
}

// Initialise sets every cell to zero.
func (m *Memory) Initialise() {
	clear(m.data[:])
}

// Load copies data starting at addr. Writes past $FFFF wrap to $0000.
func (m *Memory) Load(addr uint16, data []uint8) {
	for i, b := range data {
		m.data[uint16(int(addr)+i)] = b
	}
}
